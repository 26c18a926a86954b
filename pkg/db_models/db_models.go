package db_models

type User struct {
	ID           int
	Login        string
	PasswordHash string
}

// HistoryEntry is one row of a user's calculation history.
type HistoryEntry struct {
	ID         int
	UserLogin  string
	Position   int
	Expression string
	Result     int
}

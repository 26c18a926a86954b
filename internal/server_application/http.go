package server_application

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/expression"
	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

type loginKey struct{}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// NewHandler builds the HTTP API. gatherer may be nil to skip /metrics.
func NewHandler(app *Application, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", app.registerHandler)
		r.Post("/login", app.loginHandler)

		r.Route("/screen", func(r chi.Router) {
			r.Use(app.authMiddleware)

			r.Get("/", app.screenHandler(nil))
			r.Delete("/", app.closeScreenHandler)
			r.Post("/operand", app.operandHandler)
			r.Post("/operator", app.operatorHandler)
			r.Post("/remove-last", app.screenHandler((*screen.Controller).RemoveLast))
			r.Post("/calculate", app.screenHandler((*screen.Controller).Calculate))
			r.Post("/history/toggle", app.screenHandler((*screen.Controller).ToggleHistory))
			r.Post("/history/load", app.acceptedHandler((*screen.Controller).LoadHistory))
			r.Post("/history/save", app.acceptedHandler((*screen.Controller).SaveHistory))
		})
	})
	return r
}

func (a *Application) registerHandler(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := a.Register(r.Context(), body.Login, body.Password); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (a *Application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	token, err := a.Login(r.Context(), body.Login, body.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (a *Application) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			a.writeError(w, locerr.ErrUnauthorized)
			return
		}
		login, err := a.Authenticate(token)
		if err != nil {
			a.writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loginKey{}, login)))
	})
}

// useScreen runs fn against the caller's screen while it is held open.
func (a *Application) useScreen(r *http.Request, fn func(*screen.Controller)) {
	a.Screens.Use(r.Context().Value(loginKey{}).(string), fn)
}

// screenHandler applies action, if any, and answers with the screen state.
func (a *Application) screenHandler(action func(*screen.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var state screen.State
		a.useScreen(r, func(c *screen.Controller) {
			if action != nil {
				action(c)
			}
			state = c.Snapshot()
		})
		writeJSON(w, http.StatusOK, state)
	}
}

func (a *Application) acceptedHandler(action func(*screen.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.useScreen(r, action)
		w.WriteHeader(http.StatusAccepted)
	}
}

func (a *Application) operandHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Operand *int `json:"operand"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Operand == nil {
		http.Error(w, "operand is required", http.StatusUnprocessableEntity)
		return
	}
	a.screenHandler(func(c *screen.Controller) {
		c.AddOperand(*body.Operand)
	})(w, r)
}

func (a *Application) operatorHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Operator string `json:"operator"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	op, err := expression.ParseOperator(body.Operator)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	a.screenHandler(func(c *screen.Controller) {
		c.AddOperator(op)
	})(w, r)
}

func (a *Application) closeScreenHandler(w http.ResponseWriter, r *http.Request) {
	a.Screens.Delete(r.Context().Value(loginKey{}).(string))
	w.WriteHeader(http.StatusNoContent)
}

func (a *Application) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, locerr.ErrEmptyLogin), errors.Is(err, locerr.ErrPasswordTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, locerr.ErrUserExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, locerr.ErrInvalidCredentials), errors.Is(err, locerr.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		a.Log.Error("request failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

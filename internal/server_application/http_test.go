package server_application

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

func (c *apiClient) state(method, path string, body any) screen.State {
	c.t.Helper()
	rr := c.do(method, path, body)
	require.Equal(c.t, http.StatusOK, rr.Code, rr.Body.String())
	var state screen.State
	require.NoError(c.t, json.Unmarshal(rr.Body.Bytes(), &state))
	return state
}

func login(t *testing.T, c *apiClient, name string) {
	t.Helper()
	creds := map[string]string{"login": name, "password": "pw-" + name}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/register", creds).Code)

	rr := c.do(http.MethodPost, "/api/v1/login", creds)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	c.token = resp["token"]
}

func TestHTTP_Health(t *testing.T) {
	app, _, reg := newTestApp(t)
	c := &apiClient{t: t, handler: NewHandler(app, reg)}

	rr := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHTTP_Accounts(t *testing.T) {
	app, _, _ := newTestApp(t)
	c := &apiClient{t: t, handler: NewHandler(app, nil)}

	creds := map[string]string{"login": "alice", "password": "pw"}
	assert.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/register", creds).Code)
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/register", creds).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/register", map[string]string{"password": "pw"}).Code)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/login", map[string]string{"login": "alice", "password": "nope"}).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/login", map[string]string{"login": "bob", "password": "pw"}).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/login", creds).Code)

	long := strings.Repeat("x", 73)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/register", map[string]string{"login": "bob", "password": long}).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/login", map[string]string{"login": "alice", "password": long}).Code)
}

func TestHTTP_ScreenRequiresToken(t *testing.T) {
	app, _, _ := newTestApp(t)
	c := &apiClient{t: t, handler: NewHandler(app, nil)}

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/screen", nil).Code)

	c.token = "forged"
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/screen/calculate", nil).Code)
}

func TestHTTP_CalculationCycle(t *testing.T) {
	app, histories, reg := newTestApp(t)
	c := &apiClient{t: t, handler: NewHandler(app, reg)}
	login(t, c, "alice")

	state := c.state(http.MethodGet, "/api/v1/screen", nil)
	assert.Equal(t, "", state.Display)
	app.Screens.Read("alice").Wait()

	c.state(http.MethodPost, "/api/v1/screen/operand", map[string]int{"operand": 2})
	c.state(http.MethodPost, "/api/v1/screen/operator", map[string]string{"operator": "+"})
	state = c.state(http.MethodPost, "/api/v1/screen/operand", map[string]int{"operand": 3})
	assert.Equal(t, "2+3", state.Display)

	state = c.state(http.MethodPost, "/api/v1/screen/calculate", nil)
	assert.Equal(t, "5", state.Display)
	assert.Nil(t, state.Event)
	assert.Equal(t, []history.Item{{Expression: "2+3", Result: 5}}, state.Histories)

	state = c.state(http.MethodPost, "/api/v1/screen/calculate", nil)
	require.NotNil(t, state.Event)
	assert.Equal(t, screen.IncompleteExpressionError, *state.Event)
	assert.Nil(t, c.state(http.MethodGet, "/api/v1/screen", nil).Event)

	state = c.state(http.MethodPost, "/api/v1/screen/remove-last", nil)
	assert.Equal(t, "", state.Display)

	state = c.state(http.MethodPost, "/api/v1/screen/history/toggle", nil)
	assert.True(t, state.HistoryOpen)

	assert.Equal(t, http.StatusAccepted, c.do(http.MethodPost, "/api/v1/screen/history/save", nil).Code)
	app.Screens.Read("alice").Wait()
	assert.Equal(t, []history.Item{{Expression: "2+3", Result: 5}}, histories.Items(t, "alice"))

	metrics := c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `calculator_calculations_total{outcome="success"} 1`)
}

func TestHTTP_BadInput(t *testing.T) {
	app, _, _ := newTestApp(t)
	c := &apiClient{t: t, handler: NewHandler(app, nil)}
	login(t, c, "alice")

	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/screen/operator", map[string]string{"operator": "%"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/screen/operand", map[string]string{}).Code)
}

func TestHTTP_CloseScreenSavesAndReloads(t *testing.T) {
	app, histories, _ := newTestApp(t)
	c := &apiClient{t: t, handler: NewHandler(app, nil)}
	login(t, c, "alice")

	c.state(http.MethodGet, "/api/v1/screen", nil)
	app.Screens.Read("alice").Wait()
	c.state(http.MethodPost, "/api/v1/screen/operand", map[string]int{"operand": 6})
	c.state(http.MethodPost, "/api/v1/screen/operator", map[string]string{"operator": "*"})
	c.state(http.MethodPost, "/api/v1/screen/operand", map[string]int{"operand": 7})
	c.state(http.MethodPost, "/api/v1/screen/calculate", nil)

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/api/v1/screen", nil).Code)
	assert.Equal(t, 0, app.Screens.Len())
	assert.Equal(t, []history.Item{{Expression: "6*7", Result: 42}}, histories.Items(t, "alice"))

	// A new screen starts blank and loads the saved history.
	state := c.state(http.MethodGet, "/api/v1/screen", nil)
	assert.Equal(t, "", state.Display)
	app.Screens.Read("alice").Wait()
	state = c.state(http.MethodGet, "/api/v1/screen", nil)
	assert.Equal(t, []history.Item{{Expression: "6*7", Result: 42}}, state.Histories)
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-web/internal/api"
	"timesheet-web/internal/audit"
	"timesheet-web/internal/auth"
	"timesheet-web/internal/httpapi"
	"timesheet-web/internal/session"
	"timesheet-web/internal/timesheet"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

type fixture struct {
	router   *gin.Engine
	events   *audit.MemoryRepo
	employee string
	manager  string
	orphan   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		events:   audit.NewMemoryRepo(),
		employee: mintToken(t, jwt.MapClaims{auth.ClaimSubject: "emp", auth.ClaimRole: "employee"}),
		manager:  mintToken(t, jwt.MapClaims{auth.ClaimSubject: "mgr", auth.ClaimRoles: []string{"manager"}}),
		orphan:   mintToken(t, jwt.MapClaims{auth.ClaimSubject: "new", auth.ClaimRole: "manager"}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(api.AuthResponse{UserID: "emp", Email: req.Email, Token: f.employee})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/v1/organizations/mine", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+f.orphan {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"org-1","name":"Acme"}]`))
	})
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	client := api.NewClient(backend.URL+"/api", 2*time.Second)
	sessions := session.NewManager(client, session.NewCookieStore("", false), session.NewMemoryUserCache(100, time.Hour), audit.NewService(f.events))
	proxy, err := httpapi.NewProxy(client.BaseURL(), 2*time.Second)
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(httpapi.Templates())
	registerRoutes(r, routeDeps{
		handlers: httpapi.Handlers{
			Sessions:   sessions,
			Timesheets: timesheet.NewService(client),
			Backend:    client,
		},
		proxy: proxy,
		orgs:  client,
	})
	f.router = r
	return f
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRoutes_PageGuards(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name     string
		path     string
		token    string
		code     int
		location string
	}{
		{"root anonymous", "/", "", http.StatusFound, auth.PathLogin},
		{"root employee", "/", f.employee, http.StatusFound, auth.PathTimesheets},
		{"root manager", "/", f.manager, http.StatusFound, auth.PathDashboard},
		{"login is public", auth.PathLogin, "", http.StatusOK, ""},
		{"protected page anonymous", auth.PathTimesheets, "", http.StatusFound, auth.PathLogin},
		{"manager page anonymous", "/reports", "", http.StatusFound, auth.PathLogin},
		{"employee on own page", auth.PathTimesheets, f.employee, http.StatusOK, ""},
		{"employee on manager page", auth.PathDashboard, f.employee, http.StatusFound, auth.PathTimesheets},
		{"employee on team", "/team", f.employee, http.StatusFound, auth.PathTimesheets},
		{"manager on manager page", "/reports", f.manager, http.StatusOK, ""},
		{"no organization", auth.PathDashboard, f.orphan, http.StatusFound, auth.PathOnboarding},
		{"onboarding skips org check", auth.PathOnboarding, f.orphan, http.StatusOK, ""},
		{"undecodable token is unrestricted", "/reports", "opaque", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(http.MethodGet, tc.path, "", tc.token)
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}

func TestRoutes_AppAPIGuardsAnswerJSON(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/app/api/projects", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","redirect":"/login"}`, w.Body.String())

	w = f.do(http.MethodPost, "/app/api/projects", `{"name":"X"}`, f.employee)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden","redirect":"/timesheets"}`, w.Body.String())
}

func TestRoutes_LoginThenLogout(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/auth/login", `{"email":"emp@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = f.do(http.MethodPost, "/auth/login", `{"email":"emp@example.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"user":{"userId":"emp","email":"emp@example.com"},"redirect":"/timesheets"}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value
	assert.Equal(t, f.employee, token)

	w = f.do(http.MethodGet, "/session", "", token)
	assert.Contains(t, w.Body.String(), `"email":"emp@example.com"`)

	// Revoke fails on the backend; the session is cleared anyway.
	w = f.do(http.MethodPost, "/auth/logout", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"redirect":"/login"}`, w.Body.String())
	require.Len(t, w.Result().Cookies(), 1)
	assert.Empty(t, w.Result().Cookies()[0].Value)

	events := f.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, audit.EventTypeLogin, events[0].Type)
	assert.Equal(t, auth.PathTimesheets, events[0].Landing)
	assert.Equal(t, audit.EventTypeLogout, events[1].Type)
	assert.Equal(t, "emp", events[1].ActorUserID)
	assert.Len(t, f.events.ForUser("emp"), 2)
	assert.Len(t, f.events.ByType(audit.EventTypeLogout), 1)
}

func TestRoutes_Healthz(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

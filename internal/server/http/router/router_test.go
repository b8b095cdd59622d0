package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ordesk/backoffice/internal/domain/model"
	testhelpers "github.com/ordesk/backoffice/internal/test/facade"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSetupLogin(t *testing.T) {
	facade := &testhelpers.BackofficeFacadeStub{}
	engine := Setup(facade, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSetupRequiresSession(t *testing.T) {
	facade := &testhelpers.BackofficeFacadeStub{}
	engine := Setup(facade, discardLogger())

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/operator/queue"},
		{http.MethodGet, "/api/session"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/archive/orders"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestSetupRoleGates(t *testing.T) {
	operator := &model.User{ID: 1, DisplayName: "Ana", Role: model.RoleOperator}
	facade := &testhelpers.BackofficeFacadeStub{SessionFacadeStub: testhelpers.SessionFacadeStub{User: operator}}
	engine := Setup(facade, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("operator on admin route: expected 403, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/operator/queue", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("operator on queue: expected 200, got %d", w.Code)
	}
}

func TestSetupRejectsUnknownMarket(t *testing.T) {
	facade := &testhelpers.BackofficeFacadeStub{}
	engine := Setup(facade, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Market", "FR")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

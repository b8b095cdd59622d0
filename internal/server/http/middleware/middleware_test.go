package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	pkgAuth "github.com/ordesk/backoffice/internal/pkg/auth"
	testhelpers "github.com/ordesk/backoffice/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, mw gin.HandlerFunc, handler gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Use(mw)
	router.Handle(req.Method, req.URL.Path, handler)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestAuthRequiredWithoutToken(t *testing.T) {
	facade := testhelpers.SessionFacadeStub{}
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	resp := serve(t, AuthRequired(facade), okHandler, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	facade := testhelpers.SessionFacadeStub{Err: pkgAuth.ErrInvalidToken}
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp := serve(t, AuthRequired(facade), okHandler, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRequiredUnknownUser(t *testing.T) {
	facade := testhelpers.SessionFacadeStub{
		ParseFn: func(string) (int64, error) { return 42, nil },
		Err:     domainErrors.ErrNotFound,
	}
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp := serve(t, AuthRequired(facade), okHandler, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account, got %d", resp.Code)
	}
}

func TestAuthRequiredBearerHeader(t *testing.T) {
	facade := testhelpers.SessionFacadeStub{User: &model.User{ID: 7, DisplayName: "Ana", Role: model.RoleAdmin}}
	router := gin.New()
	router.Use(AuthRequired(facade))
	router.GET("/secure", func(c *gin.Context) {
		val, ok := c.Get(UserContextKey)
		if !ok {
			t.Fatal("user not set in context")
		}
		user := val.(*model.User)
		if user.ID != 7 || user.DisplayName != "Ana" {
			t.Fatalf("unexpected user %+v", user)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthRequiredCookie(t *testing.T) {
	facade := testhelpers.SessionFacadeStub{User: &model.User{ID: 7, Role: model.RoleOperator}}
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.AddCookie(&http.Cookie{Name: "backoffice_token", Value: "tok"})
	resp := serve(t, AuthRequired(facade), okHandler, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d", resp.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		user   *model.User
		roles  []model.Role
		status int
	}{
		{"allowed", &model.User{Role: model.RoleAdmin}, []model.Role{model.RoleAdmin}, http.StatusOK},
		{"one of several", &model.User{Role: model.RolePacker}, []model.Role{model.RoleAdmin, model.RolePacker}, http.StatusOK},
		{"forbidden", &model.User{Role: model.RoleOperator}, []model.Role{model.RoleAdmin}, http.StatusForbidden},
		{"no session", nil, []model.Role{model.RoleAdmin}, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tc.user != nil {
					c.Set(UserContextKey, tc.user)
				}
			})
			router.Use(RequireRole(tc.roles...))
			router.GET("/admin", okHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestMarketSelector(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
		market model.Market
	}{
		{"default", "", http.StatusOK, model.MarketRO},
		{"moldova", "MD", http.StatusOK, model.MarketMD},
		{"unknown", "de", http.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got model.Market
			router := gin.New()
			router.Use(MarketSelector())
			router.GET("/", func(c *gin.Context) {
				got = c.MustGet(MarketContextKey).(model.Market)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("X-Market", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status == http.StatusOK && got != tc.market {
				t.Fatalf("expected market %q, got %q", tc.market, got)
			}
			if tc.status == http.StatusBadRequest {
				var body map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["error"] != "unknown market" {
					t.Fatalf("unexpected error body %v", body)
				}
			}
		})
	}
}

func TestDecompressRequest(t *testing.T) {
	payload := []byte(`{"comment":"call tomorrow"}`)
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(payload); err != nil {
		t.Fatalf("compress payload: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	router := gin.New()
	router.Use(DecompressRequest())
	router.POST("/", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if !bytes.Equal(body, payload) {
			t.Fatalf("expected %s, got %s", payload, body)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", &compressed)
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestDecompressRequestRejectsBadPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("plainly not gzip")))
	req.Header.Set("Content-Encoding", "gzip")
	resp := serve(t, DecompressRequest(), okHandler, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := serve(t, RequestLogger(logger), okHandler, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school_exam_backend/internal/config"
	"school_exam_backend/internal/model"
	"school_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(cfg *config.Config, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/api")
	group.Use(AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		util.Success(c, gin.H{"pong": true})
	})

	return router
}

func tokenFor(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Username: "tester", Role: role}
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "middleware-test-secret", ExpireTime: time.Hour}}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer broken.token.here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Student))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareAcceptsQueryToken(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping?token="+tokenFor(t, cfg, model.Student), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddlewareGating(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name    string
		allowed []model.UserRole
		role    model.UserRole
		want    int
	}{
		{"student on student route", []model.UserRole{model.Student}, model.Student, http.StatusOK},
		{"teacher on student route", []model.UserRole{model.Student}, model.Teacher, http.StatusForbidden},
		{"admin is not implicitly allowed", []model.UserRole{model.Teacher}, model.Admin, http.StatusForbidden},
		{"admin listed explicitly", []model.UserRole{model.Teacher, model.Admin}, model.Admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(cfg, tt.allowed...)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, tt.role))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

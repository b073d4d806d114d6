package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func authTestRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(enabled, testSecret))
	r.GET("/thing", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.POST("/thing", func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"ok": true}) })
	return r
}

func signToken(t *testing.T, scopes []string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "tester",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if scopes != nil {
		claims["scopes"] = scopes
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func TestAuth_DisabledPassthrough(t *testing.T) {
	r := authTestRouter(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	r := authTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedToken(t *testing.T) {
	r := authTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	r := authTestRouter(true)

	claims := jwt.MapClaims{"scopes": []string{ScopeRead}, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ReadScopeAllowsGet(t *testing.T) {
	r := authTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{ScopeRead}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_ReadScopeRejectsWrite(t *testing.T) {
	r := authTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/thing", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{ScopeRead}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_WriteScopeImpliesRead(t *testing.T) {
	r := authTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{ScopeWrite}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_NoScopesClaim(t *testing.T) {
	r := authTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, nil))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

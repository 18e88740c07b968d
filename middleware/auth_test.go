package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func setupAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetString("user_id"),
			"device_id": c.GetString("device_id"),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	router := setupAuthTestRouter(t)

	t.Run("Missing Header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Malformed Token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Valid Access Token", func(t *testing.T) {
		token, err := services.GenerateAccessToken("user-42", "device-7")
		if err != nil {
			t.Fatalf("GenerateAccessToken failed: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body := w.Body.String(); body != `{"device_id":"device-7","user_id":"user-42"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("Refresh Token Rejected As Access Token", func(t *testing.T) {
		token, err := services.GenerateRefreshToken("user-42", "device-7")
		if err != nil {
			t.Fatalf("GenerateRefreshToken failed: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for refresh token, got %d", w.Code)
		}
	})
}

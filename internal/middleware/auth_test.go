package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/uptask-dev/uptask-api/internal/auth"
	"github.com/uptask-dev/uptask-api/internal/database"
	"github.com/uptask-dev/uptask-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	database.SetDB(db)
	require.NoError(t, auth.Init("test-secret"))

	r := gin.New()
	r.GET("/protected", Authenticate(), func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return r, db
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := get(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := get(r, "Token abcdef")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := get(r, "Bearer not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	r, db := setupAuthTest(t)

	user := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Confirmed: true}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateJWT(user.ID)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	r, db := setupAuthTest(t)

	user := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Confirmed: true}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateJWT(user.ID)
	require.NoError(t, err)
	require.NoError(t, db.Unscoped().Delete(&user).Error)

	// A token for a vanished account does not authenticate.
	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Package testutil wires a hermetic copy of the HTTP stack for handler
// tests: an in-memory sqlite database behind the usual package-level
// handle, plus the real session and routing middleware.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"amparo-backend/config"
	"amparo-backend/database"
	"amparo-backend/internal/api/auth"
	routes "amparo-backend/internal/app/http"
	"amparo-backend/internal/app/http/middleware"
	"amparo-backend/internal/domain/content"
	"amparo-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// OpenTestDB opens a fresh in-memory database, migrates the schema and
// installs it as the global handle.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&users.User{},
		&content.Talk{},
		&content.TalkTranslation{},
		&content.LectureVideo{},
		&content.LectureFile{},
		&content.Exercise{},
		&content.Study{},
		&content.Page{},
		&content.PageTranslation{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db
	return db
}

// SetupRouter builds the full engine the way main does, minus CORS.
func SetupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	OpenTestDB(t)

	config.SESSION_SECRET = "test-secret"
	config.ALLOWED_ORIGINS = nil
	config.IS_PRODUCTION = false

	r := gin.New()
	r.Use(middleware.Sessions())
	r.Use(middleware.OriginCheck())
	routes.RegisterRoutes(r)
	return r
}

// SeedUser inserts an account with a usable password.
func SeedUser(t *testing.T, role, username, password, email string) users.User {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	u := users.User{
		Username: username,
		Password: hashed,
		Email:    email,
		Role:     role,
		Nome:     username,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// DoJSON performs a request with an optional JSON body and session cookie.
func DoJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Login authenticates and returns the session cookie for later requests.
func Login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	w := DoJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": username,
		"password": password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d, body %s", username, w.Code, w.Body.String())
	}

	raw := w.Header().Get("Set-Cookie")
	if raw == "" {
		t.Fatal("login did not set a session cookie")
	}
	return strings.SplitN(raw, ";", 2)[0]
}

// Decode unmarshals a JSON response body.
func Decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"amparo-backend/config"
	authapi "amparo-backend/internal/api/auth"
	"amparo-backend/internal/api/booklets"
	"amparo-backend/internal/api/contact"
	"amparo-backend/internal/api/exercises"
	"amparo-backend/internal/api/pages"
	"amparo-backend/internal/api/stats"
	"amparo-backend/internal/api/studies"
	"amparo-backend/internal/api/talks"
	"amparo-backend/internal/app/http/middleware"
	"amparo-backend/internal/domain/access"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", stats.Health)
	r.GET("/stats", stats.GetStats)
	r.GET("/latest-videos", stats.LatestVideos)
	r.GET("/pages", pages.ListPages)

	// Public reads
	r.GET("/talks", talks.ListTalks)
	r.GET("/talks/:id", talks.GetTalk)
	r.GET("/exercises", exercises.ListExercises)
	r.GET("/exercises/:id", exercises.GetExercise)
	r.GET("/studies", studies.ListStudies)
	r.GET("/studies/:id", studies.GetStudy)
	r.GET("/booklets", booklets.ListBooklets)
	r.GET("/booklets/:id", booklets.GetBooklet)

	// Public writes: sanitized and rate limited
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInput())
	public.POST("/contact", middleware.RateLimit(3, time.Minute), contact.Register)
	public.POST("/contact/researcher", middleware.RateLimit(3, time.Minute), contact.RegisterResearcher)
	public.POST("/auth/login", middleware.RateLimit(5, time.Minute), authapi.Login)

	r.POST("/auth/logout", authapi.Logout)
	r.GET("/auth/me", authapi.Me)

	// Content mutations: editor or admin
	editor := r.Group("/")
	editor.Use(middleware.RequireRole(access.RoleEditor), middleware.SanitizeAndCleanInput())

	editor.POST("/talks", talks.CreateTalk)
	editor.PUT("/talks/:id", talks.UpdateTalk)
	editor.DELETE("/talks/:id", talks.DeleteTalk)

	editor.POST("/exercises", exercises.CreateExercise)
	editor.PUT("/exercises/:id", exercises.UpdateExercise)
	editor.DELETE("/exercises/:id", exercises.DeleteExercise)

	editor.POST("/studies", studies.CreateStudy)
	editor.PUT("/studies/:id", studies.UpdateStudy)
	editor.DELETE("/studies/:id", studies.DeleteStudy)

	editor.POST("/booklets", booklets.CreateBooklet)
	editor.PUT("/booklets/:id", booklets.UpdateBooklet)
	editor.DELETE("/booklets/:id", booklets.DeleteBooklet)

	// Moderation: admin only
	admin := r.Group("/auth")
	admin.Use(middleware.RequireRole(access.RoleAdmin))
	admin.GET("/pending-users", authapi.PendingUsers)
	admin.POST("/approve-user", authapi.ApproveUser)
	admin.POST("/reject-user", authapi.RejectUser)

	// Built frontend fallback for anything that is not an API path.
	r.NoRoute(serveFrontend)
}

// serveFrontend serves the compiled SPA: the file itself when it exists,
// index.html otherwise so client-side routing works on deep links.
func serveFrontend(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	reqPath := strings.TrimPrefix(filepath.Clean(c.Request.URL.Path), "/")
	if reqPath != "" {
		full := filepath.Join(config.STATIC_DIR, reqPath)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}
	}

	c.File(filepath.Join(config.STATIC_DIR, "index.html"))
}

package middleware

import (
	"net/http"

	"amparo-backend/config"
	"amparo-backend/database"
	"amparo-backend/internal/domain/access"
	"amparo-backend/internal/domain/users"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
)

const (
	sessionName    = "amparo_session"
	sessionUserKey = "user_id"
	contextUserKey = "current_user"
)

// Sessions installs the server-side session store. The cookie only carries
// the session id; the binding to a user lives in process memory, so a
// restart logs everyone out.
func Sessions() gin.HandlerFunc {
	store := memstore.NewStore([]byte(config.SESSION_SECRET))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   config.IS_PRODUCTION,
	})
	return sessions.Sessions(sessionName, store)
}

// BindSession attaches the authenticated user id to the request session.
func BindSession(c *gin.Context, userID uint) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

// ClearSession invalidates the request session. Clearing an absent session
// is not an error.
func ClearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// CurrentUser resolves the identity bound to the request session, or nil.
// An absent or stale session is never an error here; route gates decide
// whether that matters.
func CurrentUser(c *gin.Context) *users.User {
	if u, ok := c.Get(contextUserKey); ok {
		return u.(*users.User)
	}

	sess := sessions.Default(c)
	id, ok := sess.Get(sessionUserKey).(uint)
	if !ok {
		return nil
	}

	var u users.User
	if err := database.DB.WithContext(c.Request.Context()).First(&u, id).Error; err != nil {
		return nil
	}

	c.Set(contextUserKey, &u)
	return &u
}

// RequireRole gates a route on the role policy: no identity is 401, an
// authenticated identity without the role is 403.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !access.Can(user.Role, role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}

package auth

import (
	"errors"
	"net/http"
	"time"

	"amparo-backend/database"
	"amparo-backend/internal/app/http/middleware"
	"amparo-backend/internal/domain/access"
	"amparo-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type sessionUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Nome     string `json:"nome"`
}

func toSessionUser(u *users.User) sessionUser {
	return sessionUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Nome:     u.Nome,
	}
}

// Login verifies credentials and binds the identity to a new session.
// Unknown username and wrong password collapse into the same response so
// usernames cannot be enumerated; the pending-account check runs only after
// the password verified for the same reason.
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
		return
	}

	var user users.User
	err := database.DB.WithContext(c.Request.Context()).
		Where("username = ?", input.Username).First(&user).Error
	if err != nil || !CheckPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !access.CanAuthenticate(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account awaiting approval"})
		return
	}

	if err := middleware.BindSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, toSessionUser(&user))
}

// Logout invalidates the session unconditionally; logging out twice is fine.
func Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, toSessionUser(user))
}

// PendingUsers lists accounts waiting for moderation. Admin only (gated in
// routes).
func PendingUsers(c *gin.Context) {
	var pending []users.User
	err := database.DB.WithContext(c.Request.Context()).
		Where("role = ?", access.RolePending).
		Order("created_at ASC").
		Find(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending users"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// ApproveUser promotes a pending account, resets its credential to a fresh
// temporary password and returns that password in plaintext exactly once.
// A missing target and an already-approved target are indistinguishable to
// the caller: both are 404.
func ApproveUser(c *gin.Context) {
	var input struct {
		UserID uint   `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}
	if input.Role == "" {
		input.Role = access.RoleEditor
	}
	if input.Role != access.RoleEditor && input.Role != access.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var target users.User
	var tempPassword string
	db := database.DB.WithContext(c.Request.Context())
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND role = ?", input.UserID, access.RolePending).
			First(&target).Error; err != nil {
			return err
		}

		// The bcrypt work happens only once a pending target exists.
		tempPassword = GenerateTempPassword()
		hashed, err := HashPassword(tempPassword)
		if err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&users.User{}).
			Where("id = ? AND role = ?", target.ID, access.RolePending).
			Updates(map[string]interface{}{
				"role":        input.Role,
				"password":    hashed,
				"approved_at": now,
				"approved_by": actor.ID,
			}).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found or already approved"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "User approved",
		"username":      target.Username,
		"temp_password": tempPassword,
	})
}

// RejectUser deletes the target row outright. No soft delete, and no role
// re-check before deleting: that matches the moderation UI, which only ever
// offers the button on pending entries.
func RejectUser(c *gin.Context) {
	var input struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	err := database.DB.WithContext(c.Request.Context()).
		Delete(&users.User{}, input.UserID).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User rejected and removed"})
}

package contact

import (
	"errors"
	"net/http"
	"strings"

	"amparo-backend/database"
	"amparo-backend/internal/api/auth"
	"amparo-backend/internal/domain/access"
	"amparo-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The error body never says which field collided, so the form cannot be
// used to probe registered emails.
const duplicateEmailMessage = "Email already registered"

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func createPending(c *gin.Context, user users.User) {
	// Pending accounts get a random password that is never shown to anyone,
	// so the row is non-authenticatable until an admin approves it and a
	// fresh temporary password is issued.
	hashed, err := auth.HashPassword(auth.GenerateTempPassword())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	user.Password = hashed
	user.Role = access.RolePending
	user.Username = usernameFromEmail(user.Email)

	db := database.DB.WithContext(c.Request.Context())

	var existing users.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": duplicateEmailMessage})
		return
	}

	if err := db.Create(&user).Error; err != nil {
		// Lost the race between the pre-check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": duplicateEmailMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration received. Await approval."})
}

// Register handles the public contact form and creates a pending account.
func Register(c *gin.Context) {
	var input struct {
		Nome     string `json:"nome" binding:"required"`
		Telefone string `json:"telefone" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	createPending(c, users.User{
		Nome:     input.Nome,
		Telefone: input.Telefone,
		Email:    input.Email,
	})
}

// RegisterResearcher is the researcher/student variant of the contact form;
// it additionally requires institutional fields.
func RegisterResearcher(c *gin.Context) {
	var input struct {
		Nome         string `json:"nome" binding:"required"`
		Telefone     string `json:"telefone" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Instituicao  string `json:"instituicao" binding:"required"`
		AreaPesquisa string `json:"area_pesquisa" binding:"required"`
		Lattes       string `json:"lattes"`
		TipoVinculo  string `json:"tipo_vinculo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	createPending(c, users.User{
		Nome:         input.Nome,
		Telefone:     input.Telefone,
		Email:        input.Email,
		UserType:     "pesquisador",
		Instituicao:  input.Instituicao,
		AreaPesquisa: input.AreaPesquisa,
		Lattes:       input.Lattes,
		TipoVinculo:  input.TipoVinculo,
	})
}

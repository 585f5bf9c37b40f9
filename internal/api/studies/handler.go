package studies

import (
	"errors"
	"net/http"

	"amparo-backend/database"
	"amparo-backend/internal/api/pagination"
	"amparo-backend/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// GET /studies
// ------------------------------
func ListStudies(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	page := pagination.Parse(c)

	var total int64
	if err := db.Model(&content.Study{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load studies"})
		return
	}

	rows := make([]content.Study, 0)
	err := db.Model(&content.Study{}).
		Order("published_date DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load studies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studies":     rows,
		"total":       total,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total_pages": pagination.TotalPages(total, page.PerPage),
	})
}

// ------------------------------
// GET /studies/:id
// ------------------------------
func GetStudy(c *gin.Context) {
	var study content.Study
	err := database.DB.WithContext(c.Request.Context()).
		First(&study, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Study not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load study"})
		return
	}

	c.JSON(http.StatusOK, study)
}

// ------------------------------
// POST /studies
// ------------------------------
func CreateStudy(c *gin.Context) {
	var input content.Study
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	input.ID = 0
	if input.ContentType == "" {
		input.ContentType = "html"
	}

	if err := database.DB.WithContext(c.Request.Context()).Create(&input).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Study already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create study"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Study created", "id": input.ID})
}

// ------------------------------
// PUT /studies/:id
// ------------------------------
func UpdateStudy(c *gin.Context) {
	id := c.Param("id")
	db := database.DB.WithContext(c.Request.Context())

	var input content.Study
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if input.ContentType == "" {
		input.ContentType = "html"
	}

	var existing content.Study
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Study not found"})
		return
	}

	err := db.Model(&content.Study{}).
		Where("id = ?", existing.ID).
		Select("title", "description", "author", "content_type",
			"published_date", "category", "tags", "body", "external_link",
			"pdf_file", "reading_time_minutes", "mockup").
		Updates(input).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update study"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Study updated"})
}

// ------------------------------
// DELETE /studies/:id
// ------------------------------
func DeleteStudy(c *gin.Context) {
	err := database.DB.WithContext(c.Request.Context()).
		Delete(&content.Study{}, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete study"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Study deleted"})
}

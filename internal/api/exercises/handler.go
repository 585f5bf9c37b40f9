package exercises

import (
	"errors"
	"net/http"

	"amparo-backend/database"
	"amparo-backend/internal/api/pagination"
	"amparo-backend/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func exercisesQuery(db *gorm.DB, subcategory string) *gorm.DB {
	q := db.Model(&content.Exercise{})
	if subcategory != "" {
		q = q.Where("subcategory = ?", subcategory)
	}
	return q
}

// ------------------------------
// GET /exercises
// ------------------------------
func ListExercises(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	subcategory := c.Query("subcategory")
	page := pagination.Parse(c)

	var total int64
	if err := exercisesQuery(db, subcategory).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exercises"})
		return
	}

	rows := make([]content.Exercise, 0)
	err := exercisesQuery(db, subcategory).
		Order("published_date DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exercises"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exercises":   rows,
		"total":       total,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total_pages": pagination.TotalPages(total, page.PerPage),
	})
}

// ------------------------------
// GET /exercises/:id
// ------------------------------
func GetExercise(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	var exercise content.Exercise
	err := db.First(&exercise, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exercise"})
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// ------------------------------
// POST /exercises
// ------------------------------
func CreateExercise(c *gin.Context) {
	var input content.Exercise
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	input.ID = 0

	if err := database.DB.WithContext(c.Request.Context()).Create(&input).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Exercise already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Exercise created", "id": input.ID})
}

// ------------------------------
// PUT /exercises/:id
// ------------------------------
func UpdateExercise(c *gin.Context) {
	id := c.Param("id")
	db := database.DB.WithContext(c.Request.Context())

	var input content.Exercise
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var existing content.Exercise
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}

	// Struct update with an explicit column list: zero values still land,
	// and the json serializer on the list columns stays in effect.
	err := db.Model(&content.Exercise{}).
		Where("id = ?", existing.ID).
		Select("title", "description", "instructor", "duration_minutes",
			"difficulty_level", "category", "subcategory", "video_url",
			"thumbnail", "published_date", "tags", "equipment_needed",
			"body", "mockup").
		Updates(input).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update exercise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise updated"})
}

// ------------------------------
// DELETE /exercises/:id
// ------------------------------
func DeleteExercise(c *gin.Context) {
	err := database.DB.WithContext(c.Request.Context()).
		Delete(&content.Exercise{}, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exercise"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

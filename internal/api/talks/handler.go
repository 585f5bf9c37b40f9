package talks

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
// GET /talks
// ------------------------------
func ListTalks(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	subcategory := c.Query("subcategory")
	page := pagination.Parse(c)

	var total int64
	if err := translatedTalksQuery(db, subcategory).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load talks"})
		return
	}

	var rows []content.Talk
	err := preloadTalk(translatedTalksQuery(db, subcategory)).
		Order("t.date_time DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load talks"})
		return
	}

	out := make([]TalkResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, toTalkResponse(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"talks":       out,
		"total":       total,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total_pages": pagination.TotalPages(total, page.PerPage),
	})
}

// ------------------------------
// GET /talks/:id
// ------------------------------
func GetTalk(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	id := c.Param("id")

	var talk content.Talk
	err := preloadTalk(translatedTalksQuery(db, "")).
		Where("talks.id = ?", id).
		First(&talk).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Talk not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load talk"})
		return
	}

	c.JSON(http.StatusOK, toTalkResponse(talk))
}

// ------------------------------
// POST /talks
// ------------------------------
// The aggregate is written as a unit: parent row, its single pt-br
// translation, then the video rows, all in one transaction so a failure
// can never leave an orphaned parent behind.
func CreateTalk(c *gin.Context) {
	var req TalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var talkID uint
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		talk := content.Talk{
			Speaker:     req.Speaker,
			Moderator:   req.Moderator,
			Slug:        req.Slug,
			Image:       req.Image,
			Publish:     req.publish(),
			Banner:      req.Banner,
			Posted:      req.Posted,
			Subcategory: req.subcategory(),
		}
		if err := tx.Create(&talk).Error; err != nil {
			return err
		}

		translation := content.TalkTranslation{
			LanguageCode:  content.LocalePTBR,
			TalkID:        talk.ID,
			Title:         req.Title,
			Body:          req.Content,
			DateTime:      req.DateTime,
			ResumeSpeaker: req.ResumeSpeaker,
			Affiliation:   req.Affiliation,
		}
		if err := tx.Create(&translation).Error; err != nil {
			return err
		}

		for _, url := range req.Videos {
			video := content.LectureVideo{Video: url, TalkID: talk.ID}
			if err := tx.Create(&video).Error; err != nil {
				return err
			}
		}

		talkID = talk.ID
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Talk already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create talk"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Talk created", "id": talkID})
}

// ------------------------------
// PUT /talks/:id
// ------------------------------
// Child videos are replaced wholesale (delete-all-then-insert); the
// transaction makes the replacement atomic, so a reader never observes the
// emptied-out intermediate state.
func UpdateTalk(c *gin.Context) {
	id := c.Param("id")

	var req TalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var talk content.Talk
		if err := tx.First(&talk, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&content.Talk{}).
			Where("id = ?", talk.ID).
			Updates(map[string]interface{}{
				"speaker":     req.Speaker,
				"moderator":   req.Moderator,
				"slug":        req.Slug,
				"image":       req.Image,
				"publish":     req.publish(),
				"banner":      req.Banner,
				"posted":      req.Posted,
				"subcategory": req.subcategory(),
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&content.TalkTranslation{}).
			Where("talk_id = ? AND language_code = ?", talk.ID, content.LocalePTBR).
			Updates(map[string]interface{}{
				"title":          req.Title,
				"body":           req.Content,
				"date_time":      req.DateTime,
				"resume_speaker": req.ResumeSpeaker,
				"affiliation":    req.Affiliation,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("talk_id = ?", talk.ID).
			Delete(&content.LectureVideo{}).Error; err != nil {
			return err
		}
		for _, url := range req.Videos {
			video := content.LectureVideo{Video: url, TalkID: talk.ID}
			if err := tx.Create(&video).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Talk not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update talk"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Talk updated"})
}

// ------------------------------
// DELETE /talks/:id
// ------------------------------
// Children first, parent last: the schema carries no DB-side cascade.
func DeleteTalk(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("talk_id = ?", id).Delete(&content.LectureVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("talk_id = ?", id).Delete(&content.LectureFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("talk_id = ?", id).Delete(&content.TalkTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&content.Talk{}, "id = ?", id).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete talk"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Talk deleted"})
}

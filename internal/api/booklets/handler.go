package booklets

import (
	"errors"
	"net/http"
	"time"

	"amparo-backend/database"
	"amparo-backend/internal/api/pagination"
	"amparo-backend/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Booklets are PDF attachments of talks; the API addresses them by the
// lecture_files row id, and the title/description live on the owning
// talk's translation.

type BookletRequest struct {
	Speaker   string     `json:"speaker"`
	Moderator string     `json:"moderator"`
	Slug      string     `json:"slug"`
	Image     string     `json:"image"`
	Publish   *bool      `json:"publish"`
	Banner    bool       `json:"banner"`
	Posted    *time.Time `json:"posted"`

	Title         string     `json:"title"`
	Content       string     `json:"content"`
	DateTime      *time.Time `json:"date_time"`
	ResumeSpeaker string     `json:"resume_speaker"`
	Affiliation   string     `json:"affiliation"`

	Files []string `json:"files"`
}

func (r BookletRequest) publish() bool {
	if r.Publish == nil {
		return true
	}
	return *r.Publish
}

type bookletRow struct {
	ID            uint       `json:"id"`
	TalkID        uint       `json:"talk_id"`
	File          string     `json:"-"`
	Title         string     `json:"title"`
	Body          string     `json:"-"`
	DateTime      *time.Time `json:"-"`
	Speaker       string     `json:"speaker"`
	Affiliation   string     `json:"affiliation"`
	ResumeSpeaker string     `json:"resume_speaker"`
}

type BookletResponse struct {
	ID            uint       `json:"id"`
	TalkID        uint       `json:"talk_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	PDFFile       string     `json:"pdf_file"`
	PublishedDate *time.Time `json:"published_date"`
	Speaker       string     `json:"speaker"`
	Affiliation   string     `json:"affiliation"`
	ResumeSpeaker string     `json:"resume_speaker,omitempty"`
}

func toBookletResponse(r bookletRow) BookletResponse {
	title := r.Title
	if title == "" {
		title = "Cartilha"
	}
	return BookletResponse{
		ID:            r.ID,
		TalkID:        r.TalkID,
		Title:         title,
		Description:   r.Body,
		PDFFile:       r.File,
		PublishedDate: r.DateTime,
		Speaker:       r.Speaker,
		Affiliation:   r.Affiliation,
		ResumeSpeaker: r.ResumeSpeaker,
	}
}

func bookletsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&content.LectureFile{}).
		Joins("JOIN talk_translations t ON t.talk_id = lecture_files.talk_id AND t.language_code = ?", content.LocalePTBR).
		Joins("JOIN talks b ON b.id = lecture_files.talk_id")
}

const bookletColumns = "lecture_files.id, lecture_files.talk_id, lecture_files.file, " +
	"t.title, t.body, t.date_time, t.affiliation, t.resume_speaker, b.speaker"

// ------------------------------
// GET /booklets
// ------------------------------
func ListBooklets(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	page := pagination.Parse(c)

	var total int64
	if err := bookletsQuery(db).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booklets"})
		return
	}

	var rows []bookletRow
	err := bookletsQuery(db).
		Select(bookletColumns).
		Order("t.date_time DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booklets"})
		return
	}

	out := make([]BookletResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toBookletResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{
		"booklets":    out,
		"total":       total,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total_pages": pagination.TotalPages(total, page.PerPage),
	})
}

// ------------------------------
// GET /booklets/:id
// ------------------------------
func GetBooklet(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	id := c.Param("id")

	var row bookletRow
	err := bookletsQuery(db).
		Select(bookletColumns).
		Where("lecture_files.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booklet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booklet"})
		return
	}

	c.JSON(http.StatusOK, toBookletResponse(row))
}

// ------------------------------
// POST /booklets
// ------------------------------
func CreateBooklet(c *gin.Context) {
	var req BookletRequest
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
			Subcategory: "palestras",
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

		for _, path := range req.Files {
			file := content.LectureFile{File: path, TalkID: talk.ID}
			if err := tx.Create(&file).Error; err != nil {
				return err
			}
		}

		talkID = talk.ID
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Booklet already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booklet"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booklet created", "id": talkID})
}

// ------------------------------
// PUT /booklets/:id
// ------------------------------
// The path id is the file row; the update targets its owning talk and
// replaces every file attached to that talk.
func UpdateBooklet(c *gin.Context) {
	id := c.Param("id")

	var req BookletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var file content.LectureFile
		if err := tx.First(&file, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&content.Talk{}).
			Where("id = ?", file.TalkID).
			Updates(map[string]interface{}{
				"speaker":   req.Speaker,
				"moderator": req.Moderator,
				"slug":      req.Slug,
				"image":     req.Image,
				"publish":   req.publish(),
				"banner":    req.Banner,
				"posted":    req.Posted,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&content.TalkTranslation{}).
			Where("talk_id = ? AND language_code = ?", file.TalkID, content.LocalePTBR).
			Updates(map[string]interface{}{
				"title":          req.Title,
				"body":           req.Content,
				"date_time":      req.DateTime,
				"resume_speaker": req.ResumeSpeaker,
				"affiliation":    req.Affiliation,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("talk_id = ?", file.TalkID).
			Delete(&content.LectureFile{}).Error; err != nil {
			return err
		}
		for _, path := range req.Files {
			row := content.LectureFile{File: path, TalkID: file.TalkID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booklet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booklet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booklet updated"})
}

// ------------------------------
// DELETE /booklets/:id
// ------------------------------
func DeleteBooklet(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var file content.LectureFile
		if err := tx.First(&file, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("talk_id = ?", file.TalkID).Delete(&content.LectureFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("talk_id = ?", file.TalkID).Delete(&content.LectureVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("talk_id = ?", file.TalkID).Delete(&content.TalkTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&content.Talk{}, "id = ?", file.TalkID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booklet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booklet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booklet deleted"})
}

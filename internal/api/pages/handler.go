package pages

import (
	"net/http"

	"amparo-backend/database"
	"amparo-backend/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type PageResponse struct {
	ID       uint   `json:"id"`
	Slug     string `json:"slug"`
	HomePage bool   `json:"home_page"`
	Enabled  bool   `json:"enabled"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
}

// ListPages returns the static pages with their pt-br translation.
func ListPages(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	var pages []content.Page
	err := db.Model(&content.Page{}).
		Joins("JOIN page_translations t ON t.page_id = pages.id AND t.language_code = ?", content.LocalePTBR).
		Select("pages.*").
		Preload("Translations", "language_code = ?", content.LocalePTBR).
		Find(&pages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	out := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		resp := PageResponse{
			ID:       p.ID,
			Slug:     p.Slug,
			HomePage: p.HomePage,
			Enabled:  p.Enabled,
		}
		if len(p.Translations) > 0 {
			resp.Title = p.Translations[0].Title
			resp.Summary = p.Translations[0].Summary
			resp.Body = p.Translations[0].Body
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, out)
}

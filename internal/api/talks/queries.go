package talks

import (
	"amparo-backend/internal/domain/content"

	"gorm.io/gorm"
)

// translatedTalksQuery joins talks to their pinned-locale translation, so a
// parent without a translation row never reaches the read side.
func translatedTalksQuery(db *gorm.DB, subcategory string) *gorm.DB {
	q := db.Model(&content.Talk{}).
		Joins("JOIN talk_translations t ON t.talk_id = talks.id AND t.language_code = ?", content.LocalePTBR)
	if subcategory != "" {
		q = q.Where("talks.subcategory = ?", subcategory)
	}
	return q
}

// preloadTalk shapes the read side of the join: only parent columns are
// scanned into the struct, translations and videos arrive via preloads.
func preloadTalk(db *gorm.DB) *gorm.DB {
	return db.
		Select("talks.*").
		Preload("Translations", "language_code = ?", content.LocalePTBR).
		Preload("Videos")
}

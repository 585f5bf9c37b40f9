package content

// Page is a static portal page; its text lives in PageTranslation rows,
// one per locale, same parent/translation split as talks.
type Page struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Slug     string `gorm:"index" json:"slug"`
	HomePage bool   `gorm:"not null;default:false" json:"home_page"`
	Enabled  bool   `gorm:"not null;default:true" json:"enabled"`

	Translations []PageTranslation `gorm:"foreignKey:PageID" json:"-"`
}

type PageTranslation struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	LanguageCode string `gorm:"type:varchar(10);not null;uniqueIndex:idx_page_translations_locale,priority:1" json:"language_code"`
	PageID       uint   `gorm:"not null;uniqueIndex:idx_page_translations_locale,priority:2" json:"page_id"`
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	Body         string `json:"body"`
}

package content

import "time"

// Study is a flat content row for articles and external publications.
// ContentType distinguishes inline html, external videos and PDFs.
type Study struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Mockup             bool       `gorm:"not null;default:false" json:"mockup"`
	Title              string     `gorm:"not null" json:"title"`
	Description        string     `json:"description"`
	Author             string     `json:"author"`
	ContentType        string     `gorm:"type:varchar(20);not null;default:'html'" json:"content_type"`
	PublishedDate      *time.Time `json:"published_date,omitempty"`
	Category           string     `json:"category"`
	Tags               []string   `gorm:"serializer:json" json:"tags"`
	Body               string     `json:"body"`
	ExternalLink       string     `json:"external_link"`
	PDFFile            string     `gorm:"column:pdf_file" json:"pdf_file"`
	ReadingTimeMinutes *int       `json:"reading_time_minutes,omitempty"`
}

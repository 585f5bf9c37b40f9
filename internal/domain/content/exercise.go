package content

import "time"

// Exercise is a flat (non-composite) content row.
type Exercise struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Mockup          bool       `gorm:"not null;default:false" json:"mockup"`
	Title           string     `gorm:"not null" json:"title"`
	Description     string     `json:"description"`
	Instructor      string     `json:"instructor"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	DifficultyLevel string     `json:"difficulty_level"`
	Category        string     `json:"category"`
	Subcategory     string     `gorm:"index" json:"subcategory"`
	VideoURL        string     `gorm:"column:video_url" json:"video_url"`
	Thumbnail       string     `json:"thumbnail"`
	PublishedDate   *time.Time `json:"published_date,omitempty"`
	Tags            []string   `gorm:"serializer:json" json:"tags"`
	EquipmentNeeded []string   `gorm:"serializer:json" json:"equipment_needed"`
	Body            string     `json:"body"`
}

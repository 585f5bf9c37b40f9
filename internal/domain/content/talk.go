package content

import "time"

// LocalePTBR is the single locale the portal publishes in. The translation
// table keeps its per-locale shape from the legacy schema, pinned to pt-br.
const LocalePTBR = "pt-br"

// Talk is the parent record of the composite lecture aggregate. It owns one
// translation per locale plus zero-or-more video and file rows. The legacy
// schema has no DB-enforced cascade, so every multi-row mutation runs inside
// a single transaction and deletes children before the parent.
type Talk struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Speaker     string     `json:"speaker"`
	Moderator   string     `json:"moderator"`
	Slug        string     `json:"slug"`
	Image       string     `json:"image"`
	Publish     bool       `gorm:"not null;default:true" json:"publish"`
	Banner      bool       `gorm:"not null;default:false" json:"banner"`
	Posted      *time.Time `json:"posted,omitempty"`
	Subcategory string     `gorm:"index" json:"subcategory"`

	Translations []TalkTranslation `gorm:"foreignKey:TalkID" json:"-"`
	Videos       []LectureVideo    `gorm:"foreignKey:TalkID" json:"-"`
	Files        []LectureFile     `gorm:"foreignKey:TalkID" json:"-"`
}

// TalkTranslation carries the localized fields of a talk. Exactly one row
// may exist per (language_code, talk_id).
type TalkTranslation struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	LanguageCode  string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_talk_translations_locale,priority:1" json:"language_code"`
	TalkID        uint       `gorm:"not null;uniqueIndex:idx_talk_translations_locale,priority:2" json:"talk_id"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	DateTime      *time.Time `json:"date_time,omitempty"`
	ResumeSpeaker string     `json:"resume_speaker"`
	Affiliation   string     `json:"affiliation"`
}

// LectureVideo is one embedded video URL of a talk.
type LectureVideo struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Video  string `json:"video"`
	TalkID uint   `gorm:"not null;index" json:"talk_id"`
}

// LectureFile is one downloadable attachment of a talk; booklet entries are
// addressed by the file row's own id.
type LectureFile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	File   string `json:"file"`
	TalkID uint   `gorm:"not null;index" json:"talk_id"`
}

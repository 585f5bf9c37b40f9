package talks

import (
	"fmt"
	"time"

	"amparo-backend/internal/domain/content"
)

// TalkRequest is the write shape for the composite aggregate: parent
// fields, the pinned pt-br translation fields, and the full replacement
// list of video URLs.
type TalkRequest struct {
	Speaker     string     `json:"speaker"`
	Moderator   string     `json:"moderator"`
	Slug        string     `json:"slug"`
	Image       string     `json:"image"`
	Publish     *bool      `json:"publish"`
	Banner      bool       `json:"banner"`
	Posted      *time.Time `json:"posted"`
	Subcategory string     `json:"subcategory"`

	Title         string     `json:"title"`
	Content       string     `json:"content"`
	DateTime      *time.Time `json:"date_time"`
	ResumeSpeaker string     `json:"resume_speaker"`
	Affiliation   string     `json:"affiliation"`

	Videos []string `json:"videos"`
}

func (r TalkRequest) publish() bool {
	if r.Publish == nil {
		return true
	}
	return *r.Publish
}

func (r TalkRequest) subcategory() string {
	if r.Subcategory == "" {
		return "palestras"
	}
	return r.Subcategory
}

type TalkResponse struct {
	ID            uint                   `json:"id"`
	Slug          string                 `json:"slug"`
	Speaker       string                 `json:"speaker"`
	Moderator     string                 `json:"moderator"`
	Image         string                 `json:"image"`
	Publish       bool                   `json:"publish"`
	Banner        bool                   `json:"banner"`
	Title         string                 `json:"title"`
	DateTime      *time.Time             `json:"date_time"`
	ResumeSpeaker string                 `json:"resume_speaker"`
	Affiliation   string                 `json:"affiliation"`
	Body          string                 `json:"body"`
	Subcategory   string                 `json:"subcategory"`
	Videos        []content.LectureVideo `json:"videos"`
}

func toTalkResponse(t content.Talk) TalkResponse {
	resp := TalkResponse{
		ID:          t.ID,
		Slug:        t.Slug,
		Speaker:     t.Speaker,
		Moderator:   t.Moderator,
		Image:       t.Image,
		Publish:     t.Publish,
		Banner:      t.Banner,
		Subcategory: t.Subcategory,
		Videos:      t.Videos,
	}
	if resp.Slug == "" {
		resp.Slug = fmt.Sprintf("palestra-%d", t.ID)
	}
	if resp.Subcategory == "" {
		resp.Subcategory = "palestras"
	}
	if resp.Videos == nil {
		resp.Videos = []content.LectureVideo{}
	}

	if len(t.Translations) > 0 {
		tr := t.Translations[0]
		resp.Title = tr.Title
		resp.DateTime = tr.DateTime
		resp.ResumeSpeaker = tr.ResumeSpeaker
		resp.Affiliation = tr.Affiliation
		resp.Body = tr.Body
	}

	if resp.Speaker == "" {
		resp.Speaker = InferSpeakerName(resp.ResumeSpeaker, resp.Affiliation)
	}

	return resp
}

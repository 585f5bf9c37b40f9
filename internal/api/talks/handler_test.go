package talks_test

import (
	"fmt"
	"net/http"
	"testing"

	"amparo-backend/database"
	"amparo-backend/internal/domain/access"
	"amparo-backend/internal/domain/content"
	"amparo-backend/internal/testutil"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
)

func editorCookie(t *testing.T, r *gin.Engine) string {
	testutil.SeedUser(t, access.RoleEditor, "edna", "edna-pass-1", "edna@x.com")
	return testutil.Login(t, r, "edna", "edna-pass-1")
}

func countRows(model any, query string, args ...any) int64 {
	var n int64
	database.DB.Model(model).Where(query, args...).Count(&n)
	return n
}

func TestTalkAggregateLifecycle(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)
	cookie := editorCookie(t, r)

	w := testutil.DoJSON(t, r, http.MethodPost, "/talks", gin.H{
		"title":     "Cuidados com a voz",
		"content":   "<p>Texto da palestra</p>",
		"speaker":   "Dra. Maria",
		"date_time": "2024-03-01T10:00:00Z",
		"videos":    []string{"https://youtu.be/a", "https://youtu.be/b"},
	}, cookie)
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	var created struct {
		ID uint `json:"id"`
	}
	testutil.Decode(t, w, &created)
	c.Assert(created.ID, qt.Not(qt.Equals), uint(0))

	// one parent, one pinned-locale translation, two videos
	c.Assert(countRows(&content.Talk{}, "id = ?", created.ID), qt.Equals, int64(1))
	c.Assert(countRows(&content.TalkTranslation{}, "talk_id = ?", created.ID), qt.Equals, int64(1))
	c.Assert(countRows(&content.LectureVideo{}, "talk_id = ?", created.ID), qt.Equals, int64(2))

	w = testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/talks/%d", created.ID), nil, "")
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var got struct {
		Title   string `json:"title"`
		Speaker string `json:"speaker"`
		Videos  []struct {
			Video string `json:"video"`
		} `json:"videos"`
	}
	testutil.Decode(t, w, &got)
	c.Assert(got.Title, qt.Equals, "Cuidados com a voz")
	c.Assert(got.Speaker, qt.Equals, "Dra. Maria")
	c.Assert(got.Videos, qt.HasLen, 2)

	// update with zero videos: replace semantics, not merge
	w = testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/talks/%d", created.ID), gin.H{
		"title":     "Cuidados com a voz (rev)",
		"content":   "<p>Atualizado</p>",
		"speaker":   "Dra. Maria",
		"date_time": "2024-03-01T10:00:00Z",
		"videos":    []string{},
	}, cookie)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(countRows(&content.LectureVideo{}, "talk_id = ?", created.ID), qt.Equals, int64(0))

	var tr content.TalkTranslation
	c.Assert(database.DB.First(&tr, "talk_id = ?", created.ID).Error, qt.IsNil)
	c.Assert(tr.Title, qt.Equals, "Cuidados com a voz (rev)")

	// delete removes the whole aggregate, children included
	w = testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/talks/%d", created.ID), nil, cookie)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(countRows(&content.Talk{}, "id = ?", created.ID), qt.Equals, int64(0))
	c.Assert(countRows(&content.TalkTranslation{}, "talk_id = ?", created.ID), qt.Equals, int64(0))
	c.Assert(countRows(&content.LectureVideo{}, "talk_id = ?", created.ID), qt.Equals, int64(0))

	w = testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/talks/%d", created.ID), nil, "")
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}

func TestTalkUpdateReplacesVideos(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)
	cookie := editorCookie(t, r)

	w := testutil.DoJSON(t, r, http.MethodPost, "/talks", gin.H{
		"title":  "Palestra",
		"videos": []string{"https://youtu.be/a", "https://youtu.be/b"},
	}, cookie)
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	var created struct {
		ID uint `json:"id"`
	}
	testutil.Decode(t, w, &created)

	w = testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/talks/%d", created.ID), gin.H{
		"title":  "Palestra",
		"videos": []string{"https://youtu.be/c"},
	}, cookie)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	var videos []content.LectureVideo
	database.DB.Where("talk_id = ?", created.ID).Find(&videos)
	c.Assert(videos, qt.HasLen, 1)
	c.Assert(videos[0].Video, qt.Equals, "https://youtu.be/c")
}

func TestTalkSpeakerInferredWhenBlank(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)
	cookie := editorCookie(t, r)

	w := testutil.DoJSON(t, r, http.MethodPost, "/talks", gin.H{
		"title":          "Palestra",
		"resume_speaker": "Professora Doutora com pesquisa em deglutição",
		"affiliation":    "UFRJ",
	}, cookie)
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	var created struct {
		ID uint `json:"id"`
	}
	testutil.Decode(t, w, &created)

	w = testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/talks/%d", created.ID), nil, "")
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var got struct {
		Speaker string `json:"speaker"`
	}
	testutil.Decode(t, w, &got)
	c.Assert(got.Speaker, qt.Equals, "Professora Doutora - UFRJ")
}

func TestTalkListPaginationAndFilter(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)
	cookie := editorCookie(t, r)

	for i := 0; i < 3; i++ {
		sub := "palestras"
		if i == 2 {
			sub = "workshops"
		}
		w := testutil.DoJSON(t, r, http.MethodPost, "/talks", gin.H{
			"title":       fmt.Sprintf("Palestra %d", i),
			"subcategory": sub,
			"date_time":   fmt.Sprintf("2024-03-0%dT10:00:00Z", i+1),
		}, cookie)
		c.Assert(w.Code, qt.Equals, http.StatusCreated)
	}

	w := testutil.DoJSON(t, r, http.MethodGet, "/talks?per_page=2", nil, "")
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var list struct {
		Talks      []struct{ Title string } `json:"talks"`
		Total      int64                    `json:"total"`
		TotalPages int                      `json:"total_pages"`
	}
	testutil.Decode(t, w, &list)
	c.Assert(list.Total, qt.Equals, int64(3))
	c.Assert(list.TotalPages, qt.Equals, 2)
	c.Assert(list.Talks, qt.HasLen, 2)
	// newest first
	c.Assert(list.Talks[0].Title, qt.Equals, "Palestra 2")

	w = testutil.DoJSON(t, r, http.MethodGet, "/talks?subcategory=workshops", nil, "")
	testutil.Decode(t, w, &list)
	c.Assert(list.Total, qt.Equals, int64(1))
	c.Assert(list.TotalPages, qt.Equals, 1)
}

func TestTalkMutationRequiresIdentity(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/talks", gin.H{"title": "x"}, "")
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)

	w = testutil.DoJSON(t, r, http.MethodDelete, "/talks/1", nil, "")
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
}

func TestTalkUpdateMissing(t *testing.T) {
	c := qt.New(t)
	r := testutil.SetupRouter(t)
	cookie := editorCookie(t, r)

	w := testutil.DoJSON(t, r, http.MethodPut, "/talks/9999", gin.H{"title": "x"}, cookie)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}

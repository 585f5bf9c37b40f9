package stats

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"amparo-backend/database"
	"amparo-backend/internal/domain/content"
	"amparo-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "AMPARO API is running",
		"db":      "postgresql",
	})
}

func countOrFail(c *gin.Context, q *gorm.DB, dest *int64) bool {
	if err := q.Count(dest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return false
	}
	return true
}

// GetStats reports per-table totals plus a users-by-type breakdown. The
// first failing query aborts the response; zeros are never served in place
// of an error.
func GetStats(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	var totalUsers, totalVideos, totalTalks, totalExercises, totalStudies, totalBooklets int64

	ok := countOrFail(c, db.Model(&users.User{}), &totalUsers) &&
		countOrFail(c, db.Model(&content.LectureVideo{}), &totalVideos) &&
		countOrFail(c, db.Model(&content.TalkTranslation{}).Distinct("talk_id"), &totalTalks) &&
		countOrFail(c, db.Model(&content.Exercise{}), &totalExercises) &&
		countOrFail(c, db.Model(&content.Study{}), &totalStudies) &&
		countOrFail(c, db.Model(&content.LectureFile{}), &totalBooklets)
	if !ok {
		return
	}

	type typeCount struct {
		UserType string
		Cnt      int64
	}
	var counts []typeCount
	err := db.Model(&users.User{}).
		Select("user_type, COUNT(id) as cnt").
		Group("user_type").
		Scan(&counts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	byType := map[string]int64{}
	for _, tc := range counts {
		name := tc.UserType
		if name == "" {
			name = "contato"
		}
		byType[name] = tc.Cnt
	}

	c.JSON(http.StatusOK, gin.H{
		"total_usuarios":    totalUsers,
		"total_palestras":   totalTalks,
		"total_videos":      totalVideos,
		"total_exercicios":  totalExercises,
		"total_estudos":     totalStudies,
		"total_cartilhas":   totalBooklets,
		"total_conteudos":   totalTalks + totalExercises + totalStudies + totalBooklets,
		"usuarios_por_tipo": byType,
	})
}

type latestVideo struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Speaker  string `json:"speaker"`
	Date     string `json:"date"`
	VideoURL string `json:"video_url"`
	Source   string `json:"source"`
	Link     string `json:"link"`
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// LatestVideos merges the newest video-bearing entries of every content
// source, newest first.
func LatestVideos(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	limit := 6
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && v > 0 {
		limit = v
	}

	all := make([]latestVideo, 0)

	type talkVideoRow struct {
		ID       uint
		Title    string
		Speaker  string
		DateTime *time.Time
		Video    string
	}
	var talkRows []talkVideoRow
	err := db.Model(&content.Talk{}).
		Select("talks.id, t.title, talks.speaker, t.date_time, v.video").
		Joins("JOIN talk_translations t ON t.talk_id = talks.id AND t.language_code = ?", content.LocalePTBR).
		Joins("JOIN lecture_videos v ON v.talk_id = talks.id").
		Where("talks.publish = ?", true).
		Order("t.date_time DESC").
		Scan(&talkRows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load videos"})
		return
	}
	for _, r := range talkRows {
		all = append(all, latestVideo{
			ID:       r.ID,
			Title:    r.Title,
			Speaker:  r.Speaker,
			Date:     isoDate(r.DateTime),
			VideoURL: r.Video,
			Source:   "talks",
			Link:     fmt.Sprintf("/talks/%d", r.ID),
		})
	}

	var exercises []content.Exercise
	err = db.Where("mockup = ? AND video_url <> ''", false).
		Order("published_date DESC").
		Find(&exercises).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load videos"})
		return
	}
	for _, e := range exercises {
		all = append(all, latestVideo{
			ID:       e.ID,
			Title:    e.Title,
			Speaker:  e.Instructor,
			Date:     isoDate(e.PublishedDate),
			VideoURL: e.VideoURL,
			Source:   "exercises",
			Link:     fmt.Sprintf("/exercises/%d", e.ID),
		})
	}

	var studies []content.Study
	err = db.Where("mockup = ? AND content_type = ?", false, "video").
		Order("published_date DESC").
		Find(&studies).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load videos"})
		return
	}
	for _, s := range studies {
		all = append(all, latestVideo{
			ID:       s.ID,
			Title:    s.Title,
			Speaker:  s.Author,
			Date:     isoDate(s.PublishedDate),
			VideoURL: s.ExternalLink,
			Source:   "studies",
			Link:     fmt.Sprintf("/studies/%d", s.ID),
		})
	}

	// RFC3339 strings sort chronologically, empty dates sink to the end.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date > all[j].Date
	})

	if len(all) > limit {
		all = all[:limit]
	}
	c.JSON(http.StatusOK, all)
}

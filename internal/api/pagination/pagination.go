package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage    = 1
	defaultPerPage = 12
)

type Params struct {
	Page    int
	PerPage int
}

// Parse reads page/per_page query params, falling back to sane defaults on
// anything absent, non-numeric or non-positive.
func Parse(c *gin.Context) Params {
	p := Params{Page: defaultPage, PerPage: defaultPerPage}

	if v, err := strconv.Atoi(c.DefaultQuery("page", "")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("per_page", "")); err == nil && v > 0 {
		p.PerPage = v
	}

	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages is ceil(total/perPage), and 0 for an empty result set.
func TotalPages(total int64, perPage int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	// MaxPage keeps Offset far from int overflow.
	MaxPage = 1_000_000
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern lowercases q and wraps it for a substring match. Queries using
// it must add ESCAPE '\' after the LIKE placeholder so that %, _ and \ in the
// search text match literally.
func LikePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// Params holds the page window requested by a list endpoint.
type Params struct {
	Page     int
	PageSize int
}

// FromContext reads page and pageSize. Anything unparsable or non-positive
// falls back to the defaults; pageSize is clamped to MaxPageSize.
func FromContext(c *gin.Context) Params {
	return Parse(c.Query("page"), c.Query("pageSize"))
}

func Parse(pageRaw, sizeRaw string) Params {
	page := positiveInt(pageRaw, 1)
	if page > MaxPage {
		page = MaxPage
	}
	size := positiveInt(sizeRaw, DefaultPageSize)
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Params{Page: page, PageSize: size}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages is never below 1, so an empty result still reports page 1 of 1.
func (p Params) TotalPages(total int64) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

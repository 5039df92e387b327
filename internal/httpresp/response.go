package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
)

type DataResponse[T any] struct {
	Data T `json:"data"`
}

type Meta struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalCount int64  `json:"totalCount"`
	TotalPages int    `json:"totalPages"`
	Query      string `json:"query"`
}

type ListResponse[T any, M any] struct {
	Data []T `json:"data"`
	Meta M   `json:"meta"`
}

func NewMeta(p pagination.Params, total int64, query string) Meta {
	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: total,
		TotalPages: p.TotalPages(total),
		Query:      query,
	}
}

func OK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, DataResponse[T]{Data: data})
}

func Created[T any](c *gin.Context, data T) {
	c.JSON(http.StatusCreated, DataResponse[T]{Data: data})
}

func List[T any, M any](c *gin.Context, data []T, meta M) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T, M]{
		Data: data,
		Meta: meta,
	})
}

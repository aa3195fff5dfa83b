package server

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

type GridParams struct {
	Sort   string `form:"sort"`
	Asc    *bool  `form:"asc"`
	Offset *int   `form:"offset" binding:"omitempty,min=0"`
	Limit  *int   `form:"limit" binding:"omitempty,min=0"`
}

var errorNotFound = errors.New("not found")

func notFound(format string, args ...any) error {
	return errors.Wrapf(errorNotFound, format, args...)
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string {
	return e.err.Error()
}

func badRequest(err error) error {
	return &badRequestError{err}
}

func sendError(c *gin.Context, err error) {
	var br *badRequestError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errorNotFound):
		status = http.StatusNotFound
	case errors.As(err, &br):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// getP binds the uri and then the query parameters into P.
func getP[P any](f func(*P) (any, error)) func(c *gin.Context) {
	return func(c *gin.Context) {
		var params P

		err := c.ShouldBindUri(&params)
		if err == nil {
			err = c.ShouldBindQuery(&params)
		}
		if err != nil {
			sendError(c, badRequest(err))
			return
		}

		result, err := f(&params)
		if err != nil {
			sendError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func sortBy[T any, R constraints.Ordered](col []T, get func(T) R, asc bool) {
	sort.SliceStable(col, func(i, j int) bool {
		if asc {
			return get(col[i]) < get(col[j])
		}
		return get(col[i]) > get(col[j])
	})
}

// page returns the slice of col selected by the grid as {data, total}.
func page[T any](col []T, grid GridParams, toJSON func(T) gin.H) gin.H {
	total := len(col)

	if grid.Offset != nil {
		col = col[min(*grid.Offset, len(col)):]
	}
	if grid.Limit != nil && *grid.Limit < len(col) {
		col = col[:*grid.Limit]
	}

	data := make([]gin.H, 0, len(col))
	for _, e := range col {
		data = append(data, toJSON(e))
	}

	return gin.H{
		"data":  data,
		"total": total,
	}
}

func encodeCount(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func encodeDate(v time.Time) *time.Time {
	if v.IsZero() {
		return nil
	}
	return &v
}

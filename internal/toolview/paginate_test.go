package toolview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/techcorp/toolspend/internal/models"
)

func TestPaginate(t *testing.T) {
	page := Paginate(23, 10, 1)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 0, page.StartIndex)
	assert.Equal(t, 10, page.EndIndex)
	assert.Equal(t, []int{1, 2, 3}, page.Numbers)
}

func TestPaginateLastPartialPage(t *testing.T) {
	page := Paginate(23, 10, 3)

	assert.Equal(t, 20, page.StartIndex)
	assert.Equal(t, 23, page.EndIndex)
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	// Past the last page serves the last page.
	page := Paginate(23, 10, 7)
	assert.Equal(t, 3, page.Number)

	page = Paginate(23, 10, 0)
	assert.Equal(t, 1, page.Number)

	page = Paginate(23, 10, -5)
	assert.Equal(t, 1, page.Number)
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate(0, 10, 1)

	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Numbers)
	assert.Equal(t, 0, page.EndIndex)
}

func TestPaginateDefaultPageSize(t *testing.T) {
	page := Paginate(25, 0, 1)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPageSlice(t *testing.T) {
	tools := make([]models.Tool, 23)
	for i := range tools {
		tools[i] = models.Tool{ID: int64(i + 1)}
	}

	page := Paginate(len(tools), 10, 3)
	slice := page.Slice(tools)

	assert.Len(t, slice, 3)
	assert.Equal(t, int64(21), slice[0].ID)
	assert.Equal(t, int64(23), slice[2].ID)
}

func TestPageSliceEmpty(t *testing.T) {
	page := Paginate(0, 10, 1)
	assert.Empty(t, page.Slice(nil))
}

func TestPageNextPrevClamp(t *testing.T) {
	page := Paginate(30, 10, 2)
	assert.Equal(t, 3, page.Next())
	assert.Equal(t, 1, page.Prev())

	last := Paginate(30, 10, 3)
	assert.Equal(t, 3, last.Next())

	first := Paginate(30, 10, 1)
	assert.Equal(t, 1, first.Prev())
}

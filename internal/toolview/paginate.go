package toolview

import "github.com/techcorp/toolspend/internal/models"

// DefaultPageSize mirrors the catalog table default.
const DefaultPageSize = 10

// Page describes one slice of a filtered, sorted collection. Number is
// 1-based and always clamped into range, so a request past the last page
// serves the last page rather than an out-of-bounds read.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	StartIndex int   `json:"start_index"`
	EndIndex   int   `json:"end_index"`
	Numbers    []int `json:"numbers"`
}

// Paginate computes the page window for a collection of totalItems.
// pageSize defaults to DefaultPageSize when not positive.
func Paginate(totalItems, pageSize, number int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	if number < 1 {
		number = 1
	}
	if totalPages > 0 && number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	if start > totalItems {
		start = totalItems
	}
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	numbers := make([]int, totalPages)
	for i := range numbers {
		numbers[i] = i + 1
	}

	return Page{
		Number:     number,
		Size:       pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		StartIndex: start,
		EndIndex:   end,
		Numbers:    numbers,
	}
}

// Slice applies the page window to the collection it was computed for.
func (p Page) Slice(tools []models.Tool) []models.Tool {
	if p.StartIndex >= len(tools) {
		return []models.Tool{}
	}
	end := p.EndIndex
	if end > len(tools) {
		end = len(tools)
	}
	return tools[p.StartIndex:end]
}

// Next returns the following page number, clamped at the last page.
func (p Page) Next() int {
	if p.Number < p.TotalPages {
		return p.Number + 1
	}
	return p.Number
}

// Prev returns the preceding page number, clamped at page 1.
func (p Page) Prev() int {
	if p.Number > 1 {
		return p.Number - 1
	}
	return p.Number
}

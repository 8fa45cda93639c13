package util

import "math"

const (
	DefaultPublicPageSize = 12
	DefaultAdminPageSize  = 10
	MaxPageSize           = 100
)

// Calculate turns a 1-based page and a page size into an offset and limit.
// An offset that does not fit in an int is clamped to math.MaxInt.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPublicPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt, size
	}
	return (page - 1) * size, size
}

func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

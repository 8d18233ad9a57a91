package queries

import "math"

const (
	DefaultPageSize = 20
	MaxListLimit    = 200
)

type PageRequest struct {
	Page  int
	Limit int
}

type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func ValidatePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Normalize clamps the request into a valid page and limit.
func (p PageRequest) Normalize() PageRequest {
	return PageRequest{Page: ValidatePage(p.Page), Limit: ValidateLimit(p.Limit)}
}

func (p PageRequest) Offset() int32 {
	off := (p.Page - 1) * p.Limit
	if off > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(off) // #nosec G115 -- clamped above
}

func (p PageRequest) Info(total int64) PageInfo {
	return PageInfo{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

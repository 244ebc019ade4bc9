// Package catalog implements course discovery: category subtree resolution,
// accent-insensitive search, ranked pagination and the content-completeness
// status machine. It works directly over the relational tables so the HTTP
// layer stays a thin wrapper.
package catalog

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCourseNotFound   = errors.New("course not found")
	// ErrCategoryCycle reports a category that is its own ancestor. The schema
	// does not prevent this, so resolution fails fast instead of looping.
	ErrCategoryCycle = errors.New("category hierarchy contains a cycle")
	// ErrCourseNotCompleted is returned when publishing a course whose
	// chapters are not all populated yet.
	ErrCourseNotCompleted = errors.New("course content is not completed")
)

// Course lifecycle states. Published is an instructor-initiated overlay on
// top of the derived states and is never revoked by content edits.
const (
	StatusDraft      = "draft"
	StatusIncomplete = "incomplete"
	StatusCompleted  = "completed"
	StatusPublished  = "published"
)

// Sort is a discovery sort policy.
type Sort string

const (
	SortRelevance  Sort = "relevance"
	SortTopRated   Sort = "rating_desc"
	SortPriceAsc   Sort = "price_asc"
	SortNewest     Sort = "newest"
	SortBestSeller Sort = "best_seller"
)

// DefaultPageSize matches the listing pages of the storefront.
const DefaultPageSize = 12

const (
	bestSellerStudents = 50
	bestSellerViews    = 1000
	newCourseWindow    = 30 * 24 * time.Hour
)

// ParseSort maps a raw sort parameter to a policy, falling back to Top Rated
// so discovery never fails on a malformed value.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortRelevance, SortTopRated, SortPriceAsc, SortNewest, SortBestSeller:
		return Sort(raw)
	default:
		return SortTopRated
	}
}

// CourseSummary is the fixed, fully-aggregated read-model row every discovery
// query operates over. The sort policy only affects ordering, never the shape.
type CourseSummary struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	Price            float64   `json:"price"`
	PromoPrice       *float64  `json:"promotional_price"`
	Cover            string    `json:"cover"`
	CategoryID       *uint     `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	InstructorID     uint      `json:"instructor_id"`
	InstructorName   string    `json:"instructor_name"`
	Status           string    `json:"status"`
	Rating           *float64  `json:"rating"` // nil when the course has no reviews
	RatingCount      int64     `json:"rating_count"`
	Students         int64     `json:"students"`
	Views            int64     `json:"views"`
	LastUpdated      time.Time `json:"last_updated"`
	IsBestSeller     bool      `json:"is_best_seller"`
	IsNew            bool      `json:"is_new"`
	SearchText       string    `json:"-"`
}

// EffectivePrice is the promotional price when present and valid, else the
// list price. It is the value Price Ascending sorts on.
func (s *CourseSummary) EffectivePrice() float64 {
	if s.PromoPrice != nil && *s.PromoPrice > 0 && *s.PromoPrice < s.Price {
		return *s.PromoPrice
	}
	return s.Price
}

func (s *CourseSummary) deriveFlags(at time.Time) {
	s.IsBestSeller = s.Students > bestSellerStudents || s.Views > bestSellerViews
	s.IsNew = at.Sub(s.LastUpdated) <= newCourseWindow
}

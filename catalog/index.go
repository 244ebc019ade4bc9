package catalog

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
)

// summaryCols is the single aggregated row shape shared by every discovery
// query. Rating stays NULL when no reviews exist so "unreviewed" is never
// confused with a 0-star average.
const summaryCols = `c.id,
c.title,
c.short_description,
c.price,
c.promotional_price AS promo_price,
c.cover_url AS cover,
c.category_id,
cat.name AS category_name,
c.instructor_id,
u.name AS instructor_name,
c.status,
CASE WHEN COUNT(DISTINCT r.id) = 0 THEN NULL ELSE ROUND(AVG(r.rating), 1) END AS rating,
COUNT(DISTINCT r.id) AS rating_count,
COUNT(DISTINCT e.user_id) AS students,
c.views,
c.last_updated,
c.search_text`

func summaryQuery(db *gorm.DB) *gorm.DB {
	return db.Table("courses AS c").
		Select(summaryCols).
		Joins("LEFT JOIN reviews r ON r.course_id = c.id AND r.deleted_at IS NULL").
		Joins("LEFT JOIN enrollments e ON e.course_id = c.id AND e.deleted_at IS NULL").
		Joins("LEFT JOIN categories cat ON cat.id = c.category_id AND cat.deleted_at IS NULL").
		Joins("LEFT JOIN users u ON u.id = c.instructor_id").
		Where("c.deleted_at IS NULL").
		Group("c.id, cat.id, u.id")
}

// Query is one discovery request.
type Query struct {
	Text        string
	CategoryIDs []uint
	Sort        Sort
	Page        int
	PageSize    int
}

// Result is an ordered page plus the exact pre-pagination count.
type Result struct {
	Rows  []CourseSummary `json:"rows"`
	Total int             `json:"total"`
}

// Search filters the catalog index to published courses, optionally narrowed
// by category set and normalized text match, then orders and paginates under
// the requested policy. The candidate set comes from one aggregated query so
// every row's rating and enrollment aggregates share a snapshot, and the
// total always agrees with the filter that produced the rows. Zero matches
// yield an empty page, not an error.
func Search(db *gorm.DB, q Query) (Result, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	normQuery := Normalize(q.Text)
	policy := ParseSort(string(q.Sort))
	if policy == SortRelevance && normQuery == "" {
		// relevance is only meaningful with a query
		policy = SortTopRated
	}

	query := summaryQuery(db).Where("c.status = ?", StatusPublished)
	if len(q.CategoryIDs) > 0 {
		query = query.Where("c.category_id IN ?", q.CategoryIDs)
	}

	var candidates []CourseSummary
	if err := query.Scan(&candidates).Error; err != nil {
		return Result{Rows: []CourseSummary{}}, err
	}

	now := time.Now()
	queryTokens := Tokens(q.Text)
	rows := make([]CourseSummary, 0, len(candidates))
	scores := make(map[uint]int, len(candidates))
	for i := range candidates {
		score := matchScore(&candidates[i], normQuery, queryTokens)
		if score == 0 {
			continue
		}
		candidates[i].deriveFlags(now)
		scores[candidates[i].ID] = score
		rows = append(rows, candidates[i])
	}

	orderRows(rows, policy, scores)

	total := len(rows)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return Result{Rows: rows[start:end], Total: total}, nil
}

// orderRows applies the policy's tie-break cascade. Every policy bottoms out
// in the Top Rated cascade and finally the course id, so the order is a total
// order and repeated calls over unchanged data paginate identically.
func orderRows(rows []CourseSummary, policy Sort, scores map[uint]int) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		switch policy {
		case SortRelevance:
			if scores[a.ID] != scores[b.ID] {
				return scores[a.ID] > scores[b.ID]
			}
		case SortPriceAsc:
			if pa, pb := a.EffectivePrice(), b.EffectivePrice(); pa != pb {
				return pa < pb
			}
		case SortNewest:
			if !a.LastUpdated.Equal(b.LastUpdated) {
				return a.LastUpdated.After(b.LastUpdated)
			}
		case SortBestSeller:
			if a.Students != b.Students {
				return a.Students > b.Students
			}
		}
		return topRatedLess(a, b)
	})
}

// topRatedLess is the Top Rated cascade: unrated strictly after rated, then
// average rating, review count, enrollee count, recency, and id.
func topRatedLess(a, b *CourseSummary) bool {
	if ra, rb := ratingKey(a), ratingKey(b); ra != rb {
		return ra > rb
	}
	if a.RatingCount != b.RatingCount {
		return a.RatingCount > b.RatingCount
	}
	if a.Students != b.Students {
		return a.Students > b.Students
	}
	if !a.LastUpdated.Equal(b.LastUpdated) {
		return a.LastUpdated.After(b.LastUpdated)
	}
	return a.ID > b.ID
}

// ratingKey treats "no reviews" as below every real average.
func ratingKey(s *CourseSummary) float64 {
	if s.Rating == nil {
		return -1
	}
	return *s.Rating
}

// CourseDetail returns the aggregated summary for one course regardless of
// status; callers decide visibility. Unknown or deleted ids map to
// ErrCourseNotFound.
func CourseDetail(db *gorm.DB, courseID uint) (*CourseSummary, error) {
	var sum CourseSummary
	err := summaryQuery(db).Where("c.id = ?", courseID).Take(&sum).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && sum.ID == 0) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	sum.deriveFlags(time.Now())
	return &sum, nil
}

// IncrementViews bumps the detail-page view counter. It is a fire-and-forget
// monotonic signal: lost updates under race are fine, errors are the
// caller's to log, and it never blocks the read that triggered it.
func IncrementViews(db *gorm.DB, courseID uint) error {
	return db.Table("courses").
		Where("id = ?", courseID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// RelatedBestSellers lists other published courses in the same category,
// best sellers first, for the detail page sidebar.
func RelatedBestSellers(db *gorm.DB, categoryID uint, excludeID uint, limit int) ([]CourseSummary, error) {
	var rows []CourseSummary
	err := summaryQuery(db).
		Where("c.status = ? AND c.category_id = ? AND c.id <> ?", StatusPublished, categoryID, excludeID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range rows {
		rows[i].deriveFlags(now)
	}
	orderRows(rows, SortBestSeller, nil)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// InstructorCourses is the unfiltered accessor: every course owned by the
// instructor with the same aggregates, regardless of status.
func InstructorCourses(db *gorm.DB, instructorID uint) ([]CourseSummary, error) {
	var rows []CourseSummary
	err := summaryQuery(db).
		Where("c.instructor_id = ?", instructorID).
		Order("c.id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range rows {
		rows[i].deriveFlags(now)
	}
	return rows, nil
}

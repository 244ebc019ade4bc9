package catalog

import (
	"sort"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// HomePage bundles the storefront landing-page sections.
type HomePage struct {
	Featured      []CourseSummary `json:"featured"`
	MostViewed    []CourseSummary `json:"most_viewed"`
	Newest        []CourseSummary `json:"newest"`
	HotCategories []CategoryStat  `json:"hot_categories"`
}

// CategoryStat is a category with its enrollment count over the last week.
type CategoryStat struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	EnrollCount int64  `json:"enroll_count"`
}

// FeaturedThisWeek ranks published courses by distinct enrollees over the
// trailing week. Courses with no enrollments this week are excluded; the
// caller falls back to Newest when the section comes back empty.
func FeaturedThisWeek(db *gorm.DB, limit int) ([]CourseSummary, error) {
	rows, weekly, err := publishedWithWeekly(db)
	if err != nil {
		return nil, err
	}
	featured := rows[:0:0]
	for _, r := range rows {
		if weekly[r.ID] > 0 {
			featured = append(featured, r)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		a, b := &featured[i], &featured[j]
		if weekly[a.ID] != weekly[b.ID] {
			return weekly[a.ID] > weekly[b.ID]
		}
		if !a.LastUpdated.Equal(b.LastUpdated) {
			return a.LastUpdated.After(b.LastUpdated)
		}
		return a.ID > b.ID
	})
	return clip(featured, limit), nil
}

// MostViewed returns published courses by view count.
func MostViewed(db *gorm.DB, limit int) ([]CourseSummary, error) {
	rows, err := publishedSummaries(db)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		return a.ID > b.ID
	})
	return clip(rows, limit), nil
}

// Newest returns published courses by last-updated.
func Newest(db *gorm.DB, limit int) ([]CourseSummary, error) {
	rows, err := publishedSummaries(db)
	if err != nil {
		return nil, err
	}
	orderRows(rows, SortNewest, nil)
	return clip(rows, limit), nil
}

// TopCategoriesThisWeek ranks categories by enrollments over the trailing
// week.
func TopCategoriesThisWeek(db *gorm.DB, limit int) ([]CategoryStat, error) {
	var stats []CategoryStat
	err := db.Table("enrollments AS e").
		Select("cat.id, cat.name, COUNT(e.user_id) AS enroll_count").
		Joins("JOIN courses c ON c.id = e.course_id AND c.deleted_at IS NULL").
		Joins("JOIN categories cat ON cat.id = c.category_id AND cat.deleted_at IS NULL").
		Where("e.deleted_at IS NULL AND e.enrolled_at >= ?", weekAgo()).
		Group("cat.id, cat.name").
		Order("enroll_count desc, cat.id asc").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func publishedSummaries(db *gorm.DB) ([]CourseSummary, error) {
	var rows []CourseSummary
	if err := summaryQuery(db).Where("c.status = ?", StatusPublished).Scan(&rows).Error; err != nil {
		return nil, err
	}
	at := time.Now()
	for i := range rows {
		rows[i].deriveFlags(at)
	}
	return rows, nil
}

func publishedWithWeekly(db *gorm.DB) ([]CourseSummary, map[uint]int64, error) {
	rows, err := publishedSummaries(db)
	if err != nil {
		return nil, nil, err
	}

	var counts []struct {
		CourseID uint
		Cnt      int64
	}
	err = db.Table("enrollments").
		Select("course_id, COUNT(DISTINCT user_id) AS cnt").
		Where("deleted_at IS NULL AND enrolled_at >= ?", weekAgo()).
		Group("course_id").
		Scan(&counts).Error
	if err != nil {
		return nil, nil, err
	}

	weekly := make(map[uint]int64, len(counts))
	for _, c := range counts {
		weekly[c.CourseID] = c.Cnt
	}
	return rows, weekly, nil
}

func weekAgo() time.Time {
	return now.BeginningOfDay().AddDate(0, 0, -7)
}

func clip(rows []CourseSummary, limit int) []CourseSummary {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

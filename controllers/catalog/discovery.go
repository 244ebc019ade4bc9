package controllers

import (
	"errors"
	"log"
	"time"

	"elearn/catalog"
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	catalogValidator "elearn/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// Cache is the process-wide category cache shared by the discovery handlers
// and the warmer job. InitCache replaces it with the configured TTL at boot;
// tests can swap in a zero-TTL cache to hit the database directly.
var Cache = catalog.NewCategoryCache(60 * time.Second)

// InitCache rebuilds the shared category cache with the configured TTL.
func InitCache(ttl time.Duration) {
	Cache = catalog.NewCategoryCache(ttl)
}

// SearchCourses is the public discovery endpoint. Discovery sits on the
// primary request path, so an internal failure degrades to an empty result
// set instead of a 5xx.
func SearchCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSearch").(*catalogValidator.SearchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var categoryIDs []uint
	if reqData.CategoryID != nil {
		ids, err := catalog.ResolveCategory(db, Cache, *reqData.CategoryID)
		if err != nil {
			if errors.Is(err, catalog.ErrCategoryNotFound) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
			}
			log.Printf("Category resolution failed for %d: %v", *reqData.CategoryID, err)
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", catalog.Result{Rows: []catalog.CourseSummary{}})
		}
		categoryIDs = ids
	}

	result, err := catalog.Search(db, catalog.Query{
		Text:        reqData.Q,
		CategoryIDs: categoryIDs,
		Sort:        catalog.ParseSort(reqData.Sort),
		Page:        reqData.Page,
		PageSize:    catalog.DefaultPageSize,
	})
	if err != nil {
		log.Printf("Course search failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", catalog.Result{Rows: []catalog.CourseSummary{}})
	}

	totalPages := (result.Total + catalog.DefaultPageSize - 1) / catalog.DefaultPageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"rows": result.Rows,
		"pagination": fiber.Map{
			"total":       result.Total,
			"page":        reqData.Page,
			"limit":       catalog.DefaultPageSize,
			"total_pages": totalPages,
		},
	})
}

// GetCategories returns the category tree for navigation
func GetCategories(c *fiber.Ctx) error {
	tree, err := catalog.CategoryTree(database.Database.Db, Cache)
	if err != nil {
		log.Printf("Category tree fetch failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", tree)
}

// GetCourseDetail returns the aggregated course page: summary, curriculum,
// recent reviews and related best sellers. Only published courses are
// visible here; drafts stay private to their owner (see instructor routes).
func GetCourseDetail(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))
	db := database.Database.Db

	sum, err := catalog.CourseDetail(db, courseID)
	if err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Course detail failed for %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	if sum.Status != catalog.StatusPublished {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Non-critical signal; a lost update under race is acceptable.
	if err := catalog.IncrementViews(db, courseID); err != nil {
		log.Printf("View increment failed for %d: %v", courseID, err)
	}

	var chapters []courseModels.Chapter
	db.Where("course_id = ?", courseID).Order("order_index asc, id asc").Find(&chapters)

	var lectures []courseModels.Lecture
	db.Where("course_id = ?", courseID).Order("chapter_id asc, order_index asc, id asc").Find(&lectures)

	reviews := recentReviews(courseID, 10)

	var related []catalog.CourseSummary
	if sum.CategoryID != nil {
		related, err = catalog.RelatedBestSellers(db, *sum.CategoryID, courseID, 5)
		if err != nil {
			log.Printf("Related courses failed for %d: %v", courseID, err)
			related = nil
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   sum,
		"chapters": chapters,
		"lectures": lectures,
		"reviews":  reviews,
		"related":  related,
	})
}

// GetHome returns the landing page sections. Every section degrades to empty
// on failure; the home page never errors out.
func GetHome(c *fiber.Ctx) error {
	db := database.Database.Db

	newest, err := catalog.Newest(db, 10)
	if err != nil {
		log.Printf("Home newest failed: %v", err)
		newest = []catalog.CourseSummary{}
	}

	featured, err := catalog.FeaturedThisWeek(db, 4)
	if err != nil {
		log.Printf("Home featured failed: %v", err)
	}
	if len(featured) == 0 {
		// quiet weeks fall back to the newest courses
		if len(newest) > 4 {
			featured = newest[:4]
		} else {
			featured = newest
		}
	}

	mostViewed, err := catalog.MostViewed(db, 10)
	if err != nil {
		log.Printf("Home most-viewed failed: %v", err)
		mostViewed = []catalog.CourseSummary{}
	}

	hotCats, err := catalog.TopCategoriesThisWeek(db, 8)
	if err != nil {
		log.Printf("Home hot categories failed: %v", err)
		hotCats = []catalog.CategoryStat{}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Home fetched successfully!", catalog.HomePage{
		Featured:      featured,
		MostViewed:    mostViewed,
		Newest:        newest,
		HotCategories: hotCats,
	})
}

type reviewRow struct {
	ID         uint      `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
}

func recentReviews(courseID uint, limit int) []reviewRow {
	var rows []reviewRow
	err := database.Database.Db.Table("reviews AS r").
		Select("r.id, r.rating, r.comment, r.created_at, u.name AS user_name, u.avatar_url AS user_avatar").
		Joins("LEFT JOIN users u ON u.id = r.user_id").
		Where("r.course_id = ? AND r.deleted_at IS NULL", courseID).
		Order("r.created_at desc, r.id desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		log.Printf("Reviews fetch failed for %d: %v", courseID, err)
		return []reviewRow{}
	}
	return rows
}

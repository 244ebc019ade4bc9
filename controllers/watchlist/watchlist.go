package controllers

import (
	"elearn/catalog"
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// AddToWatchlist bookmarks a course for the user
func AddToWatchlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND status = ?", courseID, catalog.StatusPublished).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var existing courseModels.WatchlistItem
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in your watchlist!", nil)
	}

	item := courseModels.WatchlistItem{UserID: userID, CourseID: courseID}
	if err := database.Database.Db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in your watchlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added to watchlist!", item)
}

// RemoveFromWatchlist drops a course from the user's watchlist
func RemoveFromWatchlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	result := database.Database.Db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&courseModels.WatchlistItem{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update watchlist!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course is not in your watchlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from watchlist!", nil)
}

// MyWatchlist lists the user's bookmarked courses, newest first
func MyWatchlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var items []courseModels.WatchlistItem
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch watchlist!", nil)
	}

	courses := make([]catalog.CourseSummary, 0, len(items))
	for _, item := range items {
		sum, err := catalog.CourseDetail(database.Database.Db, item.CourseID)
		if err != nil {
			continue
		}
		courses = append(courses, *sum)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Watchlist fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

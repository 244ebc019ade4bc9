package controllers

import (
	"time"

	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// CompleteLecture records that the learner finished a lecture. Completion is
// idempotent: marking an already-completed lecture succeeds without a new row.
func CompleteLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lectureID := uint(c.Locals("lectureID").(int))

	db := database.Database.Db

	var lecture courseModels.Lecture
	if err := db.Where("id = ? AND course_id = ?", lectureID, courseID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	// Only learners track progress
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var existing courseModels.LectureProgress
	if err := db.Where("user_id = ? AND lecture_id = ?", userID, lectureID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture already completed!", existing)
	}

	progress := courseModels.LectureProgress{
		UserID:      userID,
		LectureID:   lectureID,
		CourseID:    courseID,
		CompletedAt: time.Now(),
	}
	if err := db.Create(&progress).Error; err != nil {
		// the unique index catches a concurrent double-submit; that still
		// counts as completed
		if err := db.Where("user_id = ? AND lecture_id = ?", userID, lectureID).First(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as completed!", progress)
}

// CourseProgress returns the learner's completed lectures in a course along
// with the totals the progress bar needs.
func CourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var completed []uint
	if err := db.Model(&courseModels.LectureProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("lecture_id asc").
		Pluck("lecture_id", &completed).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var totalLectures int64
	db.Model(&courseModels.Lecture{}).Where("course_id = ?", courseID).Count(&totalLectures)

	percent := 0.0
	if totalLectures > 0 {
		percent = float64(len(completed)) / float64(totalLectures) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completed_lectures": completed,
		"completed":          len(completed),
		"total_lectures":     totalLectures,
		"percent":            percent,
	})
}

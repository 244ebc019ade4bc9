package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// InstructorDashboard returns headline numbers for the instructor's courses
func InstructorDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courseIDs []uint
	db.Model(&courseModels.Course{}).
		Where("instructor_id = ?", userID).
		Pluck("id", &courseIDs)

	var totalCourses = int64(len(courseIDs))
	var totalStudents, enrollmentsToday, totalReviews int64
	var avgRating *float64

	if len(courseIDs) > 0 {
		db.Model(&courseModels.Enrollment{}).
			Where("course_id IN ?", courseIDs).
			Distinct("user_id").
			Count(&totalStudents)

		today := now.BeginningOfDay()
		db.Model(&courseModels.Enrollment{}).
			Where("course_id IN ? AND enrolled_at >= ?", courseIDs, today).
			Count(&enrollmentsToday)

		db.Model(&courseModels.Review{}).
			Where("course_id IN ?", courseIDs).
			Count(&totalReviews)

		if totalReviews > 0 {
			db.Model(&courseModels.Review{}).
				Where("course_id IN ?", courseIDs).
				Select("ROUND(AVG(rating), 1)").
				Scan(&avgRating)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_courses":     totalCourses,
		"total_students":    totalStudents,
		"enrollments_today": enrollmentsToday,
		"total_reviews":     totalReviews,
		"average_rating":    avgRating,
	})
}

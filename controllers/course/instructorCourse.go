package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"elearn/catalog"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ownedCourse loads a course and checks the caller may author it: the owning
// instructor, or an admin.
func ownedCourse(c *fiber.Ctx, courseID uint) (*courseModels.Course, error) {
	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&crs).Error; err != nil {
		return nil, catalog.ErrCourseNotFound
	}
	if crs.InstructorID != userID && role != models.RoleAdmin {
		return nil, errors.New("forbidden")
	}
	return &crs, nil
}

// CreateCourse creates a new draft course for the instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseBody)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.CategoryID != nil {
		var category models.Category
		if err := database.Database.Db.First(&category, *reqData.CategoryID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
	}

	objectives, _ := json.Marshal(reqData.Objectives)

	crs := courseModels.Course{
		Title:            reqData.Title,
		ShortDescription: reqData.ShortDescription,
		LongDescription:  reqData.LongDescription,
		Price:            reqData.Price,
		PromotionalPrice: reqData.PromotionalPrice,
		CoverURL:         reqData.CoverURL,
		Objectives:       objectives,
		CategoryID:       reqData.CategoryID,
		InstructorID:     userID,
		Status:           catalog.StatusDraft,
	}

	if err := database.Database.Db.Create(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", crs)
}

// UpdateCourse updates the instructor's own course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.CourseBody)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	crs, err := ownedCourse(c, courseID)
	if err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	if reqData.Title != "" {
		crs.Title = reqData.Title
	}
	if reqData.ShortDescription != "" {
		crs.ShortDescription = reqData.ShortDescription
	}
	if reqData.LongDescription != "" {
		crs.LongDescription = reqData.LongDescription
	}
	if reqData.Price > 0 {
		crs.Price = reqData.Price
	}
	if reqData.PromotionalPrice != nil {
		crs.PromotionalPrice = reqData.PromotionalPrice
	}
	if reqData.CoverURL != "" {
		crs.CoverURL = reqData.CoverURL
	}
	if reqData.Objectives != nil {
		objectives, _ := json.Marshal(reqData.Objectives)
		crs.Objectives = objectives
	}
	if reqData.CategoryID != nil {
		var category models.Category
		if err := database.Database.Db.First(&category, *reqData.CategoryID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		crs.CategoryID = reqData.CategoryID
	}
	crs.LastUpdated = time.Now()
	if err := database.Database.Db.Save(crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// DeleteCourse removes a course and cascades to its content and learner rows
func DeleteCourse(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	if _, err := ownedCourse(c, courseID); err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.Lecture{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.Chapter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.WatchlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&courseModels.Course{}, courseID).Error
	})
	if err != nil {
		log.Printf("Course delete failed for %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// MyCourses lists the instructor's own courses with aggregates, regardless
// of status.
func MyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	rows, err := catalog.InstructorCourses(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": rows,
	})
}

// PublishCourse promotes a completed course to the public catalog
func PublishCourse(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	if _, err := ownedCourse(c, courseID); err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	if err := catalog.Publish(database.Database.Db, courseID); err != nil {
		if errors.Is(err, catalog.ErrCourseNotCompleted) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Every chapter needs at least one lecture before publishing!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", fiber.Map{
		"status": catalog.StatusPublished,
	})
}

// UnpublishCourse takes a course off the public catalog
func UnpublishCourse(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	if _, err := ownedCourse(c, courseID); err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	status, err := catalog.Unpublish(database.Database.Db, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unpublish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course unpublished successfully!", fiber.Map{
		"status": status,
	})
}

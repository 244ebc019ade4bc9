package controllers

import (
	"errors"
	"log"

	"elearn/catalog"
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"elearn/utils"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func respondOwnershipError(c *fiber.Ctx, err error) error {
	if errors.Is(err, catalog.ErrCourseNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
}

// AddChapter appends a chapter to the course and recomputes its status in
// the same transaction.
func AddChapter(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))
	reqData := c.Locals("validatedChapter").(*courseValidator.ChapterBody)

	if _, err := ownedCourse(c, courseID); err != nil {
		return respondOwnershipError(c, err)
	}

	var chapter courseModels.Chapter
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		tx.Model(&courseModels.Chapter{}).
			Where("course_id = ?", courseID).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxOrder)

		chapter = courseModels.Chapter{
			CourseID:   courseID,
			Title:      reqData.Title,
			OrderIndex: maxOrder + 1,
		}
		if err := tx.Create(&chapter).Error; err != nil {
			return err
		}

		_, err := catalog.RecomputeStatus(tx, courseID)
		return err
	})
	if err != nil {
		log.Printf("Chapter create failed for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter created successfully!", chapter)
}

// UpdateChapter renames a chapter
func UpdateChapter(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))
	chapterID := uint(c.Locals("chapterID").(int))
	reqData := c.Locals("validatedChapter").(*courseValidator.ChapterBody)

	if _, err := ownedCourse(c, courseID); err != nil {
		return respondOwnershipError(c, err)
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ?", chapterID, courseID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	chapter.Title = reqData.Title
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&chapter).Error; err != nil {
			return err
		}
		// renames count as content edits and bump last_updated
		_, err := catalog.RecomputeStatus(tx, courseID)
		return err
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// DeleteChapter removes a chapter with its lectures and recomputes status
func DeleteChapter(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))
	chapterID := uint(c.Locals("chapterID").(int))

	if _, err := ownedCourse(c, courseID); err != nil {
		return respondOwnershipError(c, err)
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ?", chapterID, courseID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", chapterID).Delete(&courseModels.Lecture{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&courseModels.Chapter{}, chapterID).Error; err != nil {
			return err
		}
		_, err := catalog.RecomputeStatus(tx, courseID)
		return err
	})
	if err != nil {
		log.Printf("Chapter delete failed for %d: %v", chapterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}

// AddLecture appends a lecture to a chapter and recomputes the course status
func AddLecture(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))
	chapterID := uint(c.Locals("chapterID").(int))
	reqData := c.Locals("validatedLecture").(*courseValidator.LectureBody)

	if _, err := ownedCourse(c, courseID); err != nil {
		return respondOwnershipError(c, err)
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ?", chapterID, courseID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if config.AppConfig != nil && config.AppConfig.MediaProbeEnabled && reqData.VideoURL != "" {
		if err := utils.ProbeVideoURL(reqData.VideoURL); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video URL is not reachable!", nil)
		}
	}

	var lecture courseModels.Lecture
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		tx.Model(&courseModels.Lecture{}).
			Where("chapter_id = ?", chapterID).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxOrder)

		lecture = courseModels.Lecture{
			ChapterID:   chapterID,
			CourseID:    courseID,
			Title:       reqData.Title,
			VideoURL:    reqData.VideoURL,
			DurationSec: reqData.DurationSec,
			IsPreview:   reqData.IsPreview,
			OrderIndex:  maxOrder + 1,
		}
		if err := tx.Create(&lecture).Error; err != nil {
			return err
		}

		_, err := catalog.RecomputeStatus(tx, courseID)
		return err
	})
	if err != nil {
		log.Printf("Lecture create failed for chapter %d: %v", chapterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture created successfully!", lecture)
}

// DeleteLecture removes a lecture and recomputes the course status
func DeleteLecture(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))
	lectureID := uint(c.Locals("lectureID").(int))

	if _, err := ownedCourse(c, courseID); err != nil {
		return respondOwnershipError(c, err)
	}

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lectureID, courseID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&courseModels.Lecture{}, lectureID).Error; err != nil {
			return err
		}
		_, err := catalog.RecomputeStatus(tx, courseID)
		return err
	})
	if err != nil {
		log.Printf("Lecture delete failed for %d: %v", lectureID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}

// ToggleLecturePreview flips whether a lecture is watchable before enrolling
func ToggleLecturePreview(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))
	lectureID := uint(c.Locals("lectureID").(int))

	if _, err := ownedCourse(c, courseID); err != nil {
		return respondOwnershipError(c, err)
	}

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lectureID, courseID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	lecture.IsPreview = !lecture.IsPreview
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&lecture).Update("is_preview", lecture.IsPreview).Error; err != nil {
			return err
		}
		_, err := catalog.RecomputeStatus(tx, courseID)
		return err
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture preview toggled successfully!", fiber.Map{
		"is_preview": lecture.IsPreview,
	})
}

// GetCurriculum returns the chapters and lectures of the instructor's course
func GetCurriculum(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	if _, err := ownedCourse(c, courseID); err != nil {
		return respondOwnershipError(c, err)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ?", courseID).Order("order_index asc, id asc").Find(&chapters)

	var lectures []courseModels.Lecture
	database.Database.Db.Where("course_id = ?", courseID).Order("chapter_id asc, order_index asc, id asc").Find(&lectures)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum fetched successfully!", fiber.Map{
		"chapters": chapters,
		"lectures": lectures,
	})
}

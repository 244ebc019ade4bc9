package controllers

import (
	"elearn/catalog"
	"elearn/database"
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListAllCourses gives admins the whole catalog regardless of status
func ListAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Table("courses").Where("deleted_at IS NULL").Count(&total)

	var rows []catalog.CourseSummary
	err := db.Table("courses AS c").
		Select("c.id, c.title, c.status, c.price, c.promotional_price AS promo_price, c.views, c.last_updated, c.instructor_id, u.name AS instructor_name").
		Joins("LEFT JOIN users u ON u.id = c.instructor_id").
		Where("c.deleted_at IS NULL").
		Order("c.id desc").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": rows,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

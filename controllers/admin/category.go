package controllers

import (
	"strconv"
	"strings"

	catalogController "elearn/controllers/catalog"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

type categoryBody struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

// CreateCategory adds a category (top-level or under a parent)
func CreateCategory(c *fiber.Ctx) error {
	reqData := new(categoryBody)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	reqData.Name = strings.TrimSpace(reqData.Name)
	if reqData.Name == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name is required!"})
	}

	if reqData.ParentID != nil {
		var parent models.Category
		if err := database.Database.Db.First(&parent, *reqData.ParentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent category not found!", nil)
		}
	}

	category := models.Category{Name: reqData.Name, ParentID: reqData.ParentID}
	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	catalogController.Cache.Invalidate()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category created successfully!", category)
}

// UpdateCategory renames or re-parents a category
func UpdateCategory(c *fiber.Ctx) error {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Category ID!", nil)
	}

	var category models.Category
	if err := database.Database.Db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	reqData := new(categoryBody)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if name := strings.TrimSpace(reqData.Name); name != "" {
		category.Name = name
	}
	if reqData.ParentID != nil {
		if *reqData.ParentID == category.ID {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A category cannot be its own parent!", nil)
		}
		var parent models.Category
		if err := database.Database.Db.First(&parent, *reqData.ParentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent category not found!", nil)
		}
		category.ParentID = reqData.ParentID
	}

	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	catalogController.Cache.Invalidate()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory removes a leaf category that has no courses
func DeleteCategory(c *fiber.Ctx) error {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Category ID!", nil)
	}

	var category models.Category
	if err := database.Database.Db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var children int64
	database.Database.Db.Model(&models.Category{}).Where("parent_id = ?", categoryID).Count(&children)
	if children > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category still has subcategories!", nil)
	}

	var courses int64
	database.Database.Db.Model(&courseModels.Course{}).Where("category_id = ?", categoryID).Count(&courses)
	if courses > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category still has courses!", nil)
	}

	if err := database.Database.Db.Delete(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	catalogController.Cache.Invalidate()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

// ListCategories returns the flat category list for the admin screen
func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Order("id asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

func parseID(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

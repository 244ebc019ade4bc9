package adminRoutes

import (
	controllers "elearn/controllers/admin"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all admin management routes
func SetupAdminRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	categoryGroup := app.Group("/admin/category", middleware.JWTMiddleware, adminOnly)
	categoryGroup.Post("/create", controllers.CreateCategory)
	categoryGroup.Get("/list", controllers.ListCategories)
	categoryGroup.Put("/:id", controllers.UpdateCategory)
	categoryGroup.Delete("/:id", controllers.DeleteCategory)

	courseGroup := app.Group("/admin/course", middleware.JWTMiddleware, adminOnly)
	courseGroup.Get("/list", controllers.ListAllCourses)
}

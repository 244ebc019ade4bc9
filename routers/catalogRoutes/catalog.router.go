package catalogRoutes

import (
	controllers "elearn/controllers/catalog"
	validators "elearn/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes sets up the public discovery routes. No auth here:
// browsing the catalog must work for anonymous visitors.
func SetupCatalogRoutes(app *fiber.App) {
	catalogGroup := app.Group("/catalog")

	catalogGroup.Get("/search", validators.SearchQuery(), controllers.SearchCourses)
	catalogGroup.Get("/categories", controllers.GetCategories)
	catalogGroup.Get("/home", controllers.GetHome)
	catalogGroup.Get("/course/:id", validators.CourseID(), controllers.GetCourseDetail)
}

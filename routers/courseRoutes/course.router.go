package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all instructor course management routes
func SetupCourseRoutes(app *fiber.App) {
	instructorOnly := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)

	courseGroup := app.Group("/instructor/course", middleware.JWTMiddleware, instructorOnly)

	// Course CRUD
	courseGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/list", controllers.MyCourses)
	courseGroup.Put("/:id", validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", validators.CourseID(), controllers.DeleteCourse)

	// Publishing
	courseGroup.Post("/:id/publish", validators.CourseID(), controllers.PublishCourse)
	courseGroup.Post("/:id/unpublish", validators.CourseID(), controllers.UnpublishCourse)

	// Curriculum
	courseGroup.Get("/:id/curriculum", validators.CourseID(), controllers.GetCurriculum)
	courseGroup.Post("/:id/chapter", validators.CreateChapter(), controllers.AddChapter)
	courseGroup.Put("/:course_id/chapter/:chapter_id", validators.UpdateChapter(), controllers.UpdateChapter)
	courseGroup.Delete("/:course_id/chapter/:chapter_id", validators.ChapterID(), controllers.DeleteChapter)
	courseGroup.Post("/:course_id/chapter/:chapter_id/lecture", validators.CreateLecture(), controllers.AddLecture)
	courseGroup.Delete("/:course_id/lecture/:lecture_id", validators.LectureID(), controllers.DeleteLecture)
	courseGroup.Post("/:course_id/lecture/:lecture_id/preview", validators.LectureID(), controllers.ToggleLecturePreview)

	// Dashboard
	dashGroup := app.Group("/instructor/dashboard", middleware.JWTMiddleware, instructorOnly)
	dashGroup.Get("/stats", controllers.InstructorDashboard)
}

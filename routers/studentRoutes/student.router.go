package studentRoutes

import (
	enrollmentControllers "elearn/controllers/enrollment"
	progressControllers "elearn/controllers/progress"
	reviewControllers "elearn/controllers/review"
	userControllers "elearn/controllers/user"
	watchlistControllers "elearn/controllers/watchlist"
	"elearn/middleware"
	catalogValidators "elearn/validators/catalog"
	courseValidators "elearn/validators/course"
	reviewValidators "elearn/validators/review"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up all logged-in student routes
func SetupStudentRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// Enrollment
	courseGroup.Post("/:id/enroll", catalogValidators.CourseID(), enrollmentControllers.EnrollInCourse)

	// Reviews (enrolled students only, enforced in the controller)
	courseGroup.Post("/:id/review", catalogValidators.CourseID(), reviewValidators.SubmitReview(), reviewControllers.SubmitReview)
	courseGroup.Delete("/:id/review", catalogValidators.CourseID(), reviewControllers.DeleteMyReview)

	// Watchlist
	courseGroup.Post("/:id/watchlist", catalogValidators.CourseID(), watchlistControllers.AddToWatchlist)
	courseGroup.Delete("/:id/watchlist", catalogValidators.CourseID(), watchlistControllers.RemoveFromWatchlist)

	// Progress
	courseGroup.Post("/:course_id/lecture/:lecture_id/complete", courseValidators.LectureID(), progressControllers.CompleteLecture)
	courseGroup.Get("/:id/progress", catalogValidators.CourseID(), progressControllers.CourseProgress)

	userGroup := app.Group("/user", middleware.JWTMiddleware)
	userGroup.Get("/enrollments", enrollmentControllers.MyEnrollments)
	userGroup.Get("/watchlist", watchlistControllers.MyWatchlist)
	userGroup.Get("/profile", userControllers.GetProfile)
	userGroup.Put("/profile", userControllers.UpdateProfile)
}

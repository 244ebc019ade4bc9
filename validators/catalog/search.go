package catalogValidator

import (
	"strconv"
	"strings"

	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// SearchRequest is the validated discovery query
type SearchRequest struct {
	Q          string
	CategoryID *uint
	Sort       string
	Page       int
}

// SearchQuery validates the public search parameters. Malformed sort or page
// values fall back to defaults so discovery stays available; only a
// non-numeric category id is rejected.
func SearchQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &SearchRequest{
			Q:    strings.TrimSpace(c.Query("q")),
			Sort: strings.TrimSpace(c.Query("sort")),
		}

		reqData.Page = c.QueryInt("page", 1)
		if reqData.Page < 1 {
			reqData.Page = 1
		}

		if raw := strings.TrimSpace(c.Query("category")); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category ID!", nil)
			}
			categoryID := uint(id)
			reqData.CategoryID = &categoryID
		}

		c.Locals("validatedSearch", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"elearn/catalog"
	"elearn/database"
	"elearn/models"
	courseModels "elearn/models/course"
	catalogValidator "elearn/validators/catalog"
	courseValidator "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID = uint(7)

func setupProgressApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", testUserID)
		c.Locals("role", models.RoleStudent)
		return c.Next()
	})
	app.Post("/course/:course_id/lecture/:lecture_id/complete", courseValidator.LectureID(), CompleteLecture)
	app.Get("/course/:id/progress", catalogValidator.CourseID(), CourseProgress)
	return app, db
}

func seedLecture(t *testing.T, db *gorm.DB) (courseModels.Course, courseModels.Lecture) {
	t.Helper()
	crs := courseModels.Course{Title: "Go Basics", InstructorID: 1, Status: catalog.StatusPublished}
	require.NoError(t, db.Create(&crs).Error)
	ch := courseModels.Chapter{CourseID: crs.ID, Title: "Intro"}
	require.NoError(t, db.Create(&ch).Error)
	lec := courseModels.Lecture{CourseID: crs.ID, ChapterID: ch.ID, Title: "Welcome"}
	require.NoError(t, db.Create(&lec).Error)
	return crs, lec
}

func TestCompleteLectureRequiresEnrollment(t *testing.T) {
	app, db := setupProgressApp(t)
	crs, lec := seedLecture(t, db)

	req := httptest.NewRequest("POST", fmt.Sprintf("/course/%d/lecture/%d/complete", crs.ID, lec.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	db.Model(&courseModels.LectureProgress{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCompleteLectureIdempotent(t *testing.T) {
	app, db := setupProgressApp(t)
	crs, lec := seedLecture(t, db)
	require.NoError(t, db.Create(&courseModels.Enrollment{UserID: testUserID, CourseID: crs.ID}).Error)

	url := fmt.Sprintf("/course/%d/lecture/%d/complete", crs.ID, lec.ID)
	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", url, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// marking twice leaves exactly one row
	var count int64
	db.Model(&courseModels.LectureProgress{}).
		Where("user_id = ? AND lecture_id = ?", testUserID, lec.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCompleteLectureUnknownLecture(t *testing.T) {
	app, db := setupProgressApp(t)
	crs, _ := seedLecture(t, db)
	require.NoError(t, db.Create(&courseModels.Enrollment{UserID: testUserID, CourseID: crs.ID}).Error)

	req := httptest.NewRequest("POST", fmt.Sprintf("/course/%d/lecture/9999/complete", crs.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseProgressTotals(t *testing.T) {
	app, db := setupProgressApp(t)
	crs, lec := seedLecture(t, db)

	var ch courseModels.Chapter
	require.NoError(t, db.Where("course_id = ?", crs.ID).First(&ch).Error)
	second := courseModels.Lecture{CourseID: crs.ID, ChapterID: ch.ID, Title: "Setup"}
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, db.Create(&courseModels.Enrollment{UserID: testUserID, CourseID: crs.ID}).Error)

	resp, err := app.Test(httptest.NewRequest("POST", fmt.Sprintf("/course/%d/lecture/%d/complete", crs.ID, lec.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/course/%d/progress", crs.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			CompletedLectures []uint  `json:"completed_lectures"`
			Completed         int     `json:"completed"`
			TotalLectures     int64   `json:"total_lectures"`
			Percent           float64 `json:"percent"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []uint{lec.ID}, body.Data.CompletedLectures)
	assert.Equal(t, 1, body.Data.Completed)
	assert.Equal(t, int64(2), body.Data.TotalLectures)
	assert.Equal(t, 50.0, body.Data.Percent)
}

func TestCourseProgressRequiresEnrollment(t *testing.T) {
	app, db := setupProgressApp(t)
	crs, _ := seedLecture(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", fmt.Sprintf("/course/%d/progress", crs.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

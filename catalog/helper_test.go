package catalog_test

import (
	"fmt"
	"strings"
	"testing"

	"elearn/catalog"
	"elearn/database"
	"elearn/models"
	course "elearn/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name string, parentID *uint) models.Category {
	t.Helper()
	cat := models.Category{Name: name, ParentID: parentID}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func createCourse(t *testing.T, db *gorm.DB, crs course.Course) course.Course {
	t.Helper()
	if crs.Status == "" {
		crs.Status = catalog.StatusPublished
	}
	if crs.InstructorID == 0 {
		crs.InstructorID = 1
	}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	require.NoError(t, db.Create(&course.Enrollment{UserID: userID, CourseID: courseID}).Error)
}

func review(t *testing.T, db *gorm.DB, userID, courseID uint, rating int) {
	t.Helper()
	require.NoError(t, db.Create(&course.Review{UserID: userID, CourseID: courseID, Rating: rating}).Error)
}

func resultIDs(rows []catalog.CourseSummary) []uint {
	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// DeriveStatus computes the content-completeness state from chapter
// population: no chapters at all is a draft, any chapter without a lecture
// is incomplete, otherwise the course is completed.
func DeriveStatus(chapterCount, emptyChapterCount int64) string {
	switch {
	case chapterCount == 0:
		return StatusDraft
	case emptyChapterCount > 0:
		return StatusIncomplete
	default:
		return StatusCompleted
	}
}

// RecomputeStatus re-derives a course's status from its current chapters and
// lectures and stamps last_updated. Authoring handlers call it inside the
// same transaction as the content mutation. A published course keeps its
// published status; the derived state only replaces non-published states.
func RecomputeStatus(db *gorm.DB, courseID uint) (string, error) {
	current, err := courseStatus(db, courseID)
	if err != nil {
		return "", err
	}

	chapters, empty, err := chapterCounts(db, courseID)
	if err != nil {
		return "", err
	}

	next := DeriveStatus(chapters, empty)
	if current == StatusPublished {
		next = StatusPublished
	}

	err = db.Table("courses").Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"status":       next,
			"last_updated": time.Now(),
		}).Error
	if err != nil {
		return "", err
	}
	return next, nil
}

// Publish promotes a course to published. Publishing requires the derived
// content state to be completed, so an instructor cannot surface a course
// with empty chapters.
func Publish(db *gorm.DB, courseID uint) error {
	if _, err := courseStatus(db, courseID); err != nil {
		return err
	}

	chapters, empty, err := chapterCounts(db, courseID)
	if err != nil {
		return err
	}
	if DeriveStatus(chapters, empty) != StatusCompleted {
		return ErrCourseNotCompleted
	}

	return db.Table("courses").Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"status":       StatusPublished,
			"last_updated": time.Now(),
		}).Error
}

// Unpublish takes a course off the public catalog and reverts it to its
// derived content state.
func Unpublish(db *gorm.DB, courseID uint) (string, error) {
	if _, err := courseStatus(db, courseID); err != nil {
		return "", err
	}

	chapters, empty, err := chapterCounts(db, courseID)
	if err != nil {
		return "", err
	}

	next := DeriveStatus(chapters, empty)
	err = db.Table("courses").Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"status":       next,
			"last_updated": time.Now(),
		}).Error
	if err != nil {
		return "", err
	}
	return next, nil
}

func courseStatus(db *gorm.DB, courseID uint) (string, error) {
	var row struct{ Status string }
	err := db.Table("courses").
		Select("status").
		Where("id = ? AND deleted_at IS NULL", courseID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrCourseNotFound
	}
	if err != nil {
		return "", err
	}
	return row.Status, nil
}

func chapterCounts(db *gorm.DB, courseID uint) (chapters int64, empty int64, err error) {
	err = db.Table("chapters").
		Where("course_id = ? AND deleted_at IS NULL", courseID).
		Count(&chapters).Error
	if err != nil {
		return 0, 0, err
	}

	err = db.Table("chapters AS ch").
		Where("ch.course_id = ? AND ch.deleted_at IS NULL", courseID).
		Where("NOT EXISTS (SELECT 1 FROM lectures l WHERE l.chapter_id = ch.id AND l.deleted_at IS NULL)").
		Count(&empty).Error
	if err != nil {
		return 0, 0, err
	}
	return chapters, empty, nil
}

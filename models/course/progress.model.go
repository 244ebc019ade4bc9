package course

import (
	"time"

	"gorm.io/gorm"
)

// LectureProgress marks a lecture as completed by a learner. The unique index
// closes the race where concurrent submissions could double-insert; marking a
// lecture twice is a no-op at the handler level.
type LectureProgress struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lecture;not null"`
	LectureID   uint      `json:"lecture_id" gorm:"uniqueIndex:idx_progress_user_lecture;index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
}

package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course. One row per (user, course).
type Enrollment struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_enroll_user_course;not null"`
	CourseID   uint      `json:"course_id" gorm:"uniqueIndex:idx_enroll_user_course;index;not null"`
	Reference  string    `json:"reference"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

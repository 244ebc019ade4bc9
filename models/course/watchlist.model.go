package course

import "gorm.io/gorm"

// WatchlistItem bookmarks a course for a user
type WatchlistItem struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_watch_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_watch_user_course;index;not null"`
}

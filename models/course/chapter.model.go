package course

import "gorm.io/gorm"

// Chapter is an ordered section of a course
type Chapter struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // chapter order in course
}

// Lecture is a leaf of a chapter
type Lecture struct {
	gorm.Model
	ChapterID   uint   `json:"chapter_id" gorm:"index;not null"`
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	VideoURL    string `json:"video_url"`
	DurationSec int    `json:"duration_sec" gorm:"default:0"`
	IsPreview   bool   `json:"is_preview" gorm:"default:false"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
}

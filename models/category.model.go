package models

import "gorm.io/gorm"

// Category forms a forest: a nil ParentID marks a top-level category.
type Category struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	ParentID *uint  `json:"parent_id" gorm:"index"`
}

package course

import (
	"time"

	"elearn/catalog"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a marketplace course
type Course struct {
	gorm.Model
	Title            string         `json:"title" gorm:"not null"`
	ShortDescription string         `json:"short_description" gorm:"type:text"`
	LongDescription  string         `json:"long_description" gorm:"type:text"`
	Price            float64        `json:"price" gorm:"default:0"`
	PromotionalPrice *float64       `json:"promotional_price"` // effective only when 0 < promo < price
	CoverURL         string         `json:"cover_url"`
	Objectives       datatypes.JSON `json:"objectives"`
	CategoryID       *uint          `json:"category_id" gorm:"index"`
	InstructorID     uint           `json:"instructor_id" gorm:"index;not null"`
	Status           string         `json:"status" gorm:"default:'draft'"` // draft, incomplete, completed, published
	Views            int64          `json:"views" gorm:"default:0"`
	LastUpdated      time.Time      `json:"last_updated"`
	SearchText       string         `json:"-" gorm:"index"`
}

// BeforeSave keeps the normalized search column and the recency stamp in step
// with the course content.
func (c *Course) BeforeSave(tx *gorm.DB) error {
	c.SearchText = catalog.Normalize(c.Title + " " + c.ShortDescription)
	if c.LastUpdated.IsZero() {
		c.LastUpdated = time.Now()
	}
	return nil
}

// EffectivePrice is the promotional price when present and valid, else the
// list price.
func (c *Course) EffectivePrice() float64 {
	if c.PromotionalPrice != nil && *c.PromotionalPrice > 0 && *c.PromotionalPrice < c.Price {
		return *c.PromotionalPrice
	}
	return c.Price
}

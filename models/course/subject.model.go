package course

import "gorm.io/gorm"

// Subject groups courses in the public catalog
type Subject struct {
	gorm.Model
	Title string `json:"title"`
	Slug  string `json:"slug" gorm:"uniqueIndex;not null"`
}

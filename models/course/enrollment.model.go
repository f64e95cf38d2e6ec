package course

import "gorm.io/gorm"

// Enrollment links a student to a course
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Course   Course `json:"course" gorm:"foreignKey:CourseID"`
	Status   string `json:"status" gorm:"default:'ENROLLED'"`
}

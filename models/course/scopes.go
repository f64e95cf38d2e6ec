package course

import "gorm.io/gorm"

// Ownership predicates for owner-scoped lookups. Every manage route resolves
// records through one of these; a miss is reported as not-found, never forbidden.

// OwnedBy restricts owner-bearing rows (courses, typed items) to one owner
func OwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", userID)
	}
}

// ModuleOwnedBy restricts modules to those whose course is owned by the user
func ModuleOwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN courses ON courses.id = modules.course_id AND courses.deleted_at IS NULL").
			Where("courses.owner_id = ?", userID)
	}
}

// ContentOwnedBy restricts contents through module -> course to one owner
func ContentOwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN modules ON modules.id = contents.module_id AND modules.deleted_at IS NULL").
			Joins("JOIN courses ON courses.id = modules.course_id AND courses.deleted_at IS NULL").
			Where("courses.owner_id = ?", userID)
	}
}

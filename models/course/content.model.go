package course

import (
	"fmt"

	"gorm.io/gorm"
)

// Content attaches one typed item (text/video/image/file) to a module,
// carrying its own order within the module.
type Content struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	ItemType   string `json:"item_type" gorm:"index;not null"` // one of ItemTypes
	ItemID     uint   `json:"item_id" gorm:"index;not null"`
	OrderIndex int    `json:"order" gorm:"default:0"` // content order in module, zero-based
}

// Allowed content item type tags
const (
	ItemTypeText  = "text"
	ItemTypeVideo = "video"
	ItemTypeImage = "image"
	ItemTypeFile  = "file"
)

// ItemTypes is the allow-list of content item type tags
var ItemTypes = []string{ItemTypeText, ItemTypeVideo, ItemTypeImage, ItemTypeFile}

// ValidItemType reports whether tag is an allowed content item type
func ValidItemType(tag string) bool {
	switch tag {
	case ItemTypeText, ItemTypeVideo, ItemTypeImage, ItemTypeFile:
		return true
	}
	return false
}

// Item is implemented by the four typed content models
type Item interface {
	ItemOwnerID() uint
	Render() map[string]interface{}
}

// FetchItem loads the typed item referenced by a content record
func FetchItem(db *gorm.DB, itemType string, itemID uint) (Item, error) {
	switch itemType {
	case ItemTypeText:
		var item Text
		if err := db.First(&item, itemID).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case ItemTypeVideo:
		var item Video
		if err := db.First(&item, itemID).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case ItemTypeImage:
		var item Image
		if err := db.First(&item, itemID).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case ItemTypeFile:
		var item File
		if err := db.First(&item, itemID).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	return nil, fmt.Errorf("unknown content item type %q", itemType)
}

// DeleteItem removes the typed item referenced by a content record.
// Callers delete the content row itself in the same transaction.
func DeleteItem(db *gorm.DB, itemType string, itemID uint) error {
	switch itemType {
	case ItemTypeText:
		return db.Delete(&Text{}, itemID).Error
	case ItemTypeVideo:
		return db.Delete(&Video{}, itemID).Error
	case ItemTypeImage:
		return db.Delete(&Image{}, itemID).Error
	case ItemTypeFile:
		return db.Delete(&File{}, itemID).Error
	}
	return fmt.Errorf("unknown content item type %q", itemType)
}

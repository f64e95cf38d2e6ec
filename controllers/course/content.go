package controllers

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"elearn/utils"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// ContentEntry is one rendered row of a module's content list
type ContentEntry struct {
	ID       uint                   `json:"id"`
	ItemType string                 `json:"item_type"`
	Order    int                    `json:"order"`
	Item     map[string]interface{} `json:"item"`
}

// ContentCreateUpdate creates or updates a typed content item under a module.
// On first creation the item is wrapped in a content record appended to the
// module; updates touch the typed item only.
func ContentCreateUpdate(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	itemType := c.Locals("itemType").(string)
	itemID, _ := c.Locals("itemID").(int)

	title := c.Locals("contentTitle").(string)

	db := database.Database.Db

	// Module must belong to a course owned by the requester
	var module courseModels.Module
	if err := db.Scopes(courseModels.ModuleOwnedBy(userId)).First(&module, moduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var item courseModels.Item
	tx := db.Begin()

	switch itemType {
	case courseModels.ItemTypeText:
		body := c.Locals("contentBody").(string)
		text := courseModels.Text{}
		if itemID != 0 {
			if err := db.Scopes(courseModels.OwnedBy(userId)).First(&text, itemID).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
			}
		}
		text.OwnerID = userId
		text.Title = title
		text.Body = body
		if err := tx.Save(&text).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
		}
		item = &text

	case courseModels.ItemTypeVideo:
		url := c.Locals("contentURL").(string)
		video := courseModels.Video{}
		if itemID != 0 {
			if err := db.Scopes(courseModels.OwnedBy(userId)).First(&video, itemID).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
			}
		}
		video.OwnerID = userId
		video.Title = title
		video.URL = url
		if err := tx.Save(&video).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
		}
		item = &video

	case courseModels.ItemTypeImage:
		image := courseModels.Image{}
		if itemID != 0 {
			if err := db.Scopes(courseModels.OwnedBy(userId)).First(&image, itemID).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
			}
		}
		if file, ok := c.Locals("contentFile").(*multipart.FileHeader); ok && file != nil {
			path, err := utils.SaveUploadedFile(file, filepath.Join(config.AppConfig.UploadDir, "images"))
			if err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
			}
			image.FilePath = path
		}
		image.OwnerID = userId
		image.Title = title
		if err := tx.Save(&image).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
		}
		item = &image

	case courseModels.ItemTypeFile:
		doc := courseModels.File{}
		if itemID != 0 {
			if err := db.Scopes(courseModels.OwnedBy(userId)).First(&doc, itemID).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
			}
		}
		if file, ok := c.Locals("contentFile").(*multipart.FileHeader); ok && file != nil {
			path, err := utils.SaveUploadedFile(file, filepath.Join(config.AppConfig.UploadDir, "files"))
			if err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
			}
			doc.FilePath = path
		}
		doc.OwnerID = userId
		doc.Title = title
		if err := tx.Save(&doc).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
		}
		item = &doc

	default:
		// Unreachable: the validator rejects unknown type tags
		tx.Rollback()
		return middleware.ValidationErrorResponse(c, map[string]string{"model_name": "Unknown content type!"})
	}

	status := fiber.StatusOK
	if itemID == 0 {
		// First creation: wrap the item in a content record appended to the module
		var maxOrder int
		db.Model(&courseModels.Content{}).Where("module_id = ?", module.ID).
			Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)

		content := courseModels.Content{
			ModuleID:   module.ID,
			ItemType:   itemType,
			ItemID:     itemRecordID(item),
			OrderIndex: maxOrder + 1,
		}
		if err := tx.Create(&content).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
		}
		status = fiber.StatusCreated
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
	}

	return middleware.JsonResponse(c, status, true, "Content saved successfully!", fiber.Map{
		"module_id": module.ID,
		"item_type": itemType,
		"item":      item.Render(),
	})
}

// DeleteContent removes a content record and its typed item in one transaction
func DeleteContent(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	db := database.Database.Db

	var content courseModels.Content
	if err := db.Scopes(courseModels.ContentOwnedBy(userId)).First(&content, contentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	tx := db.Begin()
	if err := courseModels.DeleteItem(tx, content.ItemType, content.ItemID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}
	if err := tx.Delete(&content).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", fiber.Map{
		"module_id": content.ModuleID,
	})
}

// ModuleContentList lists a module's ordered contents with rendered items
func ModuleContentList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Scopes(courseModels.ModuleOwnedBy(userId)).First(&module, moduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var contents []courseModels.Content
	if err := db.Where("module_id = ?", module.ID).Order("order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	entries := make([]ContentEntry, 0, len(contents))
	for _, content := range contents {
		item, err := courseModels.FetchItem(db, content.ItemType, content.ItemID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
		}
		entries = append(entries, ContentEntry{
			ID:       content.ID,
			ItemType: content.ItemType,
			Order:    content.OrderIndex,
			Item:     item.Render(),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents fetched successfully!", fiber.Map{
		"module":   module,
		"contents": entries,
	})
}

func itemRecordID(item courseModels.Item) uint {
	switch v := item.(type) {
	case *courseModels.Text:
		return v.ID
	case *courseModels.Video:
		return v.ID
	case *courseModels.Image:
		return v.ID
	case *courseModels.File:
		return v.ID
	}
	return 0
}

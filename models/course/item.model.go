package course

import "gorm.io/gorm"

// Text is plain text content
type Text struct {
	gorm.Model
	OwnerID uint   `json:"owner_id" gorm:"index;not null"`
	Title   string `json:"title"`
	Body    string `json:"body" gorm:"type:text"`
}

func (t *Text) ItemOwnerID() uint { return t.OwnerID }

func (t *Text) Render() map[string]interface{} {
	return map[string]interface{}{"id": t.ID, "title": t.Title, "body": t.Body}
}

// Video is embedded video content referenced by URL
type Video struct {
	gorm.Model
	OwnerID uint   `json:"owner_id" gorm:"index;not null"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

func (v *Video) ItemOwnerID() uint { return v.OwnerID }

func (v *Video) Render() map[string]interface{} {
	return map[string]interface{}{"id": v.ID, "title": v.Title, "url": v.URL}
}

// Image is an uploaded image
type Image struct {
	gorm.Model
	OwnerID  uint   `json:"owner_id" gorm:"index;not null"`
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
}

func (i *Image) ItemOwnerID() uint { return i.OwnerID }

func (i *Image) Render() map[string]interface{} {
	return map[string]interface{}{"id": i.ID, "title": i.Title, "file_path": i.FilePath}
}

// File is an uploaded document of any kind
type File struct {
	gorm.Model
	OwnerID  uint   `json:"owner_id" gorm:"index;not null"`
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
}

func (f *File) ItemOwnerID() uint { return f.OwnerID }

func (f *File) Render() map[string]interface{} {
	return map[string]interface{}{"id": f.ID, "title": f.Title, "file_path": f.FilePath}
}

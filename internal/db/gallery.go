package db

import "time"

// GalleryImage 定义作品展示墙中的图片。
// Description 可为空，空值以 NULL 存储。
type GalleryImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:500;not null" json:"imageUrl"`
	Order       int       `gorm:"column:sort_order;default:0;index" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName 指定自定义表名。
func (GalleryImage) TableName() string {
	return "gallery_images"
}

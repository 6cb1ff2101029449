package db

import "time"

// Service 定义对外展示的印刷服务项目。
// Order 只用于排序展示，允许重复，也不要求连续。
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"size:500" json:"imageUrl"`
	Order       int       `gorm:"column:sort_order;default:0;index" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName 指定自定义表名。
func (Service) TableName() string {
	return "services"
}

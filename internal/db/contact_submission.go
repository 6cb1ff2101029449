package db

import "time"

// ContactSubmission 保存访客通过联系表单提交的咨询。
// 创建后只有 Handled 会被后台修改。
type ContactSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"size:320;not null" json:"email"`
	Phone     *string   `gorm:"size:50" json:"phone"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Handled   bool      `gorm:"not null;default:false;index" json:"handled"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName 指定自定义表名。
func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

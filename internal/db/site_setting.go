package db

import "time"

// SiteSetting 存储后台可配置的站点级键值对。
type SiteSetting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:100;uniqueIndex;not null"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeyBusinessName 表示站点/公司名称。
	SettingKeyBusinessName = "business_name"
	// SettingKeyBusinessPhone 表示对外联系电话。
	SettingKeyBusinessPhone = "business_phone"
	// SettingKeyBusinessEmail 表示对外联系邮箱。
	SettingKeyBusinessEmail = "business_email"
	// SettingKeyBusinessAddress 表示门店地址。
	SettingKeyBusinessAddress = "business_address"
)

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultBusinessName = "PrintPro"

// SiteSettings 描述前台页脚与联系页展示的商家信息。
type SiteSettings struct {
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

// SiteSettingsInput 用于更新商家信息。
type SiteSettingsInput struct {
	BusinessName string `json:"businessName" label:"Business name" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=50"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"max=500"`
}

var siteSettingKeys = []string{
	db.SettingKeyBusinessName,
	db.SettingKeyBusinessPhone,
	db.SettingKeyBusinessEmail,
	db.SettingKeyBusinessAddress,
}

// SiteSettingService 提供商家信息的读取与更新能力。
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

// Get 读取商家信息，如未设置将返回默认值。
func (s *SiteSettingService) Get(ctx context.Context) (SiteSettings, error) {
	result := SiteSettings{BusinessName: defaultBusinessName}

	var records []db.SiteSetting
	if err := s.db.WithContext(ctx).Where("key IN ?", siteSettingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeyBusinessName:
			if strings.TrimSpace(record.Value) != "" {
				result.BusinessName = record.Value
			}
		case db.SettingKeyBusinessPhone:
			result.Phone = record.Value
		case db.SettingKeyBusinessEmail:
			result.Email = record.Value
		case db.SettingKeyBusinessAddress:
			result.Address = record.Value
		}
	}

	return result, nil
}

// Update 保存商家信息，未填写名称时回退默认值。
func (s *SiteSettingService) Update(ctx context.Context, actor *auth.Identity, input SiteSettingsInput) (SiteSettings, error) {
	if err := auth.Authorize(actor); err != nil {
		return SiteSettings{}, err
	}

	input.BusinessName = strings.TrimSpace(input.BusinessName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	input.Address = strings.TrimSpace(input.Address)
	if err := validation.Struct(input); err != nil {
		return SiteSettings{}, err
	}

	sanitized := SiteSettings{
		BusinessName: input.BusinessName,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
	}
	if sanitized.BusinessName == "" {
		sanitized.BusinessName = defaultBusinessName
	}

	values := map[string]string{
		db.SettingKeyBusinessName:    sanitized.BusinessName,
		db.SettingKeyBusinessPhone:   sanitized.Phone,
		db.SettingKeyBusinessEmail:   sanitized.Email,
		db.SettingKeyBusinessAddress: sanitized.Address,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range siteSettingKeys {
			if err := upsertSetting(tx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, err
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

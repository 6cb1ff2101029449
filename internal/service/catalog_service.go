package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/validation"
	"gorm.io/gorm"
)

// ErrServiceNotFound 在指定的服务项目不存在时返回。
var ErrServiceNotFound = errors.New("service not found")

// ServiceInput 描述新建服务项目时可设置的字段。
type ServiceInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"imageUrl" label:"Image URL" validate:"max=500"`
	Order       int    `json:"order"`
}

// ServicePatch 描述更新服务项目时的字段，nil 表示保持原值。
type ServicePatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	Order       *int
}

// CatalogService 负责印刷服务项目的增删改查。
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService 构造 CatalogService。
func NewCatalogService(gdb *gorm.DB) *CatalogService {
	return &CatalogService{db: gdb}
}

// List 返回全部服务项目，按展示顺序排列。
func (s *CatalogService) List(ctx context.Context) ([]db.Service, error) {
	items := make([]db.Service, 0)
	if err := byDisplayOrder(s.db.WithContext(ctx)).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

// Get 根据主键获取服务项目。
func (s *CatalogService) Get(ctx context.Context, id uint) (*db.Service, error) {
	var item db.Service
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &item, nil
}

// Count 返回服务项目总数。
func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&db.Service{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return total, nil
}

// Create 新建服务项目，未指定排序时为 0。
func (s *CatalogService) Create(ctx context.Context, actor *auth.Identity, input ServiceInput) (*db.Service, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}

	input = normalizeServiceInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	item := db.Service{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Order:       input.Order,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &item, nil
}

// Update 按 patch 中给出的字段覆盖服务项目。
func (s *CatalogService) Update(ctx context.Context, actor *auth.Identity, id uint, patch ServicePatch) (*db.Service, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := ServiceInput{
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Order:       item.Order,
	}
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		merged.ImageURL = *patch.ImageURL
	}
	if patch.Order != nil {
		merged.Order = *patch.Order
	}

	merged = normalizeServiceInput(merged)
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}

	item.Title = merged.Title
	item.Description = merged.Description
	item.ImageURL = merged.ImageURL
	item.Order = merged.Order

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return item, nil
}

// Delete 删除服务项目，不存在时返回 ErrServiceNotFound。
func (s *CatalogService) Delete(ctx context.Context, actor *auth.Identity, id uint) error {
	if err := auth.Authorize(actor); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&db.Service{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func normalizeServiceInput(input ServiceInput) ServiceInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	return input
}

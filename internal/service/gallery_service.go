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

// ErrGalleryNotFound 在指定的作品图片不存在时返回。
var ErrGalleryNotFound = errors.New("gallery image not found")

// GalleryService handles gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryInput represents fields accepted when creating a gallery image.
type GalleryInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" label:"Image URL" validate:"required,max=500"`
	Order       int    `json:"order"`
}

// GalleryPatch lists the fields to overwrite on update; nil keeps the stored value.
// A non-nil blank Description clears it.
type GalleryPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	Order       *int
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// List returns all gallery images in display order.
func (s *GalleryService) List(ctx context.Context) ([]db.GalleryImage, error) {
	items := make([]db.GalleryImage, 0)
	if err := byDisplayOrder(s.db.WithContext(ctx)).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return items, nil
}

// Get fetches a gallery image by id.
func (s *GalleryService) Get(ctx context.Context, id uint) (*db.GalleryImage, error) {
	var item db.GalleryImage
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	return &item, nil
}

// Count returns the number of gallery images.
func (s *GalleryService) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&db.GalleryImage{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count gallery images: %w", err)
	}
	return total, nil
}

// Create inserts a new gallery image.
func (s *GalleryService) Create(ctx context.Context, actor *auth.Identity, input GalleryInput) (*db.GalleryImage, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}

	input = normalizeGalleryInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	item := db.GalleryImage{
		Title:       input.Title,
		Description: optionalString(input.Description),
		ImageURL:    input.ImageURL,
		Order:       input.Order,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create gallery image: %w", err)
	}
	return &item, nil
}

// Update modifies an existing gallery image.
func (s *GalleryService) Update(ctx context.Context, actor *auth.Identity, id uint, patch GalleryPatch) (*db.GalleryImage, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := GalleryInput{
		Title:       item.Title,
		Description: derefString(item.Description),
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

	merged = normalizeGalleryInput(merged)
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}

	item.Title = merged.Title
	item.Description = optionalString(merged.Description)
	item.ImageURL = merged.ImageURL
	item.Order = merged.Order

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update gallery image: %w", err)
	}
	return item, nil
}

// Delete removes a gallery image.
func (s *GalleryService) Delete(ctx context.Context, actor *auth.Identity, id uint) error {
	if err := auth.Authorize(actor); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&db.GalleryImage{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete gallery image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGalleryNotFound
	}
	return nil
}

func normalizeGalleryInput(input GalleryInput) GalleryInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	return input
}

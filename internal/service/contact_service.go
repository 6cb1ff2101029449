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

// ErrContactNotFound 在指定的咨询记录不存在时返回。
var ErrContactNotFound = errors.New("contact submission not found")

// ContactInput 是公开联系表单提交的字段，Phone 可选。
type ContactInput struct {
	Name    string `json:"name" validate:"min=2,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone" validate:"max=50"`
	Message string `json:"message" validate:"min=10,max=5000"`
}

// ContactService 负责联系表单的提交与后台处理。
// 提交是唯一允许匿名写入的操作，其余操作都需要管理员身份。
type ContactService struct {
	db *gorm.DB
}

// NewContactService 构造 ContactService。
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// Submit 校验并保存访客提交的咨询，校验失败时返回 *validation.Errors 且不落库。
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*db.ContactSubmission, error) {
	input = normalizeContactInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	item := db.ContactSubmission{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   optionalString(input.Phone),
		Message: input.Message,
		Handled: false,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return &item, nil
}

// List 返回全部咨询记录，最新提交的排在最前。
func (s *ContactService) List(ctx context.Context, actor *auth.Identity) ([]db.ContactSubmission, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}

	items := make([]db.ContactSubmission, 0)
	if err := newestFirst(s.db.WithContext(ctx)).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return items, nil
}

// Recent 返回最近的 limit 条咨询记录。
func (s *ContactService) Recent(ctx context.Context, actor *auth.Identity, limit int) ([]db.ContactSubmission, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	items := make([]db.ContactSubmission, 0, limit)
	if err := newestFirst(s.db.WithContext(ctx)).Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list recent contact submissions: %w", err)
	}
	return items, nil
}

// Counts 返回未处理与全部咨询的数量。
func (s *ContactService) Counts(ctx context.Context, actor *auth.Identity) (unhandled, total int64, err error) {
	if err := auth.Authorize(actor); err != nil {
		return 0, 0, err
	}

	base := s.db.WithContext(ctx).Model(&db.ContactSubmission{})
	if err := base.Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count contact submissions: %w", err)
	}
	if unhandled, err = s.CountUnhandled(ctx); err != nil {
		return 0, 0, err
	}
	return unhandled, total, nil
}

// CountUnhandled 返回未处理咨询数量，供后台导航角标使用。
func (s *ContactService) CountUnhandled(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&db.ContactSubmission{}).Where("handled = ?", false).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count unhandled contact submissions: %w", err)
	}
	return total, nil
}

// SetHandled 将咨询标记为已处理或未处理。
func (s *ContactService) SetHandled(ctx context.Context, actor *auth.Identity, id uint, handled bool) (*db.ContactSubmission, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&db.ContactSubmission{}).Where("id = ?", id).Update("handled", handled)
	if result.Error != nil {
		return nil, fmt.Errorf("update contact submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrContactNotFound
	}
	return s.get(ctx, id)
}

// Toggle 翻转咨询的处理状态，连续调用两次会回到原值。
func (s *ContactService) Toggle(ctx context.Context, actor *auth.Identity, id uint) (*db.ContactSubmission, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&db.ContactSubmission{}).Where("id = ?", id).
		Update("handled", gorm.Expr("NOT handled"))
	if result.Error != nil {
		return nil, fmt.Errorf("toggle contact submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrContactNotFound
	}
	return s.get(ctx, id)
}

// Delete 删除咨询记录。
func (s *ContactService) Delete(ctx context.Context, actor *auth.Identity, id uint) error {
	if err := auth.Authorize(actor); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&db.ContactSubmission{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete contact submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (s *ContactService) get(ctx context.Context, id uint) (*db.ContactSubmission, error) {
	var item db.ContactSubmission
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact submission: %w", err)
	}
	return &item, nil
}

func normalizeContactInput(input ContactInput) ContactInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Message = strings.TrimSpace(input.Message)
	return input
}

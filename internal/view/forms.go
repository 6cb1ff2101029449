package view

import (
	"strconv"
	"strings"

	"github.com/printpro/internal/db"
	"github.com/printpro/internal/service"
	"github.com/printpro/internal/validation"
)

// ServiceForm 是后台服务编辑对话框的表单值，Order 保留原始输入以便回显。
type ServiceForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	ImageURL    string `form:"imageUrl"`
	Order       string `form:"order"`
}

// ServiceFormFrom 用已有记录预填表单。
func ServiceFormFrom(item *db.Service) ServiceForm {
	if item == nil {
		return ServiceForm{Order: "0"}
	}
	return ServiceForm{
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Order:       strconv.Itoa(item.Order),
	}
}

// Input 转换为服务层输入；Order 不是整数时返回字段错误。
func (f ServiceForm) Input() (service.ServiceInput, error) {
	order, err := parseOrder(f.Order)
	if err != nil {
		return service.ServiceInput{}, err
	}
	return service.ServiceInput{
		Title:       f.Title,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		Order:       order,
	}, nil
}

// Patch 转换为覆盖全部字段的更新。
func (f ServiceForm) Patch() (service.ServicePatch, error) {
	input, err := f.Input()
	if err != nil {
		return service.ServicePatch{}, err
	}
	return service.ServicePatch{
		Title:       &input.Title,
		Description: &input.Description,
		ImageURL:    &input.ImageURL,
		Order:       &input.Order,
	}, nil
}

// GalleryForm 是后台作品编辑对话框的表单值。
type GalleryForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	ImageURL    string `form:"imageUrl"`
	Order       string `form:"order"`
}

// GalleryFormFrom 用已有记录预填表单。
func GalleryFormFrom(item *db.GalleryImage) GalleryForm {
	if item == nil {
		return GalleryForm{Order: "0"}
	}
	form := GalleryForm{
		Title:    item.Title,
		ImageURL: item.ImageURL,
		Order:    strconv.Itoa(item.Order),
	}
	if item.Description != nil {
		form.Description = *item.Description
	}
	return form
}

// Input 转换为服务层输入。
func (f GalleryForm) Input() (service.GalleryInput, error) {
	order, err := parseOrder(f.Order)
	if err != nil {
		return service.GalleryInput{}, err
	}
	return service.GalleryInput{
		Title:       f.Title,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		Order:       order,
	}, nil
}

// Patch 转换为覆盖全部字段的更新，空描述会清除原值。
func (f GalleryForm) Patch() (service.GalleryPatch, error) {
	input, err := f.Input()
	if err != nil {
		return service.GalleryPatch{}, err
	}
	return service.GalleryPatch{
		Title:       &input.Title,
		Description: &input.Description,
		ImageURL:    &input.ImageURL,
		Order:       &input.Order,
	}, nil
}

// ContactForm 是公开联系页的表单值。
type ContactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Message string `form:"message"`
}

// Input 转换为服务层输入。
func (f ContactForm) Input() service.ContactInput {
	return service.ContactInput{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	}
}

func parseOrder(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	order, err := strconv.Atoi(trimmed)
	if err != nil {
		verrs := &validation.Errors{}
		verrs.Add("order", "number", "Order must be a whole number")
		return 0, verrs
	}
	return order, nil
}

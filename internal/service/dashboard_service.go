package service

import (
	"context"

	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
)

const dashboardRecentContacts = 5

// DashboardStats 汇总后台首页展示的统计数据。
type DashboardStats struct {
	Services       int64
	GalleryImages  int64
	NewContacts    int64
	TotalContacts  int64
	RecentContacts []db.ContactSubmission
}

// DashboardService 聚合各业务服务的数据供后台首页使用。
type DashboardService struct {
	catalog  *CatalogService
	gallery  *GalleryService
	contacts *ContactService
}

// NewDashboardService 构造 DashboardService。
func NewDashboardService(catalog *CatalogService, gallery *GalleryService, contacts *ContactService) *DashboardService {
	return &DashboardService{catalog: catalog, gallery: gallery, contacts: contacts}
}

// Stats 返回服务数、作品数、未处理/全部咨询数以及最近的咨询。
func (s *DashboardService) Stats(ctx context.Context, actor *auth.Identity) (DashboardStats, error) {
	var stats DashboardStats
	if err := auth.Authorize(actor); err != nil {
		return stats, err
	}

	var err error
	if stats.Services, err = s.catalog.Count(ctx); err != nil {
		return stats, err
	}
	if stats.GalleryImages, err = s.gallery.Count(ctx); err != nil {
		return stats, err
	}
	if stats.NewContacts, stats.TotalContacts, err = s.contacts.Counts(ctx, actor); err != nil {
		return stats, err
	}
	if stats.RecentContacts, err = s.contacts.Recent(ctx, actor, dashboardRecentContacts); err != nil {
		return stats, err
	}
	return stats, nil
}

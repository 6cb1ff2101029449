package service

import (
	"strings"

	"gorm.io/gorm"
)

// byDisplayOrder 按 sort_order 升序排列，相同排序值按插入顺序（主键）稳定排列。
func byDisplayOrder(q *gorm.DB) *gorm.DB {
	return q.Order("sort_order ASC").Order("id ASC")
}

// newestFirst 按创建时间倒序排列，同一时刻创建的记录以主键倒序兜底。
func newestFirst(q *gorm.DB) *gorm.DB {
	return q.Order("created_at DESC").Order("id DESC")
}

// optionalString 去除首尾空白，空字符串视为缺失并以 nil 表示。
func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

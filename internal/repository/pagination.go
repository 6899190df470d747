package repository

import "gorm.io/gorm"

const maxPageSize = 100

// applyPagination 追加 LIMIT/OFFSET；pageSize<=0 表示不分页，页码小于 1 按第一页处理
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	page = max(page, 1)
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

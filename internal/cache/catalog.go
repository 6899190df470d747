package cache

import (
	"context"
	"time"
)

const (
	keyCategories = "catalog:categories"
	keyFeatured   = "catalog:featured"
)

// GetCategories 读取分类缓存
func GetCategories(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, keyCategories, dest)
}

// SetCategories 写入分类缓存
func SetCategories(ctx context.Context, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, keyCategories, value, ttl)
}

// GetFeatured 读取首页推荐缓存
func GetFeatured(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, keyFeatured, dest)
}

// SetFeatured 写入首页推荐缓存
func SetFeatured(ctx context.Context, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, keyFeatured, value, ttl)
}

// InvalidateCatalog 商品或分类变更后清理目录缓存
func InvalidateCatalog(ctx context.Context) error {
	return Del(ctx, keyCategories, keyFeatured)
}

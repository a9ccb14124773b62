// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"samma3ni-go/internal/model"

	"gorm.io/gorm"
)

// HistoryRepository 定义了搜索历史的持久化操作。
type HistoryRepository interface {
	Create(ctx context.Context, item *model.SearchHistory) error
	FindRecent(ctx context.Context, limit int) ([]model.SearchHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 创建一个新的 HistoryRepository 实例。
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Create 在数据库中插入一条搜索历史记录。
func (r *historyRepository) Create(ctx context.Context, item *model.SearchHistory) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindRecent 按时间倒序返回最近的 limit 条搜索记录。
func (r *historyRepository) FindRecent(ctx context.Context, limit int) ([]model.SearchHistory, error) {
	var items []model.SearchHistory
	err := r.db.WithContext(ctx).
		Order("timestamp desc").
		Order("id desc").
		Limit(limit).
		Find(&items).Error
	return items, err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"samma3ni-go/internal/model"
	"samma3ni-go/internal/repository"
	"strings"
)

// ErrInvalidHistory 表示搜索历史缺少查询词或搜索类型。
var ErrInvalidHistory = errors.New("query and searchType are required")

// HistoryService 接口定义了搜索历史相关的业务操作。
type HistoryService interface {
	SaveSearch(ctx context.Context, query string, searchType model.SearchType) (*model.SearchHistory, error)
	RecentSearches(ctx context.Context) ([]model.SearchHistory, error)
}

type historyService struct {
	historyRepo repository.HistoryRepository
	limit       int
}

// NewHistoryService 创建一个新的 HistoryService 实例。
func NewHistoryService(historyRepo repository.HistoryRepository, limit int) HistoryService {
	return &historyService{historyRepo: historyRepo, limit: limit}
}

// SaveSearch 保存一条搜索记录。
func (s *historyService) SaveSearch(ctx context.Context, query string, searchType model.SearchType) (*model.SearchHistory, error) {
	query = strings.TrimSpace(query)
	if query == "" || !searchType.Valid() {
		return nil, ErrInvalidHistory
	}
	item := &model.SearchHistory{Query: query, SearchType: searchType}
	if err := s.historyRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("保存搜索历史失败: %w", err)
	}
	return item, nil
}

// RecentSearches 返回最近的搜索记录，最新的在前。
func (s *historyService) RecentSearches(ctx context.Context) ([]model.SearchHistory, error) {
	items, err := s.historyRepo.FindRecent(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("查询搜索历史失败: %w", err)
	}
	if items == nil {
		items = []model.SearchHistory{}
	}
	return items, nil
}

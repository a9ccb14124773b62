package repository

import (
	"context"
	"samma3ni-go/internal/model"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库每个连接是独立的数据库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.SearchHistory{}))
	return db
}

func TestHistoryRepository_CreateSetsTimestamp(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))
	before := time.Now().Add(-time.Second)

	item := &model.SearchHistory{Query: "hello", SearchType: model.SearchTypeLyrics}
	require.NoError(t, repo.Create(context.Background(), item))

	assert.NotZero(t, item.ID)
	assert.False(t, item.Timestamp.IsZero())
	assert.True(t, item.Timestamp.After(before))

	items, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hello", items[0].Query)
	assert.Equal(t, model.SearchTypeLyrics, items[0].SearchType)
	assert.WithinDuration(t, item.Timestamp, items[0].Timestamp, time.Second)
}

func TestHistoryRepository_FindRecentNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(newTestDB(t))
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// 插入顺序与时间顺序不同，排序必须按 timestamp 而非 id
	rows := []struct {
		query string
		at    time.Time
	}{
		{"newest", base.Add(2 * time.Hour)},
		{"oldest", base},
		{"middle", base.Add(time.Hour)},
		{"tie-first", base.Add(30 * time.Minute)},
		{"tie-second", base.Add(30 * time.Minute)},
	}
	for _, r := range rows {
		require.NoError(t, repo.Create(ctx, &model.SearchHistory{Query: r.query, SearchType: model.SearchTypeTitle, Timestamp: r.at}))
	}

	items, err := repo.FindRecent(ctx, 4)
	require.NoError(t, err)
	require.Len(t, items, 4)

	got := make([]string, len(items))
	for i, item := range items {
		got[i] = item.Query
	}
	assert.Equal(t, []string{"newest", "middle", "tie-second", "tie-first"}, got)
}

func TestHistoryRepository_FindRecentEmpty(t *testing.T) {
	items, err := NewHistoryRepository(newTestDB(t)).FindRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

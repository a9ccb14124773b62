package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// LyricsCacheRepository 定义了歌词缓存及预取重试计数的操作接口。
type LyricsCacheRepository interface {
	Get(ctx context.Context, songURL string) (string, bool, error)
	Set(ctx context.Context, songURL, lyrics string) error
	IncrAttempts(ctx context.Context, songURL string) (int64, error)
	ResetAttempts(ctx context.Context, songURL string) error
}

type redisLyricsCacheRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewLyricsCacheRepository 创建一个新的 LyricsCacheRepository 实例。
func NewLyricsCacheRepository(redisClient *redis.Client, ttl time.Duration) LyricsCacheRepository {
	return &redisLyricsCacheRepository{redisClient: redisClient, ttl: ttl}
}

func lyricsKey(songURL string) string {
	return "lyrics:" + songURL
}

func attemptsKey(songURL string) string {
	return "kafka:attempts:" + songURL
}

// Get 从 Redis 读取缓存的歌词。第二个返回值表示是否命中。
func (r *redisLyricsCacheRepository) Get(ctx context.Context, songURL string) (string, bool, error) {
	lyrics, err := r.redisClient.Get(ctx, lyricsKey(songURL)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cached lyrics: %w", err)
	}
	return lyrics, true, nil
}

// Set 缓存歌词，过期时间由 ttl 决定。
func (r *redisLyricsCacheRepository) Set(ctx context.Context, songURL, lyrics string) error {
	if err := r.redisClient.Set(ctx, lyricsKey(songURL), lyrics, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache lyrics: %w", err)
	}
	return nil
}

// IncrAttempts 将预取失败次数加一并返回当前次数，计数 24 小时后过期。
func (r *redisLyricsCacheRepository) IncrAttempts(ctx context.Context, songURL string) (int64, error) {
	key := attemptsKey(songURL)
	attempts, err := r.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}
	_ = r.redisClient.Expire(ctx, key, 24*time.Hour).Err()
	return attempts, nil
}

// ResetAttempts 清除预取失败计数。
func (r *redisLyricsCacheRepository) ResetAttempts(ctx context.Context, songURL string) error {
	return r.redisClient.Del(ctx, attemptsKey(songURL)).Err()
}

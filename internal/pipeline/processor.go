// Package pipeline 定义了歌词后台预取的处理流程。
package pipeline

import (
	"context"
	"fmt"
	"samma3ni-go/internal/repository"
	"samma3ni-go/pkg/log"
	"samma3ni-go/pkg/lyrics"
	"samma3ni-go/pkg/metrics"
	"samma3ni-go/pkg/tasks"
)

// Processor 封装了歌词预取的所有依赖和逻辑。
type Processor struct {
	fetcher   lyrics.Fetcher
	cacheRepo repository.LyricsCacheRepository
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(fetcher lyrics.Fetcher, cacheRepo repository.LyricsCacheRepository) *Processor {
	return &Processor{fetcher: fetcher, cacheRepo: cacheRepo}
}

// Process 抓取一首歌的歌词并写入缓存。已缓存的歌曲直接跳过。
func (p *Processor) Process(ctx context.Context, task tasks.LyricsFetchTask) error {
	log.Infof("[Processor] 开始预取歌词, URL: %s, Title: %s", task.SongURL, task.Title)

	// 1. 检查缓存
	if _, ok, err := p.cacheRepo.Get(ctx, task.SongURL); err != nil {
		log.Warnf("[Processor] 步骤1: 读取歌词缓存失败, 继续抓取, Error: %v", err)
	} else if ok {
		log.Infof("[Processor] 步骤1: 歌词已缓存, 跳过, URL: %s", task.SongURL)
		metrics.ObserveLyricsFetch(metrics.LyricsResultCacheHit)
		return nil
	}

	// 2. 抓取歌词
	text, err := p.fetcher.Fetch(ctx, task.SongURL)
	if err != nil {
		metrics.ObserveLyricsFetch(metrics.LyricsResultError)
		return fmt.Errorf("抓取歌词失败: %w", err)
	}
	metrics.ObserveLyricsFetch(metrics.LyricsResultFetched)
	log.Infof("[Processor] 步骤2: 歌词抓取成功, 长度: %d", len(text))

	// 3. 写入缓存
	if err := p.cacheRepo.Set(ctx, task.SongURL, text); err != nil {
		return fmt.Errorf("缓存歌词失败: %w", err)
	}

	log.Infof("[Processor] 歌词预取完成, URL: %s", task.SongURL)
	return nil
}

// Package service 提供了搜索相关的业务逻辑。
package service

import (
	"context"
	"errors"
	"fmt"
	"samma3ni-go/internal/config"
	"samma3ni-go/internal/model"
	"samma3ni-go/internal/repository"
	"samma3ni-go/pkg/catalog"
	"samma3ni-go/pkg/log"
	"samma3ni-go/pkg/lyrics"
	"samma3ni-go/pkg/metrics"
	"samma3ni-go/pkg/relevance"
	"samma3ni-go/pkg/tasks"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidSearch 表示搜索参数缺失或搜索类型不合法。
	ErrInvalidSearch = errors.New("missing query or type")
	// ErrCatalogUnavailable 表示候选歌曲来源不可用。
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// TaskPublisher 发布歌词预取任务。
type TaskPublisher interface {
	PublishLyricsTask(ctx context.Context, task tasks.LyricsFetchTask) error
}

// SearchService 接口定义了搜索操作。
type SearchService interface {
	SearchSongs(ctx context.Context, query string, searchType model.SearchType) ([]model.SongResultDTO, error)
}

type searchService struct {
	source    catalog.Source
	fetcher   lyrics.Fetcher
	cacheRepo repository.LyricsCacheRepository
	publisher TaskPublisher
	searchCfg config.SearchConfig
	lyricsCfg config.LyricsConfig
}

// NewSearchService 创建一个新的 SearchService 实例。publisher 为 nil 时不发布预取任务。
func NewSearchService(
	source catalog.Source,
	fetcher lyrics.Fetcher,
	cacheRepo repository.LyricsCacheRepository,
	publisher TaskPublisher,
	searchCfg config.SearchConfig,
	lyricsCfg config.LyricsConfig,
) SearchService {
	return &searchService{
		source:    source,
		fetcher:   fetcher,
		cacheRepo: cacheRepo,
		publisher: publisher,
		searchCfg: searchCfg,
		lyricsCfg: lyricsCfg,
	}
}

// SearchSongs 获取候选歌曲，按与 query 的 TF-IDF 余弦相似度排序后返回。
func (s *searchService) SearchSongs(ctx context.Context, query string, searchType model.SearchType) ([]model.SongResultDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" || !searchType.Valid() {
		return nil, ErrInvalidSearch
	}
	log.Infof("[SearchService] 开始搜索, query: '%s', type: %s", query, searchType)

	// 1. 获取候选歌曲
	songs, err := s.source.SearchSongs(ctx, query)
	if err != nil {
		log.Errorf("[SearchService] 步骤1: 获取候选歌曲失败: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if limit := s.searchCfg.CandidateLimit; limit > 0 && len(songs) > limit {
		songs = songs[:limit]
	}
	log.Infof("[SearchService] 步骤1: 获取到 %d 首候选歌曲", len(songs))

	// 2. 组装每首歌的文本
	texts, err := s.candidateTexts(ctx, songs, searchType)
	if err != nil {
		return nil, err
	}
	docs := make([]relevance.Document, len(songs))
	for i, song := range songs {
		docs[i] = relevance.Document{ID: song.ID, Text: texts[i]}
	}

	// 3. 计算相似度并排序
	ranked := relevance.Rank(docs, query)
	results := make([]model.SongResultDTO, 0, len(ranked))
	for _, r := range ranked {
		// 取整后为 0 的结果同样不返回
		similarity := relevance.Round(r.Similarity, s.searchCfg.ScorePrecision)
		if similarity <= 0 {
			continue
		}
		song := songs[r.Index]
		results = append(results, model.SongResultDTO{
			Title:      song.Title,
			Artist:     song.Artist,
			URL:        song.URL,
			Image:      song.Image,
			Thumbnail:  song.Thumbnail,
			Similarity: similarity,
		})
	}
	metrics.ObserveSearch(len(songs), len(results))

	log.Infof("[SearchService] 搜索完成, 返回 %d 条结果", len(results))
	return results, nil
}

func (s *searchService) candidateTexts(ctx context.Context, songs []model.Song, searchType model.SearchType) ([]string, error) {
	texts := make([]string, len(songs))
	if searchType != model.SearchTypeLyrics {
		for i, song := range songs {
			texts[i] = song.Title + " " + song.Artist
		}
		return texts, nil
	}

	var g errgroup.Group
	if s.lyricsCfg.MaxConcurrency > 0 {
		g.SetLimit(s.lyricsCfg.MaxConcurrency)
	}
	for i, song := range songs {
		g.Go(func() error {
			texts[i] = s.lyricsFor(ctx, song)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, ctx.Err()
}

// lyricsFor 返回一首歌的歌词：先查缓存，未命中时抓取并写入缓存。
// 抓取失败时返回空字符串，并发布一个后台预取任务。
func (s *searchService) lyricsFor(ctx context.Context, song model.Song) string {
	if song.URL == "" {
		return ""
	}

	text, ok, err := s.cacheRepo.Get(ctx, song.URL)
	if err != nil {
		log.Warnf("[SearchService] 读取歌词缓存失败, url: %s, error: %v", song.URL, err)
	} else if ok {
		metrics.ObserveLyricsFetch(metrics.LyricsResultCacheHit)
		return text
	}

	text, err = s.fetcher.Fetch(ctx, song.URL)
	if err != nil {
		metrics.ObserveLyricsFetch(metrics.LyricsResultError)
		log.Warnf("[SearchService] 抓取歌词失败, 以空文本参与排序, url: %s, error: %v", song.URL, err)
		s.publishPrefetch(ctx, song)
		return ""
	}
	metrics.ObserveLyricsFetch(metrics.LyricsResultFetched)

	if err := s.cacheRepo.Set(ctx, song.URL, text); err != nil {
		log.Warnf("[SearchService] 写入歌词缓存失败, url: %s, error: %v", song.URL, err)
	}
	return text
}

func (s *searchService) publishPrefetch(ctx context.Context, song model.Song) {
	if s.publisher == nil || ctx.Err() != nil {
		return
	}
	task := tasks.LyricsFetchTask{SongURL: song.URL, Title: song.Title, Artist: song.Artist}
	if err := s.publisher.PublishLyricsTask(ctx, task); err != nil {
		log.Errorf("[SearchService] 发布歌词预取任务失败, url: %s, error: %v", song.URL, err)
	}
}

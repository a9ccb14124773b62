// Package catalog 提供了查询外部歌曲目录、获取候选歌曲的客户端。
package catalog

import (
	"context"
	"fmt"
	"samma3ni-go/internal/config"
	"samma3ni-go/internal/model"

	"github.com/elastic/go-elasticsearch/v8"
)

// Source 定义了候选歌曲来源。返回的歌曲按目录给出的相关度排列。
type Source interface {
	SearchSongs(ctx context.Context, query string) ([]model.Song, error)
}

// NewSource 根据配置创建候选来源。provider 为 elasticsearch 时使用 esClient。
func NewSource(cfg config.Config, esClient *elasticsearch.Client) (Source, error) {
	switch cfg.Catalog.Provider {
	case "genius":
		return NewGeniusClient(cfg.Catalog.Genius), nil
	case "elasticsearch":
		if esClient == nil {
			return nil, fmt.Errorf("elasticsearch catalog requires an initialised client")
		}
		return NewElasticSource(esClient, cfg.Elasticsearch.IndexName, cfg.Search.CandidateLimit), nil
	default:
		return nil, fmt.Errorf("unknown catalog provider %q", cfg.Catalog.Provider)
	}
}

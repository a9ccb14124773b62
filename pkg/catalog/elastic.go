package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"samma3ni-go/internal/model"
	"samma3ni-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticSource 从 Elasticsearch 中的歌曲目录索引获取候选歌曲。
type ElasticSource struct {
	client    *elasticsearch.Client
	indexName string
	size      int
}

// NewElasticSource 创建一个新的 ElasticSource 实例。
func NewElasticSource(client *elasticsearch.Client, indexName string, size int) *ElasticSource {
	return &ElasticSource{client: client, indexName: indexName, size: size}
}

// SearchSongs 在 title 与 artist 字段上执行 multi_match 查询。
func (s *ElasticSource) SearchSongs(ctx context.Context, query string) ([]model.Song, error) {
	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^2", "artist"},
			},
		},
		"size": s.size,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("failed to encode es query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.indexName),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		log.Errorf("[ElasticSource] 向 Elasticsearch 发送搜索请求失败: %v", err)
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		log.Errorf("[ElasticSource] Elasticsearch 返回错误, status: %s, body: %s", res.Status(), string(body))
		return nil, fmt.Errorf("elasticsearch returned an error: %s", res.Status())
	}

	var esResponse struct {
		Hits struct {
			Hits []struct {
				Source model.SongDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("failed to decode es response: %w", err)
	}

	songs := make([]model.Song, 0, len(esResponse.Hits.Hits))
	for _, hit := range esResponse.Hits.Hits {
		songs = append(songs, hit.Source.ToSong())
	}
	log.Infof("[ElasticSource] Elasticsearch 返回 %d 首候选歌曲, query: '%s'", len(songs), query)
	return songs, nil
}

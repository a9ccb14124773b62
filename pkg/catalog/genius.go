package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"samma3ni-go/internal/config"
	"samma3ni-go/internal/model"
	"samma3ni-go/pkg/log"
	"strconv"
	"strings"
)

// GeniusClient 通过 Genius API 的 /search 接口获取候选歌曲。
type GeniusClient struct {
	cfg    config.GeniusConfig
	client *http.Client
}

// NewGeniusClient 创建一个新的 Genius 客户端实例。
func NewGeniusClient(cfg config.GeniusConfig) *GeniusClient {
	return &GeniusClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type geniusSearchResponse struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				ID                       int64  `json:"id"`
				Title                    string `json:"title"`
				URL                      string `json:"url"`
				SongArtImageURL          string `json:"song_art_image_url"`
				SongArtImageThumbnailURL string `json:"song_art_image_thumbnail_url"`
				HeaderImageURL           string `json:"header_image_url"`
				PrimaryArtist            struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// SearchSongs 调用 Genius 搜索接口，只保留类型为 song 的命中结果。
func (c *GeniusClient) SearchSongs(ctx context.Context, query string) ([]model.Song, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create genius request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Errorf("[GeniusClient] 调用 Genius API 失败, error: %v", err)
		return nil, fmt.Errorf("failed to call genius api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Errorf("[GeniusClient] Genius API 返回非 200 状态码: %s, body: %s", resp.Status, string(body))
		return nil, fmt.Errorf("genius api returned non-200 status: %s", resp.Status)
	}

	var searchResp geniusSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode genius response: %w", err)
	}

	songs := make([]model.Song, 0, len(searchResp.Response.Hits))
	for _, hit := range searchResp.Response.Hits {
		if hit.Type != "" && hit.Type != "song" {
			continue
		}
		r := hit.Result
		image := r.SongArtImageURL
		if image == "" {
			image = r.HeaderImageURL
		}
		songs = append(songs, model.Song{
			ID:        strconv.FormatInt(r.ID, 10),
			Title:     r.Title,
			Artist:    r.PrimaryArtist.Name,
			URL:       r.URL,
			Image:     image,
			Thumbnail: r.SongArtImageThumbnailURL,
		})
	}
	log.Infof("[GeniusClient] Genius 返回 %d 首候选歌曲, query: '%s'", len(songs), query)
	return songs, nil
}

// Package lyrics 提供了从歌曲页面抓取歌词文本的客户端。
package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"samma3ni-go/internal/config"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// containerSelector 是歌词页面中包裹歌词段落的元素。
const containerSelector = "div[data-lyrics-container]"

// Fetcher 定义了获取歌曲正文的接口。
type Fetcher interface {
	Fetch(ctx context.Context, songURL string) (string, error)
}

// Scraper 通过抓取 HTML 页面提取歌词。
type Scraper struct {
	client    *http.Client
	userAgent string
}

// NewScraper 创建一个新的歌词抓取客户端。
func NewScraper(cfg config.LyricsConfig) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Fetch 下载歌曲页面并返回所有歌词容器中的文本，<br> 转换为换行。
// 页面中没有歌词容器时返回空字符串。
func (s *Scraper) Fetch(ctx context.Context, songURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, songURL, nil)
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求歌词页面失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("歌词页面返回非 200 状态码: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("解析歌词页面失败: %w", err)
	}
	return extractLyrics(doc), nil
}

func extractLyrics(doc *goquery.Document) string {
	var parts []string
	doc.Find(containerSelector).Each(func(_ int, sel *goquery.Selection) {
		var b strings.Builder
		for _, n := range sel.Nodes {
			writeText(&b, n)
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

// writeText 输出节点下的所有文本，<br> 输出为换行。
func writeText(b *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		b.WriteString(n.Data)
		return
	case n.Type == html.ElementNode && n.Data == "br":
		b.WriteByte('\n')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

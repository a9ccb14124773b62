// Package model 包含了应用的数据模型定义。
package model

// Song 是候选来源返回的一条歌曲记录。
type Song struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	URL       string `json:"url"`
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
}

// SongResultDTO 定义了返回给前端的相似度搜索结果。
// Similarity 已按配置的小数位数取整。
type SongResultDTO struct {
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	URL        string  `json:"url"`
	Image      string  `json:"image"`
	Thumbnail  string  `json:"thumbnail"`
	Similarity float64 `json:"similarity"`
}

package model

// SongDocument 定义了存储在 Elasticsearch 歌曲索引中的文档结构。
type SongDocument struct {
	SongID    string `json:"song_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	URL       string `json:"url"`
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
}

// ToSong 将索引文档转换为候选歌曲。
func (d SongDocument) ToSong() Song {
	return Song{
		ID:        d.SongID,
		Title:     d.Title,
		Artist:    d.Artist,
		URL:       d.URL,
		Image:     d.Image,
		Thumbnail: d.Thumbnail,
	}
}

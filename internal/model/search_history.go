package model

import "time"

// SearchType 表示搜索的维度。
type SearchType string

const (
	SearchTypeTitle  SearchType = "title"
	SearchTypeLyrics SearchType = "lyrics"
	SearchTypeArtist SearchType = "artist"
)

// Valid 判断搜索类型是否为 title、lyrics、artist 之一。
func (t SearchType) Valid() bool {
	switch t {
	case SearchTypeTitle, SearchTypeLyrics, SearchTypeArtist:
		return true
	}
	return false
}

// SearchHistory 对应于数据库中的 search_histories 表，记录一次用户搜索。
type SearchHistory struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Query      string     `gorm:"type:varchar(255);not null;index" json:"query"`
	SearchType SearchType `gorm:"type:varchar(16);not null;index" json:"searchType"`
	Timestamp  time.Time  `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (SearchHistory) TableName() string {
	return "search_histories"
}

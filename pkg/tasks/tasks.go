// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// LyricsFetchTask asks the background consumer to fetch and cache the lyrics of a song.
type LyricsFetchTask struct {
	SongURL string `json:"song_url"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
}

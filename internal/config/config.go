// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Log           LogConfig           `mapstructure:"log"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	Lyrics        LyricsConfig        `mapstructure:"lyrics"`
	Search        SearchConfig        `mapstructure:"search"`
	History       HistoryConfig       `mapstructure:"history"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// KafkaConfig 存储 Kafka 相关的配置。
// Enabled 为 false 时不启动歌词预取的生产者和消费者。
type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// ElasticsearchConfig 存储 Elasticsearch 相关的配置。
type ElasticsearchConfig struct {
	Addresses string `mapstructure:"addresses"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	IndexName string `mapstructure:"index_name"`
}

// CatalogConfig 选择候选歌曲的来源：genius 或 elasticsearch。
type CatalogConfig struct {
	Provider string       `mapstructure:"provider"`
	Genius   GeniusConfig `mapstructure:"genius"`
}

// GeniusConfig 存储 Genius API 的配置。
type GeniusConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// LyricsConfig 存储歌词抓取与缓存的配置。
type LyricsConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// SearchConfig 存储相似度搜索的配置。
type SearchConfig struct {
	CandidateLimit int `mapstructure:"candidate_limit"`
	ScorePrecision int `mapstructure:"score_precision"`
}

// HistoryConfig 存储搜索历史的配置。
type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("kafka.topic", "lyrics-prefetch")
	v.SetDefault("kafka.group_id", "samma3ni-go-consumer")
	v.SetDefault("elasticsearch.index_name", "songs")
	v.SetDefault("catalog.provider", "genius")
	v.SetDefault("catalog.genius.base_url", "https://api.genius.com")
	v.SetDefault("catalog.genius.timeout", 10*time.Second)
	v.SetDefault("lyrics.timeout", 10*time.Second)
	v.SetDefault("lyrics.max_concurrency", 5)
	v.SetDefault("lyrics.cache_ttl", 24*time.Hour)
	v.SetDefault("lyrics.user_agent", "Mozilla/5.0 (compatible; samma3ni-go)")
	v.SetDefault("search.candidate_limit", 5)
	v.SetDefault("search.score_precision", 2)
	v.SetDefault("history.limit", 10)
}

// Load 从指定路径读取 YAML 配置文件，环境变量 SAMMA3NI_* 可以覆盖文件中的值，
// 例如 SAMMA3NI_CATALOG_GENIUS_ACCESS_TOKEN。
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SAMMA3NI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("配置校验失败: %w", err)
	}
	return cfg, nil
}

// Validate 检查配置的合法性。
func (c *Config) Validate() error {
	switch c.Catalog.Provider {
	case "genius", "elasticsearch":
	default:
		return fmt.Errorf("catalog.provider 必须为 genius 或 elasticsearch, 实际为 %q", c.Catalog.Provider)
	}
	if c.Search.CandidateLimit <= 0 {
		return fmt.Errorf("search.candidate_limit 必须大于 0, 实际为 %d", c.Search.CandidateLimit)
	}
	if c.Lyrics.MaxConcurrency <= 0 {
		return fmt.Errorf("lyrics.max_concurrency 必须大于 0, 实际为 %d", c.Lyrics.MaxConcurrency)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit 必须大于 0, 实际为 %d", c.History.Limit)
	}
	return nil
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = cfg
}

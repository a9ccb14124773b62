// Package kafka 提供了与 Kafka 消息队列交互的功能，用于后台预取歌词。
package kafka

import (
	"context"
	"encoding/json"
	"samma3ni-go/internal/config"
	"samma3ni-go/pkg/log"
	"samma3ni-go/pkg/tasks"
	"time"

	"github.com/segmentio/kafka-go"
)

// maxAttempts 是单个任务的最大处理次数，达到后提交 offset 放弃该任务。
const maxAttempts = 3

// TaskProcessor defines the interface for any service that can process a lyrics task.
type TaskProcessor interface {
	Process(ctx context.Context, task tasks.LyricsFetchTask) error
}

// AttemptTracker 记录任务失败次数。
type AttemptTracker interface {
	IncrAttempts(ctx context.Context, key string) (int64, error)
	ResetAttempts(ctx context.Context, key string) error
}

// Producer 将歌词预取任务发送到 Kafka。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
			// 搜索请求中同步发送，缩短攒批等待
			BatchTimeout: 10 * time.Millisecond,
		},
	}
	log.Info("Kafka 生产者初始化成功")
	return p
}

// PublishLyricsTask 发送一个歌词预取任务。消息 key 为歌曲 URL，同一首歌落在同一分区。
func (p *Producer) PublishLyricsTask(ctx context.Context, task tasks.LyricsFetchTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(task.SongURL),
		Value: taskBytes,
	})
}

// Close 关闭生产者。
func (p *Producer) Close() error {
	return p.writer.Close()
}

type messageCommitter interface {
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// StartConsumer 启动一个 Kafka 消费者来处理歌词预取任务，ctx 取消后退出。
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, processor TaskProcessor, tracker AttemptTracker) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error("从 Kafka 读取消息失败", err)
			}
			break
		}
		handleMessage(ctx, r, m, processor, tracker)
	}

	if err := r.Close(); err != nil {
		log.Errorf("关闭 Kafka 消费者失败: %v", err)
	}
	log.Info("Kafka 消费者已退出")
}

// handleMessage 处理单条消息并决定是否提交 offset：
// 成功或消息格式错误时提交；失败时不提交，让 Kafka 重投，直到失败次数达到 maxAttempts。
func handleMessage(ctx context.Context, c messageCommitter, m kafka.Message, processor TaskProcessor, tracker AttemptTracker) {
	log.Debugf("收到 Kafka 消息: offset %d", m.Offset)

	var task tasks.LyricsFetchTask
	if err := json.Unmarshal(m.Value, &task); err != nil || task.SongURL == "" {
		log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(m.Value))
		commit(ctx, c, m)
		return
	}

	if err := processor.Process(ctx, task); err != nil {
		log.Errorf("歌词预取任务失败: url=%s, error: %v", task.SongURL, err)
		attempts, incErr := tracker.IncrAttempts(ctx, task.SongURL)
		if incErr != nil {
			// Redis 异常时保守处理：不提交 offset，让 Kafka 重试
			return
		}
		if attempts >= maxAttempts {
			log.Errorf("歌词预取任务多次失败(>=%d)，提交 offset 终止重试: url=%s", maxAttempts, task.SongURL)
			commit(ctx, c, m)
		}
		return
	}

	log.Infof("歌词预取任务成功: url=%s", task.SongURL)
	if err := tracker.ResetAttempts(ctx, task.SongURL); err != nil {
		log.Warnf("清除歌词预取失败计数失败: url=%s, error: %v", task.SongURL, err)
	}
	commit(ctx, c, m)
}

func commit(ctx context.Context, c messageCommitter, m kafka.Message) {
	if err := c.CommitMessages(ctx, m); err != nil {
		log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
	}
}

package queue

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"

	"github.com/hibiken/asynq"
)

// RedisOpt builds the asynq Redis connection options from config. Shared
// by the producer client and the worker server.
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// BuildServerConfig builds the asynq server options from config.
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	queues := cfg.Queues
	if len(queues) == 0 {
		queues = map[string]int{
			constants.QueueDefault:  10,
			constants.QueueCritical: 5,
		}
	}
	return RedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

// Client is the task producer. A disabled queue yields a no-op client so
// callers never need to branch.
type Client struct {
	client  *asynq.Client
	enabled bool
}

// NewClient creates a task producer.
func NewClient(cfg *config.QueueConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return &Client{}
	}
	return &Client{
		client:  asynq.NewClient(RedisOpt(cfg)),
		enabled: true,
	}
}

// Enabled reports whether tasks are actually enqueued.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Enqueue submits a task. Disabled queues drop the task with a debug log.
func (c *Client) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	if !c.Enabled() {
		logger.Debugw("queue_disabled_task_dropped", "type", task.Type())
		return nil
	}
	info, err := c.client.Enqueue(task, opts...)
	if err != nil {
		return err
	}
	logger.Debugw("task_enqueued", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

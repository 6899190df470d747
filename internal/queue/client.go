package queue

import (
	"fmt"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

// Client asynq 客户端封装，未启用时投递为空操作
type Client struct {
	client  *asynq.Client
	enabled bool
	queue   string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return &Client{queue: constants.QueueMail}
	}
	return &Client{
		client:  asynq.NewClient(buildRedisOpt(cfg)),
		enabled: true,
		queue:   constants.QueueMail,
	}
}

// Enabled 是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) enqueue(task *asynq.Task, err error) error {
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, asynq.Queue(c.queue))
	return err
}

// EnqueueOrderConfirmation 投递下单确认邮件
func (c *Client) EnqueueOrderConfirmation(payload OrderConfirmationPayload) error {
	if !c.Enabled() {
		return nil
	}
	return c.enqueue(NewOrderConfirmationTask(payload))
}

// EnqueueOrderStatus 投递订单状态邮件
func (c *Client) EnqueueOrderStatus(payload OrderStatusPayload) error {
	if !c.Enabled() {
		return nil
	}
	return c.enqueue(NewOrderStatusTask(payload))
}

// EnqueueNewsletterWelcome 投递订阅欢迎邮件
func (c *Client) EnqueueNewsletterWelcome(payload NewsletterWelcomePayload) error {
	if !c.Enabled() {
		return nil
	}
	return c.enqueue(NewNewsletterWelcomeTask(payload))
}

// BuildServerConfig 生成 worker 配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 5
	queues := map[string]int{constants.QueueMail: 3, constants.QueueDefault: 1}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	return opt
}

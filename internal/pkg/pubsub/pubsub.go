package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelVipConversion = "vip_conversion"
)

// 转化事件类型
const (
	EventPurchase    = "purchase"
	EventAdminExtend = "admin_extend"
)

// ConversionMessage VIP 转化消息，推送给在线的管理后台
type ConversionMessage struct {
	Type          string `json:"type"`
	Event         string `json:"event"`
	UserID        int64  `json:"user_id"`
	TransactionID int64  `json:"transaction_id"`
	PackageType   int    `json:"package_type"`
	PackageName   string `json:"package_name"`
	Amount        string `json:"amount"`
	OccurredAt    string `json:"occurred_at"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishConversion 发布转化消息
func (p *Publisher) PublishConversion(ctx context.Context, msg *ConversionMessage) error {
	msg.Type = "vip_conversion"

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal conversion message: %w", err)
	}

	return p.client.Publish(ctx, ChannelVipConversion, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅转化消息
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*ConversionMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelVipConversion)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var conversionMsg ConversionMessage
			if err := json.Unmarshal([]byte(msg.Payload), &conversionMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&conversionMsg)
		}
	}
}

package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestConversionMessage_JSON(t *testing.T) {
	msg := &ConversionMessage{
		Type:          "vip_conversion",
		Event:         EventPurchase,
		UserID:        1,
		TransactionID: 2,
		PackageType:   3,
		PackageName:   "季度 VIP",
		Amount:        "130000",
		OccurredAt:    "2025-01-02T15:04:05Z",
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	assert.Contains(t, raw, "user_id")
	assert.Contains(t, raw, "transaction_id")
	assert.Contains(t, raw, "package_type")

	var decoded ConversionMessage
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, msg.UserID, decoded.UserID)
	assert.Equal(t, msg.TransactionID, decoded.TransactionID)
	assert.Equal(t, msg.Amount, decoded.Amount)
}

func TestPublisherSubscriber(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan *ConversionMessage, 1)

	go func() {
		subscriber.Subscribe(ctx, func(msg *ConversionMessage) {
			received <- msg
		})
	}()

	// 等订阅建立
	time.Sleep(100 * time.Millisecond)

	msg := &ConversionMessage{
		Event:         EventPurchase,
		UserID:        123,
		TransactionID: 456,
		PackageType:   2,
		PackageName:   "季度 VIP",
		Amount:        "130000",
	}

	err := publisher.PublishConversion(ctx, msg)
	require.NoError(t, err)

	select {
	case receivedMsg := <-received:
		assert.Equal(t, msg.UserID, receivedMsg.UserID)
		assert.Equal(t, msg.TransactionID, receivedMsg.TransactionID)
		assert.Equal(t, EventPurchase, receivedMsg.Event)
		// 发布时补全消息类型
		assert.Equal(t, "vip_conversion", receivedMsg.Type)
	case <-ctx.Done():
		t.Fatal("Timeout waiting for message")
	}
}

func TestSubscriber_IgnoresMalformedPayload(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	received := make(chan *ConversionMessage, 1)

	go func() {
		subscriber.Subscribe(ctx, func(msg *ConversionMessage) {
			received <- msg
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// 非 JSON 负载被跳过，不中断订阅
	err := client.Publish(ctx, ChannelVipConversion, "not-json").Err()
	require.NoError(t, err)

	err = NewPublisher(client).PublishConversion(ctx, &ConversionMessage{
		Event:  EventAdminExtend,
		UserID: 7,
	})
	require.NoError(t, err)

	select {
	case receivedMsg := <-received:
		assert.Equal(t, int64(7), receivedMsg.UserID)
		assert.Equal(t, EventAdminExtend, receivedMsg.Event)
	case <-ctx.Done():
		t.Fatal("Timeout waiting for message")
	}
}

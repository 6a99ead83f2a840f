package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// QueuePubSub announces queue mutations so display clients can
// refresh on push instead of polling blind.
type QueuePubSub struct {
	rdb     *redis.Client
	channel string
}

func NewQueuePubSub(rdb *redis.Client) *QueuePubSub {
	return &QueuePubSub{
		rdb:     rdb,
		channel: ChannelQueueChanged(),
	}
}

type queueChangedMsg struct {
	Type        string `json:"type"`
	ServiceType string `json:"service_type"`
	QueueNumber string `json:"queue_number"`
	TsUnix      int64  `json:"ts_unix"`
}

func (p *QueuePubSub) PublishQueueChanged(ctx context.Context, serviceType, queueNumber string) error {
	msg := queueChangedMsg{
		Type:        "queue_changed",
		ServiceType: serviceType,
		QueueNumber: queueNumber,
		TsUnix:      time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *QueuePubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, serviceType, queueNumber string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev queueChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.QueueNumber != "" {
				handler(ctx, ev.ServiceType, ev.QueueNumber)
			}
		}
	}
}

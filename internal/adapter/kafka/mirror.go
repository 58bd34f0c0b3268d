// Package kafka mirrors every delivered bulletin to a Kafka topic so other
// systems (archival, analytics) can consume the relay's output without a
// Discord presence. The mirror is a best-effort sink behind dispatch.Tee.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/nws-alert-relay/internal/config"
	"github.com/couchcryptid/nws-alert-relay/internal/dispatch"
)

// Bulletin is the mirrored form of one delivered message.
type Bulletin struct {
	Destination    string    `json:"destination"`
	Text           string    `json:"text"`
	AttachmentName string    `json:"attachment_name,omitempty"`
	Attachment     string    `json:"attachment,omitempty"`
	DeliveredAt    time.Time `json:"delivered_at"`
}

// Mirror publishes bulletins to the configured topic. It implements
// dispatch.Sender.
type Mirror struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewMirror creates a Kafka producer for the mirror topic.
func NewMirror(cfg *config.Config, logger *slog.Logger) *Mirror {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaMirrorTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Mirror{writer: w, logger: logger}
}

// Send publishes one bulletin, keyed by destination so per-channel ordering
// survives partitioning.
func (m *Mirror) Send(ctx context.Context, destination, text string, att *dispatch.Attachment) error {
	b := Bulletin{
		Destination: destination,
		Text:        text,
		DeliveredAt: time.Now().UTC(),
	}
	if att != nil {
		b.AttachmentName = att.Name
		b.Attachment = string(att.Body)
	}

	msg, err := serializeToMessage(b)
	if err != nil {
		return err
	}
	return m.writer.WriteMessages(ctx, msg)
}

func (m *Mirror) Close() error {
	return m.writer.Close()
}

// serializeToMessage marshals a Bulletin into a Kafka message.
func serializeToMessage(b Bulletin) (kafkago.Message, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize bulletin: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(b.Destination),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "delivered_at", Value: []byte(b.DeliveredAt.Format(time.RFC3339))},
		},
	}, nil
}

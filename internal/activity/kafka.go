package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"callsync/internal/platform/config"
	"callsync/pkg/attrs"
)

// KafkaPublisher mirrors activity events to a Kafka topic so downstream
// consumers (analytics, CRM sync) see confirmations without polling the API.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects to the brokers and ensures the topic exists.
// Returns nil when no brokers are configured; callers treat a nil publisher
// as "publishing disabled".
func NewKafkaPublisher(ctx context.Context, cfg config.Kafka) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, cfg.Topic); err != nil {
		client.Close()
		return nil, err
	}

	return &KafkaPublisher{client: client, topic: cfg.Topic}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// eventPayload is the JSON structure written to the topic.
type eventPayload struct {
	Timestamp string         `json:"timestamp"`
	UserID    string         `json:"user_id"`
	Kind      string         `json:"kind"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// Publish writes one event. Keyed by user so a consumer sees each user's
// activity in order.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(eventPayload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		UserID:    event.UserID.String(),
		Kind:      string(event.Kind),
		Attrs:     attrs.Collect(event.Attrs),
	})
	if err != nil {
		return fmt.Errorf("marshal activity payload: %w", err)
	}

	rec := &kgo.Record{
		Key:   []byte(event.UserID.String()),
		Value: payload,
		Topic: p.topic,
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce activity event: %w", err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Producer writes messages through a single shared writer. The topic is set
// per batch, so one Producer serves every topic the service publishes to.
type Producer struct {
	writer *kafkago.Writer
}

// NewProducer builds a producer for the configured brokers. Writes wait for
// acknowledgement from all in-sync replicas.
func NewProducer(cfg Config) (*Producer, error) {
	mech, err := cfg.saslMechanism()
	if err != nil {
		return nil, err
	}
	transport := &kafkago.Transport{TLS: cfg.tlsConfig(), SASL: mech}

	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireAll,
			Transport:    transport,
		},
	}, nil
}

// Publish writes the messages to the topic as one batch.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	batch := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		batch = append(batch, toKafkaMessage(topic, msg))
	}
	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("closing kafka writer: %w", err)
	}
	return nil
}

package nats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
)

// StreamConfigBuilder helps build stream configurations
type StreamConfigBuilder struct {
	config jetstream.StreamConfig
}

// NewStreamConfigBuilder starts from a file-backed, limits-retained stream
func NewStreamConfigBuilder(name string) *StreamConfigBuilder {
	return &StreamConfigBuilder{
		config: jetstream.StreamConfig{
			Name:      name,
			Retention: jetstream.LimitsPolicy,
			Storage:   jetstream.FileStorage,
			Replicas:  1,
			MaxAge:    24 * time.Hour,
			MaxBytes:  100 * 1024 * 1024,
			Discard:   jetstream.DiscardOld,
		},
	}
}

func (b *StreamConfigBuilder) WithSubjects(subjects ...string) *StreamConfigBuilder {
	b.config.Subjects = subjects
	return b
}

func (b *StreamConfigBuilder) WithRetention(retention jetstream.RetentionPolicy) *StreamConfigBuilder {
	b.config.Retention = retention
	return b
}

func (b *StreamConfigBuilder) WithStorage(storage jetstream.StorageType) *StreamConfigBuilder {
	b.config.Storage = storage
	return b
}

func (b *StreamConfigBuilder) WithMaxAge(maxAge time.Duration) *StreamConfigBuilder {
	b.config.MaxAge = maxAge
	return b
}

// Build returns the stream configuration
func (b *StreamConfigBuilder) Build() jetstream.StreamConfig {
	return b.config
}

// ConsumerConfigBuilder helps build durable consumer configurations
type ConsumerConfigBuilder struct {
	stream string
	config jetstream.ConsumerConfig
}

// NewConsumerConfigBuilder starts from an explicit-ack durable consumer
func NewConsumerConfigBuilder(streamName, consumerName string) *ConsumerConfigBuilder {
	return &ConsumerConfigBuilder{
		stream: streamName,
		config: jetstream.ConsumerConfig{
			Name:          consumerName,
			Durable:       consumerName,
			DeliverPolicy: jetstream.DeliverAllPolicy,
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxDeliver:    -1,
			MaxAckPending: 100,
		},
	}
}

func (b *ConsumerConfigBuilder) WithSubject(subject string) *ConsumerConfigBuilder {
	b.config.FilterSubject = subject
	return b
}

func (b *ConsumerConfigBuilder) WithAckWait(ackWait time.Duration) *ConsumerConfigBuilder {
	b.config.AckWait = ackWait
	return b
}

func (b *ConsumerConfigBuilder) WithMaxDeliver(maxDeliver int) *ConsumerConfigBuilder {
	b.config.MaxDeliver = maxDeliver
	return b
}

// Build returns the stream name and the consumer configuration
func (b *ConsumerConfigBuilder) Build() (string, jetstream.ConsumerConfig) {
	return b.stream, b.config
}

// DefaultStreamConfigs returns the streams the service publishes to and consumes from
func DefaultStreamConfigs() []jetstream.StreamConfig {
	return []jetstream.StreamConfig{
		NewStreamConfigBuilder(constants.StreamTransactionEvents).
			WithSubjects(constants.SubjectTransactionEventsAll).
			WithMaxAge(7 * 24 * time.Hour).
			Build(),

		// WorkQueue retention drops a transfer once it is acked
		NewStreamConfigBuilder(constants.StreamSwitchInbound).
			WithSubjects(constants.SubjectInboundTransfers).
			WithRetention(jetstream.WorkQueuePolicy).
			WithMaxAge(72 * time.Hour).
			Build(),
	}
}

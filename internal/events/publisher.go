// Package events publishes completed exports to Kafka so downstream systems
// (archiving, notifications) can pick up the generated spreadsheets.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"device_inventory/internal/logger"
	"device_inventory/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventExportCompleted is the type tag carried in every published payload.
const EventExportCompleted = "export.completed"

const writeTimeout = 5 * time.Second

// Publisher announces finished exports.
type Publisher interface {
	PublishExport(ctx context.Context, e models.ExportLogEntry) error
	Close() error
}

// Config enables Kafka publishing when Brokers is non-empty.
type Config struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one keyed message per export.
type KafkaPublisher struct {
	writer messageWriter
	log    *logger.Logger
}

type exportEvent struct {
	Type  string                `json:"type"`
	Entry models.ExportLogEntry `json:"entry"`
}

var errNilLogger = errors.New("publisher requires a logger")

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no brokers are configured.
func NewPublisher(cfg Config, log *logger.Logger) (Publisher, error) {
	if log == nil {
		return nil, errNilLogger
	}
	if len(cfg.Brokers) == 0 {
		log.Infow("export_publisher_disabled")
		return Nop{}, nil
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("export topic must not be empty")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	log.Infow("export_publisher_enabled", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return newKafkaPublisher(w, log), nil
}

func newKafkaPublisher(w messageWriter, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log}
}

// PublishExport writes the entry keyed by chart type and label so exports of
// the same list stay ordered within a partition.
func (p *KafkaPublisher) PublishExport(ctx context.Context, e models.ExportLogEntry) error {
	body, err := json.Marshal(exportEvent{Type: EventExportCompleted, Entry: e})
	if err != nil {
		return fmt.Errorf("encode export event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(string(e.ChartType) + "/" + e.Label),
		Value: body,
		Time:  e.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish export %s: %w", e.ID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Nop discards events.
type Nop struct{}

func (Nop) PublishExport(context.Context, models.ExportLogEntry) error { return nil }
func (Nop) Close() error { return nil }

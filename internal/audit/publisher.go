// Package audit publishes provider lifecycle events for later side-by-side
// review. Like the visit store, it belongs to the caller, wired in through
// the orchestrator's progress sink.
package audit

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/clinsight/internal/models"
	"github.com/spacesedan/clinsight/internal/utils"
)

const AUDIT_TOPIC = "clinsight-analysis-audit"

var producer *kafka.Producer

// InitPublisher connects the audit producer to KAFKA_BROKER.
func InitPublisher() error {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		broker = "localhost:9092"
	}

	slog.Info("[AuditPublisher] Initializing Kafka producer...",
		slog.String("broker", broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"acks":                "all",
	})
	if err != nil {
		return fmt.Errorf("[AuditPublisher] Failed to create producer: %w", err)
	}

	producer = p
	slog.Info("[AuditPublisher] Kafka producer initialized successfully")
	return nil
}

// ClosePublisher flushes and shuts the producer down.
func ClosePublisher() {
	if producer == nil {
		return
	}
	slog.Info("[AuditPublisher] Flushing Kafka producer before shutdown...")
	if remaining := producer.Flush(5000); remaining > 0 {
		slog.Warn("[AuditPublisher] Not all audit events were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	producer.Close()
	slog.Info("[AuditPublisher] Kafka producer shut down")
}

// Recorder buffers the lifecycle events of one analysis request and
// publishes them as a single batch once the request settles. Record is safe
// to call from the orchestrator's concurrent progress callbacks.
type Recorder struct {
	visitID string
	buffer  *utils.BatchBuffer[models.AuditEvent]
}

func NewRecorder(visitID string) *Recorder {
	return &Recorder{
		visitID: visitID,
		buffer:  utils.NewBatchBuffer[models.AuditEvent](),
	}
}

// Record appends one provider transition.
func (r *Recorder) Record(providerID, status string) {
	r.buffer.Add(models.AuditEvent{
		VisitID:    r.visitID,
		ProviderID: providerID,
		Status:     status,
		Timestamp:  time.Now().UTC(),
	})
}

// Flush publishes every buffered event as one message keyed by visit id.
func (r *Recorder) Flush() error {
	batch := r.buffer.GetAndClear()
	if len(batch) == 0 {
		return nil
	}
	if producer == nil {
		return fmt.Errorf("[AuditPublisher] producer not initialized")
	}

	jsonData, err := utils.SerializeToJSON(batch)
	if err != nil {
		return err
	}

	topic := AUDIT_TOPIC
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(r.visitID),
		Value:          jsonData,
	}

	for i := 0; i < 3; i++ {
		err = producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[AuditPublisher] Failed to produce audit batch, retrying...",
			slog.Int("attempt", i+1))
	}
	if err != nil {
		return fmt.Errorf("[AuditPublisher] failed to publish audit batch: %w", err)
	}

	slog.Info("[AuditPublisher] Audit events published",
		slog.String("visit_id", r.visitID),
		slog.Int("events", len(batch)))
	return nil
}

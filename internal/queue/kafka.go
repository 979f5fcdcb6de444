package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"habitflow/internal/config"
	"habitflow/internal/models"
	"habitflow/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// EnsureTopics creates the command topics with configured partitions
// (idempotent). Call at startup; if it fails the app still runs.
func EnsureTopics(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		return
	}
	conn, err := kafka.Dial("tcp", cfg.KafkaBrokers[0])
	if err != nil {
		logger.Debug(ctx, "Kafka dial for topic creation failed", "error", err)
		return
	}
	defer conn.Close()
	controller, err := conn.Controller()
	if err != nil {
		logger.Debug(ctx, "Kafka controller lookup failed", "error", err)
		return
	}
	ctrlConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		logger.Debug(ctx, "Kafka controller dial failed", "error", err)
		return
	}
	defer ctrlConn.Close()
	for _, topic := range []string{cfg.KafkaHabitTopic, cfg.KafkaTodoTopic} {
		err = ctrlConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     cfg.KafkaPartitions,
			ReplicationFactor: 1,
		})
		if err != nil {
			logger.Debug(ctx, "Kafka create topic failed (topic may already exist)", "error", err, "topic", topic)
			continue
		}
		logger.Info(ctx, "Kafka topic ensured", "topic", topic, "partitions", cfg.KafkaPartitions)
	}
}

var (
	habitWriter *kafka.Writer
	todoWriter  *kafka.Writer
	wOnce       sync.Once
)

func initWriters(ctx context.Context) {
	wOnce.Do(func() {
		cfg := config.Get()
		mk := func(topic string) *kafka.Writer {
			return &kafka.Writer{
				Addr:         kafka.TCP(cfg.KafkaBrokers...),
				Topic:        topic,
				Balancer:     &kafka.Hash{},
				BatchSize:    100,
				BatchTimeout: 0,
				Async:        true,
				RequiredAcks: kafka.RequireOne,
			}
		}
		habitWriter = mk(cfg.KafkaHabitTopic)
		todoWriter = mk(cfg.KafkaTodoTopic)
		logger.Info(ctx, "Kafka producers initialized", "brokers", cfg.KafkaBrokers)
	})
}

// HabitProducer returns the global writer for habit commands.
func HabitProducer(ctx context.Context) *kafka.Writer {
	initWriters(ctx)
	return habitWriter
}

// TodoProducer returns the global writer for todo commands.
func TodoProducer(ctx context.Context) *kafka.Writer {
	initWriters(ctx)
	return todoWriter
}

// PublishHabitCommand publishes a habit command. Messages are keyed by habit
// ID so every command for one habit lands on the same partition and is
// applied in order — two near-simultaneous completions can never both read
// the pre-update streak.
func PublishHabitCommand(ctx context.Context, cmd *models.HabitCommand) error {
	w := HabitProducer(ctx)
	if w == nil {
		return nil
	}
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(cmd.ID),
		Value: payload,
	})
}

// PublishTodoCommand publishes a todo command, keyed by todo ID.
func PublishTodoCommand(ctx context.Context, cmd *models.TodoCommand) error {
	w := TodoProducer(ctx)
	if w == nil {
		return nil
	}
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(cmd.ID),
		Value: payload,
	})
}

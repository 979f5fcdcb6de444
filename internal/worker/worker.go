package worker

import (
	"context"
	"encoding/json"
	"time"

	"habitflow/internal/cache"
	"habitflow/internal/config"
	"habitflow/internal/habit"
	"habitflow/internal/models"
	"habitflow/internal/repository"
	"habitflow/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Run starts the Kafka consumers: habit and todo commands are read from
// their topics, applied to the database, and the affected user's cache is
// invalidated. One consumer per process per topic; partition assignment
// within the consumer group keeps per-entity ordering (messages are keyed by
// entity ID at the producer).
func Run(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}
	go consume(ctx, cfg.KafkaHabitTopic, "habit-workers", handleHabitCommand)
	consume(ctx, cfg.KafkaTodoTopic, "todo-workers", handleTodoCommand)
}

func consume(ctx context.Context, topic, groupID string, handle func(context.Context, []byte) error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  config.Get().KafkaBrokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Kafka consumer started", "topic", topic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err, "topic", topic)
			continue
		}
		if err := handle(ctx, msg.Value); err != nil {
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
			// Commit anyway to avoid poison pill blocking the partition
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
	}
}

func handleHabitCommand(ctx context.Context, payload []byte) error {
	var cmd models.HabitCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return err
	}
	switch cmd.Action {
	case "create":
		h := &models.Habit{
			ID:         cmd.ID,
			UserID:     cmd.UserID,
			Title:      cmd.Title,
			Recurrence: cmd.Recurrence,
			Weekdays:   cmd.Weekdays,
			TimeOfDay:  cmd.TimeOfDay,
		}
		if err := repository.CreateHabit(ctx, h); err != nil {
			return err
		}
	case "update":
		if err := repository.UpdateHabit(ctx, &cmd); err != nil {
			return err
		}
	case "delete":
		if err := repository.DeleteHabit(ctx, cmd.ID, cmd.UserID); err != nil {
			return err
		}
	case "complete":
		if err := applyCompletion(ctx, &cmd); err != nil {
			return err
		}
	default:
		return nil
	}
	cache.InvalidateHabits(ctx, cmd.UserID)
	return nil
}

// applyCompletion reads the current habit, computes the new streak, and
// persists status + streak + last_completed_date in one statement. Running
// only here, on the habit's partition, serializes concurrent completion
// attempts: the second one re-reads the already-updated record and the
// same-day rule keeps the streak unchanged.
func applyCompletion(ctx context.Context, cmd *models.HabitCommand) error {
	h, err := repository.GetHabit(ctx, cmd.ID, cmd.UserID)
	if err != nil {
		return err
	}
	completedAt := cmd.RequestedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	streak := habit.RecordCompletion(h, completedAt)
	return repository.CompleteHabit(ctx, cmd.ID, cmd.UserID, streak, completedAt)
}

func handleTodoCommand(ctx context.Context, payload []byte) error {
	var cmd models.TodoCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return err
	}
	switch cmd.Action {
	case "create":
		t := &models.Todo{
			ID:          cmd.ID,
			UserID:      cmd.UserID,
			Title:       cmd.Title,
			Description: cmd.Description,
			Deadline:    cmd.Deadline,
			Priority:    cmd.Priority,
			Recurring:   cmd.Recurring,
		}
		if err := repository.CreateTodo(ctx, t); err != nil {
			return err
		}
	case "update":
		if err := repository.UpdateTodo(ctx, &cmd); err != nil {
			return err
		}
	case "delete":
		if err := repository.DeleteTodo(ctx, cmd.ID, cmd.UserID); err != nil {
			return err
		}
	default:
		return nil
	}
	cache.InvalidateTodos(ctx, cmd.UserID)
	return nil
}

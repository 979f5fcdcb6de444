// Seed adds demo habits and todos for a test user. Run from project root: go run ./scripts/seed
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"habitflow/internal/database"
	"habitflow/internal/models"
	"habitflow/internal/repository"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	db := database.InitDB(ctx)
	if db == nil {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set or DB connection failed")
		os.Exit(1)
	}

	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	userID := "seed-user"
	yesterday := time.Now().AddDate(0, 0, -1)

	habits := []models.Habit{
		{UserID: userID, Title: "Morning run", Recurrence: models.RecurrenceDaily, TimeOfDay: models.TimeMorning, Streak: 4, LastCompletedDate: &yesterday},
		{UserID: userID, Title: "Gym session", Recurrence: models.RecurrenceWeekly, Weekdays: []string{"monday", "wednesday", "friday"}, TimeOfDay: models.TimeAfternoon},
		{UserID: userID, Title: "Read 20 pages", Recurrence: models.RecurrenceDaily, TimeOfDay: models.TimeEvening, Streak: 12, LastCompletedDate: &yesterday},
		{UserID: userID, Title: "Review budget", Recurrence: models.RecurrenceMonthly, TimeOfDay: models.TimeDaily},
		{UserID: userID, Title: "Meal prep", Recurrence: models.RecurrenceWeekly, Weekdays: []string{"sunday"}, TimeOfDay: models.TimeLunch},
	}
	for i := range habits {
		if err := repository.CreateHabit(ctx, &habits[i]); err != nil {
			fmt.Fprintln(os.Stderr, "Insert habit failed:", err)
			os.Exit(1)
		}
	}

	deadline := time.Now().AddDate(0, 0, 3)
	todos := []models.Todo{
		{UserID: userID, Title: "File expense report", Description: "Q2 receipts", Priority: models.PriorityHigh, Deadline: &deadline},
		{UserID: userID, Title: "Book dentist appointment", Priority: models.PriorityLow},
		{UserID: userID, Title: "Water the plants", Priority: models.PriorityMedium, Recurring: &models.Recurring{Type: "weekly", Times: 2}},
	}
	for i := range todos {
		if err := repository.CreateTodo(ctx, &todos[i]); err != nil {
			fmt.Fprintln(os.Stderr, "Insert todo failed:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Done: %d habits, %d todos for %s\n", len(habits), len(todos), userID)
}

func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}

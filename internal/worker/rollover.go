package worker

import (
	"context"
	"time"

	"habitflow/internal/cache"
	"habitflow/internal/config"
	"habitflow/internal/repository"
	"habitflow/pkg/logger"
)

// RunRollover resets habit statuses from Done back to Todo at the start of
// each calendar day in the configured timezone. Streak display already
// compensates for decay via EffectiveStreak, so the window between midnight
// and the bulk update is harmless.
func RunRollover(ctx context.Context) {
	loc, err := time.LoadLocation(config.Get().RolloverTZ)
	if err != nil {
		logger.Error(ctx, "Invalid ROLLOVER_TZ, falling back to UTC", "error", err)
		loc = time.UTC
	}
	for {
		next := nextMidnight(time.Now().In(loc))
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}
		n, err := repository.ResetDoneHabits(ctx)
		if err != nil {
			logger.Error(ctx, "Daily rollover failed", "error", err)
			continue
		}
		cache.InvalidateAllHabits(ctx)
		logger.Info(ctx, "Daily rollover complete", "habits_reset", n)
	}
}

// nextMidnight returns the first instant of the calendar day after now, in
// now's location.
func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

package stats

import (
	"context"
	"log/slog"
)

// Reporter publishes scores to an external leaderboard
type Reporter interface {
	ReportScore(ctx context.Context, leaderboard string, score int64) error
}

// LogReporter writes leaderboard submissions to the log. It is used when no
// leaderboard service is configured.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a new LogReporter
func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

var _ Reporter = (*LogReporter)(nil)

func (r *LogReporter) ReportScore(ctx context.Context, leaderboard string, score int64) error {
	r.logger.InfoContext(ctx, "leaderboard score reported",
		slog.String("leaderboard", leaderboard),
		slog.Int64("score", score),
	)
	return nil
}

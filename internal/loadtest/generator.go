package loadtest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/okian/mergington/pkg/logger"
)

// generateEnrollments creates n unique students and assigns them to
// activities round-robin.
func generateEnrollments(ctx context.Context, activities []string, n int, stats *Stats) ([]Enrollment, error) {
	if len(activities) == 0 {
		return nil, fmt.Errorf("no activities to enroll into")
	}
	logger.Get().Info(ctx, "generating students", logger.Int("students", n), logger.Int("activities", len(activities)))

	out := make([]Enrollment, n)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		out[i] = Enrollment{
			Activity: activities[i%len(activities)],
			Email:    studentEmail(uuid.NewString()),
		}
	}

	stats.StudentsGenerated = len(out)
	return out, nil
}

func studentEmail(id string) string {
	return "student-" + id + "@" + EmailDomain
}

package loadtest

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// Run executes the complete sign-up load run.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	if config.Workers <= 0 {
		config.Workers = 1
	}

	log.Info(ctx, "starting mergington sign-up load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.Students),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.String("logFile", config.LogFile),
		logger.Bool("verbose", config.Verbose))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Baseline catalog
	baseline, err := fetchCatalog(ctx, client)
	if err != nil {
		return stats, err
	}

	// Step 3: Generate students
	enrollments, err := generateEnrollments(ctx, baseline.Names(), config.Students, stats)
	if err != nil {
		return stats, fmt.Errorf("student generation failed: %w", err)
	}

	// Step 4: Concurrent sign-ups
	signups := submitAll(ctx, config, client, actionSignup, enrollments)
	stats.SignupsSubmitted = len(enrollments)
	stats.SignupsSucceeded = signups.ok
	stats.Failed += signups.failed + signups.rejected

	// Step 5: Verify every student landed once
	current, err := fetchCatalog(ctx, client)
	if err != nil {
		return stats, err
	}
	if err := verifyEnrolled(baseline, current, enrollments); err != nil {
		return stats, err
	}
	log.Info(ctx, "enrollment verified", logger.Int("participants", current.TotalParticipants()))

	// Step 6: Duplicates must be rejected
	sample := enrollments[:min(DuplicateSample, len(enrollments))]
	dups := submitAll(ctx, config, client, actionSignup, sample)
	stats.DuplicatesSent = len(sample)
	stats.DuplicatesRejected = dups.rejected
	stats.Failed += dups.failed + dups.ok
	if dups.rejected != len(sample) {
		return stats, fmt.Errorf("%w: %d of %d duplicates rejected", ErrVerification, dups.rejected, len(sample))
	}

	// Step 7: Concurrent unregisters
	unregs := submitAll(ctx, config, client, actionUnregister, enrollments)
	stats.UnregistersSent = len(enrollments)
	stats.UnregistersOK = unregs.ok
	stats.Failed += unregs.failed + unregs.rejected

	// Step 8: Back to baseline
	current, err = fetchCatalog(ctx, client)
	if err != nil {
		return stats, err
	}
	if err := verifyRestored(baseline, current); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d requests failed", ErrVerification, stats.Failed)
	}
	log.Info(ctx, "load run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	status, _, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.SignupsSubmitted > 0 {
		successRate = float64(stats.SignupsSucceeded) / float64(stats.SignupsSubmitted) * PercentageMultiplier
	}

	total := stats.SignupsSubmitted + stats.DuplicatesSent + stats.UnregistersSent
	if stats.Duration > 0 {
		requestsPerSecond = float64(total) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("studentsGenerated", stats.StudentsGenerated),
		logger.Int("signupsSubmitted", stats.SignupsSubmitted),
		logger.Int("signupsSucceeded", stats.SignupsSucceeded),
		logger.Int("duplicatesRejected", stats.DuplicatesRejected),
		logger.Int("unregistersOK", stats.UnregistersOK),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}

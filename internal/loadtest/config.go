package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Students int           // Number of generated students
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for run output
	Verbose  bool          // Enable verbose logging
}

// Enrollment pairs a generated student with the activity they join.
type Enrollment struct {
	Activity string
	Email    string
}

// Stats holds run statistics.
type Stats struct {
	StudentsGenerated  int
	SignupsSubmitted   int
	SignupsSucceeded   int
	DuplicatesSent     int
	DuplicatesRejected int
	UnregistersSent    int
	UnregistersOK      int
	Failed             int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}

// outcome classifies a single POST.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeRejected
	outcomeFailed
)

// tally counts outcomes of one phase.
type tally struct {
	ok, rejected, failed int
}

package loadtest

// HTTP status code constants.
const (
	StatusOK         = 200
	StatusBadRequest = 400
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	// DuplicateSample caps how many sign-ups are replayed to check rejection.
	DuplicateSample = 50
	// EmailDomain is appended to generated student ids.
	EmailDomain = "mergington.edu"
)

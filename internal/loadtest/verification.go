package loadtest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/okian/mergington/internal/domain/activity"
)

// ErrVerification is returned when the registry disagrees with what the
// run submitted.
var ErrVerification = errors.New("verification failed")

// verifyEnrolled checks that every student appears exactly once in its
// activity and that the baseline participants are still present in order.
func verifyEnrolled(baseline, current activity.Catalog, enrollments []Enrollment) error {
	if !slices.Equal(baseline.Names(), current.Names()) {
		return fmt.Errorf("%w: activity set changed", ErrVerification)
	}
	for _, before := range baseline {
		after, _ := current.Find(before.Name)
		if len(after.Participants) < len(before.Participants) ||
			!slices.Equal(after.Participants[:len(before.Participants)], before.Participants) {
			return fmt.Errorf("%w: %s lost seeded participants", ErrVerification, before.Name)
		}
	}
	for _, e := range enrollments {
		a, ok := current.Find(e.Activity)
		if !ok {
			return fmt.Errorf("%w: activity %q missing", ErrVerification, e.Activity)
		}
		n := 0
		for _, p := range a.Participants {
			if p == e.Email {
				n++
			}
		}
		if n != 1 {
			return fmt.Errorf("%w: %s appears %d times in %s", ErrVerification, e.Email, n, e.Activity)
		}
	}
	return nil
}

// verifyRestored checks the catalog equals the baseline.
func verifyRestored(baseline, current activity.Catalog) error {
	if !slices.Equal(baseline.Names(), current.Names()) {
		return fmt.Errorf("%w: activity set changed", ErrVerification)
	}
	for _, before := range baseline {
		after, _ := current.Find(before.Name)
		if !slices.Equal(after.Participants, before.Participants) {
			return fmt.Errorf("%w: %s participants %v, want %v",
				ErrVerification, before.Name, after.Participants, before.Participants)
		}
	}
	return nil
}

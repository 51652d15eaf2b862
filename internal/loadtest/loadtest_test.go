package loadtest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/mergington/internal/adapters/http/api"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

// newTestServer serves the real API over a freshly seeded service.
func newTestServer() (*httptest.Server, *service.Service) {
	svc := service.New(service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux), svc
}

func TestRun(t *testing.T) {
	Convey("Given a running activities service", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When a load run signs up and unregisters 200 students", func() {
			stats, err := Run(ctx, &Config{
				BaseURL:  srv.URL,
				Students: 200,
				Workers:  8,
				Timeout:  5 * time.Second,
			})

			Convey("Then every request succeeds and the registry is restored", func() {
				So(err, ShouldBeNil)
				So(stats.StudentsGenerated, ShouldEqual, 200)
				So(stats.SignupsSucceeded, ShouldEqual, 200)
				So(stats.DuplicatesRejected, ShouldEqual, DuplicateSample)
				So(stats.UnregistersOK, ShouldEqual, 200)
				So(stats.Failed, ShouldEqual, 0)

				c, err := svc.ListActivities(ctx)
				So(err, ShouldBeNil)
				So(c, ShouldResemble, activity.Seed())
			})
		})

		Convey("When the run has fewer students than the duplicate sample", func() {
			stats, err := Run(ctx, &Config{BaseURL: srv.URL, Students: 5, Workers: 0, Timeout: time.Second})

			Convey("Then only those students are replayed", func() {
				So(err, ShouldBeNil)
				So(stats.DuplicatesSent, ShouldEqual, 5)
			})
		})
	})

	Convey("Given a service that is not started", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Then the health check fails the run", func() {
			_, err := Run(context.Background(), &Config{BaseURL: srv.URL, Students: 1, Workers: 1, Timeout: time.Second})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}

func TestGenerateEnrollments(t *testing.T) {
	Convey("Given three activities", t, func() {
		names := []string{"A", "B", "C"}
		stats := &Stats{}

		Convey("When generating seven students", func() {
			out, err := generateEnrollments(context.Background(), names, 7, stats)

			Convey("Then they are assigned round-robin with unique emails", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 7)
				So(stats.StudentsGenerated, ShouldEqual, 7)
				seen := map[string]bool{}
				for i, e := range out {
					So(e.Activity, ShouldEqual, names[i%3])
					So(e.Email, ShouldStartWith, "student-")
					So(e.Email, ShouldEndWith, "@"+EmailDomain)
					So(seen[e.Email], ShouldBeFalse)
					seen[e.Email] = true
				}
			})
		})

		Convey("When there are no activities", func() {
			_, err := generateEnrollments(context.Background(), nil, 3, stats)

			Convey("Then generation fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRegistrationPath(t *testing.T) {
	Convey("Given an activity name with spaces and a plus in the email", t, func() {
		p := registrationPath(actionSignup, Enrollment{Activity: "Chess Club", Email: "a+b@mergington.edu"})

		Convey("Then both are escaped", func() {
			So(p, ShouldEqual, "/activities/Chess%20Club/signup?email=a%2Bb%40mergington.edu")
		})
	})
}

func TestVerification(t *testing.T) {
	Convey("Given a baseline catalog", t, func() {
		baseline := activity.Catalog{
			{Name: "Chess Club", MaxParticipants: 2, Participants: []string{"michael@mergington.edu"}},
			{Name: "Art Club", MaxParticipants: 2, Participants: []string{}},
		}
		enrollments := []Enrollment{
			{Activity: "Chess Club", Email: "s1@mergington.edu"},
			{Activity: "Art Club", Email: "s2@mergington.edu"},
		}

		Convey("When every student is enrolled once", func() {
			current := activity.Catalog{
				{Name: "Chess Club", Participants: []string{"michael@mergington.edu", "s1@mergington.edu"}},
				{Name: "Art Club", Participants: []string{"s2@mergington.edu"}},
			}
			So(verifyEnrolled(baseline, current, enrollments), ShouldBeNil)
		})

		Convey("When a student is enrolled twice", func() {
			current := activity.Catalog{
				{Name: "Chess Club", Participants: []string{"michael@mergington.edu", "s1@mergington.edu", "s1@mergington.edu"}},
				{Name: "Art Club", Participants: []string{"s2@mergington.edu"}},
			}
			err := verifyEnrolled(baseline, current, enrollments)
			So(errors.Is(err, ErrVerification), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "2 times")
		})

		Convey("When a seeded participant disappeared", func() {
			current := activity.Catalog{
				{Name: "Chess Club", Participants: []string{"s1@mergington.edu"}},
				{Name: "Art Club", Participants: []string{"s2@mergington.edu"}},
			}
			So(errors.Is(verifyEnrolled(baseline, current, enrollments), ErrVerification), ShouldBeTrue)
		})

		Convey("When the catalog is back at baseline", func() {
			So(verifyRestored(baseline, baseline), ShouldBeNil)
		})

		Convey("When a participant was left behind", func() {
			current := activity.Catalog{
				{Name: "Chess Club", Participants: []string{"michael@mergington.edu"}},
				{Name: "Art Club", Participants: []string{"s2@mergington.edu"}},
			}
			So(errors.Is(verifyRestored(baseline, current), ErrVerification), ShouldBeTrue)
		})

		Convey("When activities were reordered", func() {
			current := activity.Catalog{baseline[1], baseline[0]}
			So(errors.Is(verifyRestored(baseline, current), ErrVerification), ShouldBeTrue)
		})
	})
}

func TestSetupLogging(t *testing.T) {
	Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "run.log")

		Convey("When setting up logging", func() {
			closer, err := SetupLogging(path, true)
			So(err, ShouldBeNil)
			logger.Get().Info(context.Background(), "hello from the load tool")
			So(closer.Close(), ShouldBeNil)

			Convey("Then output lands in the file", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(data), "hello from the load tool"), ShouldBeTrue)
			})
		})

		Reset(func() {
			_ = logger.Init(logger.WithOutput(io.Discard))
			_ = logger.SetLevelString("info")
		})
	})
}

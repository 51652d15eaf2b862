package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	repository "github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/activity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When listing activities", func() {
			c, err := svc.ListActivities(ctx)

			Convey("Then every seeded activity is present with its participants intact", func() {
				So(err, ShouldBeNil)
				for _, want := range activity.Seed() {
					got, ok := c.Find(want.Name)
					So(ok, ShouldBeTrue)
					So(got, ShouldResemble, want)
				}
			})
		})

		Convey("When a student signs up, unregisters and signs up again", func() {
			const email = "workflow2@mergington.edu"
			before, _ := svc.ListActivities(ctx)

			_, err := svc.SignUp(ctx, "Drama Club", email)
			So(err, ShouldBeNil)
			_, err = svc.Unregister(ctx, "Drama Club", email)
			So(err, ShouldBeNil)

			Convey("Then the registry is back to its previous state", func() {
				after, _ := svc.ListActivities(ctx)
				So(after, ShouldResemble, before)
			})

			Convey("And signing up again succeeds", func() {
				a, err := svc.SignUp(ctx, "Drama Club", email)
				So(err, ShouldBeNil)
				So(a.Participants[len(a.Participants)-1], ShouldEqual, email)
			})
		})

		Convey("When several students sign up for the same activity", func() {
			_, err1 := svc.SignUp(ctx, "Tennis Club", "student1@mergington.edu")
			_, err2 := svc.SignUp(ctx, "Tennis Club", "student2@mergington.edu")

			Convey("Then all of them are listed in sign-up order", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				c, _ := svc.ListActivities(ctx)
				tennis, _ := c.Find("Tennis Club")
				So(tennis.Participants, ShouldResemble, []string{
					"james@mergington.edu", "student1@mergington.edu", "student2@mergington.edu",
				})
			})
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When many goroutines sign up the same email concurrently", func() {
			const n = 50
			var ok, dup atomic.Int64
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.SignUp(ctx, "Robotics Club", "same@mergington.edu")
					if err == nil {
						ok.Add(1)
					} else if errors.Is(err, repository.ErrAlreadySignedUp) {
						dup.Add(1)
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one succeeds", func() {
				So(ok.Load(), ShouldEqual, 1)
				So(dup.Load(), ShouldEqual, n-1)
			})
		})

		Convey("When signing up and unregistering across activities concurrently", func() {
			names := activity.Seed().Names()
			var wg sync.WaitGroup
			for i := 0; i < 90; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					name := names[i%len(names)]
					email := fmt.Sprintf("c%d@mergington.edu", i)
					if _, err := svc.SignUp(ctx, name, email); err != nil {
						return
					}
					_, _ = svc.Unregister(ctx, name, email)
				}(i)
			}
			wg.Wait()

			Convey("Then every activity is back to its seed participants", func() {
				c, err := svc.ListActivities(ctx)
				So(err, ShouldBeNil)
				So(c, ShouldResemble, activity.Seed())
				So(svc.GetStats()["signups"], ShouldEqual, int64(90))
				So(svc.GetStats()["unregistrations"], ShouldEqual, int64(90))
			})
		})
	})
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/hello-api/internal/app"
	"github.com/okian/hello-api/internal/domain/model"
	"github.com/okian/hello-api/internal/domain/types"
	"github.com/okian/hello-api/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type failingStore struct{ err error }

func (f failingStore) All(context.Context) ([]model.Product, error) { return nil, f.err }
func (f failingStore) Count(context.Context) int                   { return 0 }

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should serve the compiled-in catalog", func() {
			So(svc, ShouldNotBeNil)
			products, err := svc.Products(context.Background())
			So(err, ShouldBeNil)
			So(len(products), ShouldEqual, 3)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service with a fixed clock", t, func() {
		now := time.UnixMilli(1_700_000_000_000)
		svc := service.New(service.WithClock(func() time.Time { return now }))
		defer svc.Stop()

		Convey("When it has not been started", func() {
			stats := svc.GetStats()

			Convey("Then stats report it as stopped", func() {
				So(stats.Started, ShouldBeFalse)
				So(stats.UptimeMS, ShouldEqual, int64(0))
				So(stats.ProductCount, ShouldEqual, 3)
				So(stats.Version, ShouldEqual, "1.0.0")
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			now = now.Add(1500 * time.Millisecond)

			Convey("Then stats report uptime from the clock", func() {
				stats := svc.GetStats()
				So(stats.Started, ShouldBeTrue)
				So(stats.StartedAt, ShouldEqual, int64(1_700_000_000_000))
				So(stats.UptimeMS, ShouldEqual, int64(1500))
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
				So(svc.GetStats().StartedAt, ShouldEqual, int64(1_700_000_000_000))
			})

			Convey("And stopping marks it as stopped", func() {
				svc.Stop()
				So(svc.GetStats().Started, ShouldBeFalse)
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}

func TestService_Greetings(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then Hello is static", func() {
			So(svc.Hello(ctx), ShouldResemble, types.MessageResponse{
				Message: "Hello from Spring Boot API!",
				Status:  "success",
			})
		})

		Convey("Then HelloName interpolates the name", func() {
			So(svc.HelloName(ctx, "John").Message, ShouldEqual, "Hello John from Spring Boot API!")
		})

		Convey("Then Greet uses the supplied name", func() {
			name := "Alice"
			So(svc.Greet(ctx, &name), ShouldResemble, types.GreetingResponse{
				Greeting: "Greetings Alice!",
				Status:   "success",
			})
		})

		Convey("Then Greet falls back to World", func() {
			So(svc.Greet(ctx, nil).Greeting, ShouldEqual, "Greetings World!")
		})

		Convey("Then Info is static", func() {
			So(svc.Info(ctx), ShouldResemble, types.InfoResponse{
				App:         "Spring Boot Demo Application",
				Version:     "1.0.0",
				Description: "A simple Spring Boot application with Docker support.",
			})
		})
	})
}

func TestService_Health(t *testing.T) {
	Convey("Given a service with a controllable clock", t, func() {
		now := time.UnixMilli(1_700_000_000_123)
		svc := service.New(service.WithClock(func() time.Time { return now }))

		Convey("When asking for health", func() {
			h := svc.Health(context.Background())

			Convey("Then it is UP with the clock in milliseconds", func() {
				So(h.Status, ShouldEqual, "UP")
				So(h.Service, ShouldEqual, "Spring Boot Demo API")
				So(h.Timestamp, ShouldEqual, int64(1_700_000_000_123))
			})
		})

		Convey("When the clock moves between calls", func() {
			first := svc.Health(context.Background()).Timestamp
			now = now.Add(5 * time.Millisecond)
			second := svc.Health(context.Background()).Timestamp

			Convey("Then the timestamp is recomputed", func() {
				So(second-first, ShouldEqual, int64(5))
			})
		})
	})
}

func TestService_ProductsError(t *testing.T) {
	Convey("Given a service over a failing store", t, func() {
		boom := errors.New("boom")
		svc := service.New(service.WithCatalog(failingStore{err: boom}))

		Convey("Then Products surfaces the store error", func() {
			products, err := svc.Products(context.Background())
			So(errors.Is(err, boom), ShouldBeTrue)
			So(products, ShouldBeNil)
		})
	})
}

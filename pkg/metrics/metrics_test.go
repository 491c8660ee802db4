package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created enabled", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("pfx"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then options are applied", func() {
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
				So(manager.name("x"), ShouldEqual, "pfx_x")
			})

			Convey("And collectors are registered with the prefix and labels", func() {
				manager.productsServed.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_namespace_test_subsystem_pfx_products_served_total")
			})
		})

		Convey("When options carry values that need normalizing", func() {
			labels := map[string]string{"env": "prod", "": "x", "zone": ""}
			manager := NewManager(
				WithNamespace("  greeter "),
				WithMetricPrefix("_edge_"),
				WithHistogramBuckets([]float64{50, -1, 5, 50, 0, 500}),
				WithCustomLabels(labels),
				WithCustomLabels(map[string]string{"region": "eu"}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)
			labels["env"] = "changed"

			Convey("Then the manager holds the cleaned values", func() {
				So(manager.namespace, ShouldEqual, "greeter")
				So(manager.name("x"), ShouldEqual, "edge_x")
				So(manager.histogramBuckets, ShouldResemble, []float64{5, 50, 500})
				So(manager.Labels(), ShouldResemble, map[string]string{"env": "prod", "region": "eu"})
			})
		})

		Convey("When options carry empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(-1*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "hello")
				So(manager.subsystem, ShouldEqual, "api")
				So(manager.histogramBuckets, ShouldResemble, defaultLatencyBucketsMS)
				So(manager.Labels(), ShouldBeEmpty)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a freshly set up global manager", t, func() {
		manager := Setup()
		So(GetRegistry(), ShouldNotBeNil)

		Convey("When recording HTTP metrics", func() {
			RecordHTTPRequest("hello", "GET", "200")
			RecordHTTPRequest("hello", "GET", "200")
			RecordHTTPRequestDuration("hello", "GET", "200", 1.5)
			RecordHTTPError("not_found", "GET", "not_found")

			Convey("Then counters reflect the calls", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("hello", "GET", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.httpErrors.WithLabelValues("not_found", "GET", "not_found")), ShouldEqual, 1)
			})
		})

		Convey("When recording business metrics", func() {
			RecordGreeting("greet")
			RecordProductsServed(3)
			RecordProductsServed(0)
			SetBuildInfo("1.0.0")

			Convey("Then counters reflect the calls", func() {
				So(testutil.ToFloat64(manager.greetings.WithLabelValues("greet")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.productsServed), ShouldEqual, 3)
				So(testutil.ToFloat64(manager.buildInfo.WithLabelValues("1.0.0")), ShouldEqual, 1)
			})
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			RecordGreeting("hello")
			RecordProductsServed(5)
			SetBuildInfo("1.0.0")

			Convey("Then nothing is counted", func() {
				So(testutil.CollectAndCount(manager.buildInfo), ShouldEqual, 0)
				So(testutil.ToFloat64(manager.greetings.WithLabelValues("hello")), ShouldEqual, 0)
				So(testutil.ToFloat64(manager.productsServed), ShouldEqual, 0)
			})
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1024 * 1024 * 100)
				UpdateSystemGoroutineCount(42)
				RecordSystemGCPauseTime(1.0)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(manager.systemGoroutineCount), ShouldEqual, 42)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		manager := Setup()
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordHTTPRequest("/test", "GET", "200")
					RecordGreeting("hello")
				}
				done <- true
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}

		So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("/test", "GET", "200")), ShouldEqual, 1000)
		So(testutil.ToFloat64(manager.greetings.WithLabelValues("hello")), ShouldEqual, 1000)
	})
}

package swagger

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/hello-api/pkg/logger"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a router with the docs routes", t, func() {
		r := chi.NewRouter()
		Register(context.Background(), r, nil)

		convey.Convey("Then it should serve /openapi.yaml", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
			convey.So(w.Body.Len(), convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("And it should serve /api-docs", func() {
			req := httptest.NewRequest(http.MethodGet, "/api-docs", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, RedocScriptURL)
		})
	})
}

func TestOpenAPIDocument(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		doc, err := yaml.Parser().Unmarshal(OpenAPI)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then every API route is described", func() {
			paths, ok := doc["paths"].(map[string]interface{})
			convey.So(ok, convey.ShouldBeTrue)
			for _, p := range []string{
				"/api/hello", "/api/hello/{name}", "/api/greet",
				"/api/health", "/api/info", "/api/products",
			} {
				convey.So(paths, convey.ShouldContainKey, p)
			}
		})
	})
}

type failingWriter struct {
	header http.Header
}

func (f *failingWriter) Header() http.Header {
	if f.header == nil {
		f.header = http.Header{}
	}
	return f.header
}

func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }
func (f *failingWriter) WriteHeader(int)             {}

func TestSwaggerWriteFailure(t *testing.T) {
	convey.Convey("Given a response writer that fails", t, func() {
		w := &failingWriter{}

		convey.Convey("When writing a docs body", func() {
			err := write(w, "text/html; charset=utf-8", []byte("x"))

			convey.Convey("Then the error wraps ErrServe", func() {
				convey.So(errors.Is(err, ErrServe), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "connection reset")
			})
		})

		convey.Convey("When a registered route fails to write", func() {
			var buf bytes.Buffer
			convey.So(logger.Init(logger.WithFormat("json"), logger.WithOutput(&buf)), convey.ShouldBeNil)
			r := chi.NewRouter()
			Register(context.Background(), r, logger.Named("swagger"))
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))

			convey.Convey("Then the failure is logged", func() {
				convey.So(buf.String(), convey.ShouldContainSubstring, "docs response write failed")
				convey.So(buf.String(), convey.ShouldContainSubstring, ErrServe.Error())
			})
		})
	})
}

func TestSwaggerHandlerWithNilRouter(t *testing.T) {
	convey.Convey("Given a nil router", t, func() {
		convey.So(func() {
			Register(context.Background(), nil, nil)
		}, convey.ShouldPanic)
	})
}

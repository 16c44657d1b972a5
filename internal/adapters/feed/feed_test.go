package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aldeia/rankboard/internal/adapters/feed"
	"github.com/aldeia/rankboard/internal/domain/model"
	"github.com/aldeia/rankboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// sinkStub records every dataset handed to it.
type sinkStub struct {
	datasets [][]model.Raw
	err      error
}

func (s *sinkStub) ReplaceEvents(_ context.Context, rows []model.Raw) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.datasets = append(s.datasets, rows)
	return len(rows), nil
}

func (s *sinkStub) last() []model.Raw {
	if len(s.datasets) == 0 {
		return nil
	}
	return s.datasets[len(s.datasets)-1]
}

func TestFetchOnce(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream serving a valid dataset", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"Nome":"Natan","Valor Depósito":"200,00","Data":"2025-07-11","Ativação?":"Não"}]`))
		}))
		defer upstream.Close()

		sink := &sinkStub{}
		poller := feed.New(sink, feed.WithURL(upstream.URL))

		Convey("When fetching once", func() {
			poller.FetchOnce(ctx)

			Convey("Then the dataset reaches the sink", func() {
				So(sink.datasets, ShouldHaveLength, 1)
				So(sink.last(), ShouldHaveLength, 1)
				So(sink.last()[0].StringField(model.FieldBroker), ShouldEqual, "Natan")
			})
		})

		Convey("When a later fetch fails after a successful delivery", func() {
			poller.FetchOnce(ctx)
			upstream.Close()
			poller.FetchOnce(ctx)

			Convey("Then the samples do not overwrite the real dataset", func() {
				So(sink.datasets, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given an upstream returning a server error", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		sink := &sinkStub{}
		poller := feed.New(sink, feed.WithURL(upstream.URL))

		Convey("When fetching once", func() {
			poller.FetchOnce(ctx)

			Convey("Then the sample dataset is loaded instead", func() {
				So(sink.datasets, ShouldHaveLength, 1)
				So(sink.last(), ShouldResemble, feed.SampleRows())
			})
		})
	})

	Convey("Given no upstream URL is configured", t, func() {
		sink := &sinkStub{}
		poller := feed.New(sink)

		Convey("When fetching once", func() {
			poller.FetchOnce(ctx)

			Convey("Then the sample dataset is delivered", func() {
				So(sink.datasets, ShouldHaveLength, 1)
				So(sink.last(), ShouldResemble, feed.SampleRows())
			})
		})

		Convey("When fetching repeatedly", func() {
			poller.FetchOnce(ctx)
			poller.FetchOnce(ctx)

			Convey("Then the samples are reloaded each failing cycle", func() {
				So(sink.datasets, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given a poller with custom samples and no URL", t, func() {
		sink := &sinkStub{}
		custom := []model.Raw{{"Nome": "Felipe Pauluk", "Valor Depósito": "100,00"}}
		poller := feed.New(sink, feed.WithSamples(custom))

		Convey("When fetching once", func() {
			poller.FetchOnce(ctx)

			Convey("Then the custom samples are used", func() {
				So(sink.last(), ShouldResemble, custom)
			})
		})
	})

	Convey("Given a sink that rejects deliveries", t, func() {
		sink := &sinkStub{err: errors.New("store full")}
		poller := feed.New(sink)

		Convey("When fetching once", func() {
			poller.FetchOnce(ctx)

			Convey("Then nothing is recorded and no panic occurs", func() {
				So(sink.datasets, ShouldBeEmpty)
			})
		})
	})
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream that always fails", t, func() {
		var hits int
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		sink := &sinkStub{}
		poller := feed.New(sink, feed.WithURL(upstream.URL), feed.WithSamples(nil))

		Convey("When fetching more times than the failure threshold", func() {
			for i := 0; i < 5; i++ {
				poller.FetchOnce(ctx)
			}

			Convey("Then the breaker stops hitting the upstream", func() {
				So(hits, ShouldEqual, 3)
			})
		})
	})
}

func TestRunStopsOnContextCancel(t *testing.T) {
	Convey("Given a running poller", t, func() {
		sink := &sinkStub{}
		poller := feed.New(sink)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- poller.Run(ctx) }()

		Convey("When the context is canceled", func() {
			cancel()

			Convey("Then Run returns the context error", func() {
				So(<-done, ShouldEqual, context.Canceled)
			})
		})
	})
}

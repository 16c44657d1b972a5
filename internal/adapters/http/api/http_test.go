package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aldeia/rankboard/internal/adapters/http/api"
	"github.com/aldeia/rankboard/internal/adapters/repository"
	"github.com/aldeia/rankboard/internal/app"
	"github.com/aldeia/rankboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// boardStub implements api.Dependencies and api.StatsProvider with canned
// responses, recording the arguments handlers pass through.
type boardStub struct {
	entries []api.Entry
	rankErr error
	ingErr  error

	gotType   string
	gotPeriod string
	gotLimit  int
	gotBroker string
	gotRows   []model.Raw
}

func (s *boardStub) ReplaceEvents(_ context.Context, rows []model.Raw) (int, error) {
	s.gotRows = rows
	if s.ingErr != nil {
		return 0, s.ingErr
	}
	return len(rows), nil
}

func (s *boardStub) Leaderboard(_ context.Context, rankingType, selectedPeriod string, limit int) ([]api.Entry, error) {
	s.gotType, s.gotPeriod, s.gotLimit = rankingType, selectedPeriod, limit
	return s.entries, nil
}

func (s *boardStub) RankOf(_ context.Context, brokerName, rankingType, selectedPeriod string) (api.Entry, error) {
	s.gotBroker, s.gotType, s.gotPeriod = brokerName, rankingType, selectedPeriod
	if s.rankErr != nil {
		return api.Entry{}, s.rankErr
	}
	if len(s.entries) == 0 {
		return api.Entry{}, app.ErrBrokerNotFound
	}
	return s.entries[0], nil
}

func (s *boardStub) CalculateTeamKPIs(_ context.Context, selectedPeriod string) map[string]model.TeamKPI {
	s.gotPeriod = selectedPeriod
	return map[string]model.TeamKPI{"DOLLAR GODS": {TotalDeposit: 300}}
}

func (s *boardStub) AvailablePeriods(context.Context) []model.PeriodOption {
	return []model.PeriodOption{{Value: "6_2025", Text: "Julho 2025"}}
}

func (s *boardStub) ChartData(_ context.Context, selectedPeriod string) []model.ChartPoint {
	s.gotPeriod = selectedPeriod
	return []model.ChartPoint{{BrokerName: "Natan", TotalDeposit: 200, DepositCount: 1}}
}

func (s *boardStub) GetStats() map[string]any {
	return map[string]any{"datasetSize": 3, "period": "all"}
}

func newTestServer(stub *boardStub) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(stub, stub, 100).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given a running API server", t, func() {
		stub := &boardStub{entries: []api.Entry{
			{Rank: 1, BrokerAggregate: model.BrokerAggregate{BrokerName: "Natan", TotalDeposit: 200}},
		}}
		srv := newTestServer(stub)
		defer srv.Close()

		Convey("When requesting the leaderboard with no parameters", func() {
			resp, err := http.Get(srv.URL + "/leaderboard")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the defaults are value ranking over all periods", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(stub.gotType, ShouldEqual, model.RankingValue)
				So(stub.gotPeriod, ShouldEqual, "all")
				So(stub.gotLimit, ShouldEqual, 0)

				var entries []api.Entry
				So(json.NewDecoder(resp.Body).Decode(&entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].BrokerName, ShouldEqual, "Natan")
			})
		})

		Convey("When passing explicit query parameters", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?type=activation&period=6_2025&limit=10")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(stub.gotType, ShouldEqual, model.RankingActivation)
			So(stub.gotPeriod, ShouldEqual, "6_2025")
			So(stub.gotLimit, ShouldEqual, 10)
		})

		Convey("When the ranking type is unknown", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?type=bogus")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit is not a positive number", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?limit=abc")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the configured cap", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?limit=101")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			var body struct {
				Code string `json:"code"`
			}
			So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
			So(body.Code, ShouldEqual, "limit_exceeded")
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Post(srv.URL+"/leaderboard", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestEventsEndpoint(t *testing.T) {
	Convey("Given a running API server", t, func() {
		stub := &boardStub{}
		srv := newTestServer(stub)
		defer srv.Close()

		Convey("When posting a valid dataset", func() {
			body := `[{"Nome":"Natan","Valor Depósito":"200,00","Data":"2025-07-11","Ativação?":"Não"}]`
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the replace is acknowledged", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)

				var ack struct {
					Status string `json:"status"`
					Rows   int    `json:"rows"`
				}
				So(json.NewDecoder(resp.Body).Decode(&ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "accepted")
				So(ack.Rows, ShouldEqual, 1)
				So(stub.gotRows, ShouldHaveLength, 1)
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader("{not json"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the dataset exceeds store capacity", func() {
			stub.ingErr = repository.ErrCapacityExceeded
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader("[]"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given a running API server", t, func() {
		stub := &boardStub{entries: []api.Entry{
			{Rank: 2, BrokerAggregate: model.BrokerAggregate{BrokerName: "Felipe"}},
		}}
		srv := newTestServer(stub)
		defer srv.Close()

		Convey("When requesting a broker's rank", func() {
			resp, err := http.Get(srv.URL + "/rank/Felipe?type=general")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the entry comes back with the requested view", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(stub.gotBroker, ShouldEqual, "Felipe")
				So(stub.gotType, ShouldEqual, model.RankingGeneral)

				var entry api.Entry
				So(json.NewDecoder(resp.Body).Decode(&entry), ShouldBeNil)
				So(entry.Rank, ShouldEqual, 2)
			})
		})

		Convey("When the broker is not ranked", func() {
			stub.rankErr = app.ErrBrokerNotFound
			resp, err := http.Get(srv.URL + "/rank/Desconhecido")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the broker segment is empty", func() {
			resp, err := http.Get(srv.URL + "/rank/")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestReadEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		stub := &boardStub{}
		srv := newTestServer(stub)
		defer srv.Close()

		Convey("When requesting team KPIs with a period", func() {
			resp, err := http.Get(srv.URL + "/teams?period=today")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(stub.gotPeriod, ShouldEqual, "today")

			var kpis map[string]model.TeamKPI
			So(json.NewDecoder(resp.Body).Decode(&kpis), ShouldBeNil)
			So(kpis["DOLLAR GODS"].TotalDeposit, ShouldEqual, 300.0)
		})

		Convey("When requesting available periods", func() {
			resp, err := http.Get(srv.URL + "/periods")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var options []model.PeriodOption
			So(json.NewDecoder(resp.Body).Decode(&options), ShouldBeNil)
			So(options, ShouldHaveLength, 1)
			So(options[0].Text, ShouldEqual, "Julho 2025")
		})

		Convey("When requesting chart data", func() {
			resp, err := http.Get(srv.URL + "/chart")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var points []model.ChartPoint
			So(json.NewDecoder(resp.Body).Decode(&points), ShouldBeNil)
			So(points[0].BrokerName, ShouldEqual, "Natan")
		})

		Convey("When requesting stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats["period"], ShouldEqual, "all")
		})

		Convey("When probing the health endpoint", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}

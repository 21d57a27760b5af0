package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/fpl-tracker/internal/adapters/http/api"
	"github.com/okian/fpl-tracker/internal/adapters/upstream/fpl"
	service "github.com/okian/fpl-tracker/internal/app"
	"github.com/okian/fpl-tracker/internal/domain/model"
	"github.com/okian/fpl-tracker/internal/domain/pivot"
	"github.com/okian/fpl-tracker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// mockTracker stands in for the dashboard controller.
type mockTracker struct {
	teams  model.TeamsData
	addErr error
	added  []string
}

func (m *mockTracker) AddTeam(_ context.Context, input string) (service.Result, error) {
	m.added = append(m.added, input)
	if m.addErr != nil {
		return service.Result{}, m.addErr
	}
	id := model.TeamID(input)
	if id == "" {
		return service.Result{}, service.ErrEmptyTeamID
	}
	if m.teams == nil {
		m.teams = model.TeamsData{}
	}
	m.teams[id] = model.TeamRecord{"2023/24": {TotalPoints: 1800, Rank: 150000}}
	return service.Result{TeamID: id, Outcome: service.OutcomeAdded, Seasons: 1}, nil
}

func (m *mockTracker) Teams() model.TeamsData { return m.teams.Clone() }

func (m *mockTracker) View() service.View {
	return service.View{
		State:  service.NewSession(m.teams).State(),
		Teams:  len(m.teams),
		Points: pivot.Points(m.teams),
		Ranks:  pivot.Ranks(m.teams),
	}
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"teams": 1}}).Register(context.Background(), mux)
	return mux
}

func decodeError(body string) map[string]string {
	var out map[string]string
	_ = json.Unmarshal([]byte(body), &out)
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockTracker{teams: model.TeamsData{"12345": {"2022/23": {TotalPoints: 1500, Rank: 200000}}}}
		mux := newMux(deps)

		Convey("Then health endpoint serves metrics", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And stats endpoint returns the provider's stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(w.Body.String(), ShouldContainSubstring, `"teams":1`)
		})

		Convey("And stats rejects other methods", func() {
			req := httptest.NewRequest(http.MethodPost, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And registering on a nil mux panics", func() {
			So(func() {
				api.NewServer(deps, &mockStatsProvider{}).Register(context.Background(), nil)
			}, ShouldPanic)
		})
	})
}

func TestTeamsHandler(t *testing.T) {
	Convey("Given the teams endpoints", t, func() {
		deps := &mockTracker{teams: model.TeamsData{"12345": {"2022/23": {TotalPoints: 1500, Rank: 200000}}}}
		mux := newMux(deps)

		Convey("When listing teams", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the file layout is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got model.TeamsData
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldResemble, deps.teams)
				So(w.Body.String(), ShouldContainSubstring, `"Total Points":1500`)
			})
		})

		Convey("When adding a team", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"team_id":"777"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the result is reported", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got["team_id"], ShouldEqual, "777")
				So(got["outcome"], ShouldEqual, "added")
				So(got["message"], ShouldContainSubstring, "777")
				So(deps.added, ShouldResemble, []string{"777"})
			})
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`team_id=1`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is a bad request and nothing is added", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w.Body.String())["code"], ShouldEqual, "bad_request")
				So(deps.added, ShouldBeEmpty)
			})
		})

		Convey("When the team ID is empty", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"team_id":""}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the validation message is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				body := decodeError(w.Body.String())
				So(body["code"], ShouldEqual, "validation_error")
				So(body["message"], ShouldEqual, service.MsgEmptyTeamID)
			})
		})

		Convey("When upstream rejects the team", func() {
			deps.addErr = &fpl.StatusError{TeamID: "99999", StatusCode: http.StatusNotFound}
			req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"team_id":"99999"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is a bad gateway with the upstream message", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				body := decodeError(w.Body.String())
				So(body["code"], ShouldEqual, "upstream_error")
				So(body["message"], ShouldEqual, "Failed to retrieve data for team ID 99999. Status code: 404")
			})
		})

		Convey("When the action fails fatally", func() {
			deps.addErr = errors.New("disk full")
			req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"team_id":"1"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is an internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w.Body.String())["message"], ShouldContainSubstring, "disk full")
			})
		})

		Convey("When the service is not started", func() {
			deps.addErr = service.ErrNotStarted
			req := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"team_id":"1"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When using an unsupported method", func() {
			req := httptest.NewRequest(http.MethodDelete, "/api/teams", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When fetching a tracked team", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/teams/12345", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then its seasons are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"team_id":"12345"`)
				So(w.Body.String(), ShouldContainSubstring, `"2022/23"`)
			})
		})

		Convey("When fetching an untracked team", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/teams/4", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(w.Body.String())["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When the team path is nested", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/teams/1/2", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestTablesHandler(t *testing.T) {
	Convey("Given two tracked teams", t, func() {
		deps := &mockTracker{teams: model.TeamsData{
			"2": {"2023/24": {TotalPoints: 1800, Rank: 150000}},
			"1": {"2022/23": {TotalPoints: 1500, Rank: 200000}},
		}}
		mux := newMux(deps)

		Convey("When requesting the tables", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then both pivots are returned with gaps as null", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var view service.View
				So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)
				So(view.State, ShouldEqual, service.StatePopulated)
				So(view.Points.Title, ShouldEqual, pivot.PointsTitle)
				So(view.Points.Seasons, ShouldResemble, []string{"2022/23", "2023/24"})
				So(view.Points.Rows[0].TeamID, ShouldEqual, "1")
				So(view.Points.Rows[0].Values[1], ShouldBeNil)
				So(*view.Ranks.Rows[1].Values[1], ShouldEqual, 150000)
			})
		})

		Convey("When posting to the tables", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/tables", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given the request ID middleware", t, func() {
		var seen string
		h := api.RequestID(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = api.RequestIDFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

		Convey("When the client sends no ID", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then one is generated and echoed", func() {
				So(seen, ShouldNotBeEmpty)
				So(w.Header().Get(api.HeaderRequestID), ShouldEqual, seen)
				So(w.Code, ShouldEqual, http.StatusNoContent)
			})
		})

		Convey("When the client sends an ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.HeaderRequestID, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is reused", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.HeaderRequestID), ShouldEqual, "abc-123")
			})
		})

		Convey("Then a bare context has no ID", func() {
			So(api.RequestIDFromContext(context.Background()), ShouldEqual, "")
		})
	})
}

func TestErrorKinds(t *testing.T) {
	Convey("Given kind-tagged errors", t, func() {
		cause := errors.New("boom")

		Convey("Then kinds and causes are matchable", func() {
			err := api.WrapKind("api.op", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: boom")
			So(errors.Is(api.NewKind("api.op", api.ErrNotFound), api.ErrNotFound), ShouldBeTrue)
			So(api.Wrap("api.op", nil), ShouldBeNil)
			So(errors.Is(api.WrapKind("api.op", api.ErrUnavailable, nil), api.ErrUnavailable), ShouldBeTrue)
		})
	})
}

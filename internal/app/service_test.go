package service_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/okian/fpl-tracker/internal/adapters/repository"
	"github.com/okian/fpl-tracker/internal/adapters/upstream/fpl"
	service "github.com/okian/fpl-tracker/internal/app"
	"github.com/okian/fpl-tracker/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeFetcher struct {
	histories map[model.TeamID]*model.History
	errs      map[model.TeamID]error
	calls     []model.TeamID
}

func (f *fakeFetcher) FetchHistory(_ context.Context, id model.TeamID) (*model.History, error) {
	f.calls = append(f.calls, id)
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	if h, ok := f.histories[id]; ok {
		return h, nil
	}
	return nil, &fpl.StatusError{TeamID: string(id), StatusCode: http.StatusNotFound}
}

type fakeStore struct {
	data    model.TeamsData
	loadErr error
	saveErr error
	saves   int
}

func (s *fakeStore) Load(context.Context) (model.TeamsData, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.data.Clone(), nil
}

func (s *fakeStore) Save(_ context.Context, data model.TeamsData) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data = data.Clone()
	return nil
}

func scenarioHistory() *model.History {
	return &model.History{Past: []model.PastSeason{
		{SeasonName: "2022/23", TotalPoints: 1500, Rank: 200000},
		{SeasonName: "2023/24", TotalPoints: 1800, Rank: 150000},
	}}
}

func newFixture() (*service.Service, *fakeFetcher, *fakeStore) {
	fetcher := &fakeFetcher{
		histories: map[model.TeamID]*model.History{
			"12345": scenarioHistory(),
			"555":   {Past: []model.PastSeason{}},
		},
		errs: map[model.TeamID]error{},
	}
	store := &fakeStore{data: model.TeamsData{}}
	return service.New(fetcher, store), fetcher, store
}

func TestService_Start(t *testing.T) {
	Convey("Given a store with persisted teams", t, func() {
		svc, _, store := newFixture()
		store.data = model.TeamsData{"777": {"2019/20": {TotalPoints: 2100, Rank: 50000}}}
		ctx := context.Background()

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then the session is seeded from the store", func() {
				So(svc.Teams(), ShouldResemble, store.data)
				So(svc.View().State, ShouldEqual, service.StatePopulated)
				So(svc.GetStats()["started"], ShouldEqual, true)
				So(svc.GetStats()["teams"], ShouldEqual, 1)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given an empty store", t, func() {
		svc, _, _ := newFixture()

		Convey("Then the dashboard starts empty", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			view := svc.View()
			So(view.State, ShouldEqual, service.StateEmpty)
			So(view.Points.Empty(), ShouldBeTrue)
			So(view.Ranks.Empty(), ShouldBeTrue)
		})
	})

	Convey("Given a store that cannot be read", t, func() {
		svc, _, store := newFixture()
		store.loadErr = repository.ErrCorruptFile

		Convey("Then Start fails", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrCorruptFile), ShouldBeTrue)
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc, fetcher, _ := newFixture()

		Convey("Then AddTeam is refused without fetching", func() {
			_, err := svc.AddTeam(context.Background(), "12345")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(fetcher.calls, ShouldBeEmpty)
		})
	})
}

func TestService_AddTeam(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, fetcher, store := newFixture()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When adding team 12345", func() {
			res, err := svc.AddTeam(ctx, "12345")

			Convey("Then the team's seasons are stored and persisted", func() {
				So(err, ShouldBeNil)
				So(res.Outcome, ShouldEqual, service.OutcomeAdded)
				So(res.Seasons, ShouldEqual, 2)
				So(res.Message(), ShouldContainSubstring, "12345")
				want := model.TeamsData{"12345": {
					"2022/23": {TotalPoints: 1500, Rank: 200000},
					"2023/24": {TotalPoints: 1800, Rank: 150000},
				}}
				So(svc.Teams(), ShouldResemble, want)
				So(store.data, ShouldResemble, want)
				So(store.saves, ShouldEqual, 1)
			})

			Convey("And the points row spans both seasons", func() {
				view := svc.View()
				So(view.State, ShouldEqual, service.StatePopulated)
				So(view.Points.Seasons, ShouldResemble, []string{"2022/23", "2023/24"})
				So(*view.Points.Rows[0].Values[0], ShouldEqual, 1500)
				So(*view.Points.Rows[0].Values[1], ShouldEqual, 1800)
				So(*view.Ranks.Rows[0].Values[0], ShouldEqual, 200000)
				So(*view.Ranks.Rows[0].Values[1], ShouldEqual, 150000)
			})

			Convey("And adding it again with identical data changes nothing", func() {
				before := svc.Teams()
				_, err := svc.AddTeam(ctx, "12345")
				So(err, ShouldBeNil)
				So(svc.Teams(), ShouldResemble, before)
				So(store.data, ShouldResemble, before)
			})

			Convey("And a later add with new data overwrites rather than merges", func() {
				fetcher.histories["12345"] = &model.History{Past: []model.PastSeason{
					{SeasonName: "2024/25", TotalPoints: 2000, Rank: 1000},
				}}
				_, err := svc.AddTeam(ctx, "12345")
				So(err, ShouldBeNil)
				So(svc.Teams()["12345"], ShouldResemble, model.TeamRecord{
					"2024/25": {TotalPoints: 2000, Rank: 1000},
				})
			})
		})

		Convey("When the input has surrounding whitespace", func() {
			fetcher.histories[" 12345 "] = scenarioHistory()
			res, err := svc.AddTeam(ctx, " 12345 ")

			Convey("Then it is fetched and stored under the exact input", func() {
				So(err, ShouldBeNil)
				So(res.TeamID, ShouldEqual, model.TeamID(" 12345 "))
				So(fetcher.calls, ShouldResemble, []model.TeamID{" 12345 "})
				So(store.data, ShouldContainKey, model.TeamID(" 12345 "))
				So(store.data, ShouldNotContainKey, model.TeamID("12345"))
			})
		})

		Convey("When the input is only whitespace", func() {
			_, err := svc.AddTeam(ctx, "  ")

			Convey("Then it is not a validation error but goes upstream", func() {
				So(errors.Is(err, service.ErrEmptyTeamID), ShouldBeFalse)
				So(service.Classify(err), ShouldEqual, service.KindUpstream)
				So(fetcher.calls, ShouldResemble, []model.TeamID{"  "})
				So(store.saves, ShouldEqual, 0)
			})
		})

		Convey("When the input is empty", func() {
			_, err := svc.AddTeam(ctx, "")

			Convey("Then it is a validation error with no fetch and no write", func() {
				So(errors.Is(err, service.ErrEmptyTeamID), ShouldBeTrue)
				So(service.Classify(err), ShouldEqual, service.KindValidation)
				So(service.UserMessage(err), ShouldEqual, service.MsgEmptyTeamID)
				So(fetcher.calls, ShouldBeEmpty)
				So(store.saves, ShouldEqual, 0)
				So(svc.View().State, ShouldEqual, service.StateEmpty)
			})
		})

		Convey("When upstream answers 404 for 99999", func() {
			_, err := svc.AddTeam(ctx, "99999")

			Convey("Then nothing is stored and the message names the team and code", func() {
				So(service.Classify(err), ShouldEqual, service.KindUpstream)
				msg := service.UserMessage(err)
				So(msg, ShouldContainSubstring, "99999")
				So(msg, ShouldContainSubstring, "404")
				So(svc.Teams(), ShouldNotContainKey, model.TeamID("99999"))
				So(store.saves, ShouldEqual, 0)
			})
		})

		Convey("When the transport fails", func() {
			fetcher.errs["12345"] = errors.Join(fpl.ErrTransport, errors.New("connection refused"))
			_, err := svc.AddTeam(ctx, "12345")

			Convey("Then the error is fatal and surfaced, not swallowed", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, fpl.ErrTransport), ShouldBeTrue)
				So(service.Classify(err), ShouldEqual, service.KindFatal)
				So(store.saves, ShouldEqual, 0)
				So(svc.Teams(), ShouldBeEmpty)
			})
		})

		Convey("When upstream has no past seasons", func() {
			res, err := svc.AddTeam(ctx, "555")

			Convey("Then nothing is stored", func() {
				So(err, ShouldBeNil)
				So(res.Outcome, ShouldEqual, service.OutcomeNoSeasons)
				So(res.Message(), ShouldContainSubstring, "555")
				So(store.saves, ShouldEqual, 0)
				So(svc.Teams(), ShouldBeEmpty)
			})
		})

		Convey("When persisting fails", func() {
			store.saveErr = repository.ErrWriteFile
			_, err := svc.AddTeam(ctx, "12345")

			Convey("Then the session keeps matching the store", func() {
				So(errors.Is(err, repository.ErrWriteFile), ShouldBeTrue)
				So(service.Classify(err), ShouldEqual, service.KindFatal)
				So(svc.Teams(), ShouldBeEmpty)
			})
		})
	})
}

func TestService_Apply(t *testing.T) {
	Convey("Given a session value", t, func() {
		svc, _, _ := newFixture()
		ctx := context.Background()
		start := service.NewSession(model.TeamsData{"1": {"2020/21": {TotalPoints: 1, Rank: 1}}})

		Convey("When applying a successful add", func() {
			next, res, err := svc.Apply(ctx, start, "12345")

			Convey("Then a new session is returned and the input session is untouched", func() {
				So(err, ShouldBeNil)
				So(res.Outcome, ShouldEqual, service.OutcomeAdded)
				So(next.Len(), ShouldEqual, 2)
				So(start.Len(), ShouldEqual, 1)
			})
		})

		Convey("When applying a failing add", func() {
			next, _, err := svc.Apply(ctx, start, "99999")

			Convey("Then the same session comes back", func() {
				So(err, ShouldNotBeNil)
				So(next.Teams(), ShouldResemble, start.Teams())
			})
		})
	})
}

func TestService_WithFileStore(t *testing.T) {
	Convey("Given a service over a real file store", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "team_data.json")
		fetcher := &fakeFetcher{histories: map[model.TeamID]*model.History{"12345": scenarioHistory()}}
		svc := service.New(fetcher, repository.NewFileStore(path))
		So(svc.Start(ctx), ShouldBeNil)
		_, err := svc.AddTeam(ctx, "12345")
		So(err, ShouldBeNil)

		Convey("When a new service starts from the same file", func() {
			restarted := service.New(fetcher, repository.NewFileStore(path))
			So(restarted.Start(ctx), ShouldBeNil)

			Convey("Then it sees the same data", func() {
				So(restarted.Teams(), ShouldResemble, svc.Teams())
				So(restarted.GetStats()["dataFile"], ShouldEqual, path)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given no error", t, func() {
		Convey("Then it has no kind and no message", func() {
			So(service.Classify(nil), ShouldEqual, service.KindNone)
			So(service.UserMessage(nil), ShouldEqual, "")
		})
	})

	Convey("Given a wrapped status error", t, func() {
		err := errors.Join(errors.New("context"), &fpl.StatusError{TeamID: "1", StatusCode: 503})

		Convey("Then it is an upstream error with the status message", func() {
			So(service.Classify(err), ShouldEqual, service.KindUpstream)
			So(service.UserMessage(err), ShouldEqual, "Failed to retrieve data for team ID 1. Status code: 503")
		})
	})
}

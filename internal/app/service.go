// Package service provides the dashboard controller: it owns the session
// state and runs the add-team action against the fetcher and the store.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/fpl-tracker/internal/adapters/repository"
	"github.com/okian/fpl-tracker/internal/domain/model"
	"github.com/okian/fpl-tracker/internal/domain/pivot"
	"github.com/okian/fpl-tracker/internal/domain/summary"
	"github.com/okian/fpl-tracker/internal/domain/types"
	"github.com/okian/fpl-tracker/pkg/logger"
	"github.com/okian/fpl-tracker/pkg/metrics"
)

// HistoryFetcher retrieves a team's upstream history.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, teamID model.TeamID) (*model.History, error)
}

// Outcome describes a successful add-team action.
type Outcome string

// Add-team outcomes.
const (
	// OutcomeAdded: the team's record was stored.
	OutcomeAdded Outcome = "added"
	// OutcomeNoSeasons: upstream had no past seasons; nothing changed.
	OutcomeNoSeasons Outcome = "no_seasons"
)

// Result reports what an add-team action did.
type Result struct {
	TeamID  model.TeamID `json:"team_id"`
	Outcome Outcome      `json:"outcome"`
	Seasons int          `json:"seasons"`
}

// Message is the inline status text for the result.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeAdded:
		return fmt.Sprintf("Added team ID %s with %d past seasons.", r.TeamID, r.Seasons)
	case OutcomeNoSeasons:
		return fmt.Sprintf("Team ID %s has no past seasons to record.", r.TeamID)
	default:
		return ""
	}
}

// View is everything the dashboard renders.
type View struct {
	State  State       `json:"state"`
	Teams  int         `json:"teams"`
	Points types.Table `json:"points"`
	Ranks  types.Table `json:"ranks"`
}

// Service implements the dashboard controller.
type Service struct {
	mu sync.RWMutex

	fetcher HistoryFetcher
	store   repository.Store
	logger  logger.Logger

	session Session
	started bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service around a fetcher and a store.
func New(fetcher HistoryFetcher, store repository.Store, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		store:   store,
		logger:  logger.Nop(),
		session: NewSession(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start seeds the session from the store. A store that cannot be read
// (for example a malformed file) fails startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load team data: %w", err)
	}
	s.session = NewSession(data)
	s.started = true
	s.updateGauges()

	s.logger.Info(ctx, "tracker service started",
		logger.Int("teams", s.session.Len()),
		logger.String("state", string(s.session.State())),
	)
	return nil
}

// Stop marks the service as stopped. Session state is already persisted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "tracker service stopped")
}

// AddTeam runs the add-team action against the current session and keeps
// the resulting session. Actions are serialized; a view requested while an
// action is in flight waits for it.
func (s *Service) AddTeam(ctx context.Context, input string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Result{}, ErrNotStarted
	}

	next, res, err := s.Apply(ctx, s.session, input)
	s.session = next
	s.updateGauges()
	return res, err
}

// Apply is the add-team action as a function of the session: it returns the
// session to keep, which is sess itself whenever nothing changed.
//
//   - empty input: ErrEmptyTeamID, no fetch. Any other input, whitespace
//     included, is used verbatim as the team ID.
//   - upstream non-200: the fetcher's *fpl.StatusError, no write.
//   - transport or decode failure: wrapped error, no write.
//   - no past seasons: OutcomeNoSeasons, no write.
//   - otherwise the team's record replaces any previous one and the full
//     data set is saved before the new session is returned.
func (s *Service) Apply(ctx context.Context, sess Session, input string) (Session, Result, error) {
	id := model.TeamID(input)
	if id == "" {
		metrics.RecordTeamAdd(metrics.AddValidationError)
		return sess, Result{}, ErrEmptyTeamID
	}
	log := s.logger.With(logger.String("team_id", string(id)))

	history, err := s.fetcher.FetchHistory(ctx, id)
	if err != nil {
		if Classify(err) == KindUpstream {
			metrics.RecordTeamAdd(metrics.AddUpstreamError)
			log.Warn(ctx, "upstream rejected team", logger.Error(err))
			return sess, Result{TeamID: id}, err
		}
		metrics.RecordTeamAdd(metrics.AddFailed)
		log.Error(ctx, "fetch team history failed", logger.Error(err))
		return sess, Result{TeamID: id}, fmt.Errorf("fetch team %s: %w", id, err)
	}

	record := summary.Summarize(history)
	if len(record) == 0 {
		metrics.RecordTeamAdd(metrics.AddEmpty)
		log.Info(ctx, "team has no past seasons")
		return sess, Result{TeamID: id, Outcome: OutcomeNoSeasons}, nil
	}

	next := sess.WithTeam(id, record)
	if err := s.store.Save(ctx, next.Teams()); err != nil {
		metrics.RecordTeamAdd(metrics.AddFailed)
		log.Error(ctx, "persist team data failed", logger.Error(err))
		return sess, Result{TeamID: id}, fmt.Errorf("persist team %s: %w", id, err)
	}

	metrics.RecordTeamAdd(metrics.AddAdded)
	log.Info(ctx, "team added", logger.Int("seasons", len(record)), logger.Int("teams", next.Len()))
	return next, Result{TeamID: id, Outcome: OutcomeAdded, Seasons: len(record)}, nil
}

// View derives both pivot tables from the current session.
func (s *Service) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildView(s.session)
}

// BuildView derives both pivot tables from sess.
func BuildView(sess Session) View {
	data := sess.teams
	return View{
		State:  sess.State(),
		Teams:  sess.Len(),
		Points: pivot.Points(data),
		Ranks:  pivot.Ranks(data),
	}
}

// Teams returns a copy of the tracked data.
func (s *Service) Teams() model.TeamsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Teams()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"state":   string(s.session.State()),
		"teams":   s.session.Len(),
		"seasons": s.session.teams.SeasonCount(),
	}
	if p, ok := s.store.(interface{ Path() string }); ok {
		stats["dataFile"] = p.Path()
	}
	return stats
}

// updateGauges must be called with s.mu held.
func (s *Service) updateGauges() {
	metrics.UpdateTracked(s.session.Len(), s.session.teams.SeasonCount())
}

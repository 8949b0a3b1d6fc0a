package matching

import (
	"context"
	"log/slog"
	"sort"

	"amutils/internal/logging"
	"amutils/internal/pathkey"
)

// NameLookup resolves a track by its exact name. library.Repository
// satisfies it.
type NameLookup interface {
	FindByExactName(ctx context.Context, name string) (string, bool, error)
}

// Matcher selects the best candidate for a query path.
type Matcher struct {
	names  NameLookup
	logger *slog.Logger
}

// Option customises the Matcher.
type Option func(*Matcher)

// WithNameLookup enables the exact-name short-circuit for bundle queries.
func WithNameLookup(names NameLookup) Option {
	return func(m *Matcher) {
		if names != nil {
			m.names = names
		}
	}
}

// NewMatcher constructs a Matcher.
func NewMatcher(logger *slog.Logger, opts ...Option) *Matcher {
	m := &Matcher{logger: logging.NewComponentLogger(logger, "matcher")}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindBestMatch returns the highest scoring candidate for queryPath. Ties keep
// the candidate that appears first in candidates.
func (m *Matcher) FindBestMatch(ctx context.Context, queryPath string, candidates []Candidate) (Result, bool) {
	query := pathkey.Normalize(queryPath)
	if query.Empty() {
		return Result{}, false
	}

	if query.IsBundle && m.names != nil {
		if result, ok := m.lookupBundle(ctx, query); ok {
			return result, true
		}
	}

	var scored []Result
	for _, candidate := range candidates {
		score, reason, ok := Score(query, candidate.Keys)
		if !ok {
			continue
		}
		scored = append(scored, Result{Score: score, CandidateID: candidate.ID, Reason: reason})
	}
	if len(scored) == 0 {
		m.logger.Debug("no candidate matched",
			logging.String("query", query.CleanPath),
			logging.Int("candidates", len(candidates)),
		)
		return Result{}, false
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	best := scored[0]
	m.logger.Debug("matched track",
		logging.String("query", query.CleanPath),
		logging.String("track_id", best.CandidateID),
		logging.Int("score", best.Score),
		logging.String("reason", best.Reason.String()),
		logging.Int("scoring_candidates", len(scored)),
	)
	return best, true
}

func (m *Matcher) lookupBundle(ctx context.Context, query pathkey.KeySet) (Result, bool) {
	id, found, err := m.names.FindByExactName(ctx, query.Basename)
	if err != nil {
		m.logger.Debug("bundle name lookup failed; scanning library",
			logging.String("name", query.Basename),
			logging.Error(err),
		)
		return Result{}, false
	}
	if !found || id == "" {
		return Result{}, false
	}
	m.logger.Debug("matched bundle by name",
		logging.String("name", query.Basename),
		logging.String("track_id", id),
	)
	return Result{Score: ScoreExactName, CandidateID: id, Reason: ReasonExactName}, true
}

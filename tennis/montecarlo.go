package tennis

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/ezBadminton/gotennis/internal"
)

var (
	ErrIncomplete     = errors.New("tournament has undecided matches")
	ErrWinnerMismatch = errors.New("score does not match the recorded winner")
)

// Namespace of the run IDs. A run ID is derived from the batch
// seed and the run index so repeated batches have the same IDs.
var runNamespace = uuid.MustParse("6f1c1f5e-4a7b-4c2e-9d8e-3b5a7c9e0f12")

// A tournament of a finished season
type TournamentSummary struct {
	Week     int
	Name     string
	Variant  internal.Variant
	Entrants int
	Champion string
	Finalist string
	// Names of the entrants from first to last place
	Standings []string
}

// The outcome of one simulated season
type RunResult struct {
	RunID uuid.UUID
	Index int
	Seeds [2]uint64

	// Final state of the players in ranking order
	Players     []internal.PlayerSnapshot
	Tournaments []TournamentSummary

	// Number of played matches whose score was validated
	Audited int
}

// Simulates cfg.Runs independent seasons on up to cfg.Workers
// goroutines. Every run generates its own players and owns its
// random source, so the results only depend on the configuration.
// The results are ordered by run index.
func RunSeasons(ctx context.Context, cfg *Config, log logrus.FieldLogger) ([]RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]RunResult, cfg.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range cfg.Runs {
		g.Go(func() error {
			result, err := RunSeason(ctx, cfg, i, log)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Simulates the season with the given run index
func RunSeason(ctx context.Context, cfg *Config, index int, log logrus.FieldLogger) (RunResult, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return RunResult{}, err
	}
	policies, err := cfg.Policies()
	if err != nil {
		return RunResult{}, err
	}
	calendar, err := cfg.Calendar()
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		RunID: uuid.NewSHA1(runNamespace, fmt.Appendf(nil, "%d/%d", cfg.Seed, index)),
		Index: index,
		Seeds: [2]uint64{cfg.Seed, uint64(index)},
	}

	var runLog logrus.FieldLogger
	if log != nil {
		runLog = log.WithField("run", result.RunID.String())
	}

	engine, err := internal.NewEngine(result.Seeds[0], result.Seeds[1], rules, runLog)
	if err != nil {
		return RunResult{}, err
	}

	roster := internal.NewRoster()
	players, err := roster.Generate(engine.Rng, cfg.Players, policies)
	if err != nil {
		return RunResult{}, err
	}

	season, err := internal.NewSeason(engine, calendar, players)
	if err != nil {
		return RunResult{}, err
	}
	if cfg.Audit {
		season.Observer = func(week int, t *internal.Tournament) error {
			audited, err := AuditTournament(t)
			result.Audited += audited
			return err
		}
	}

	for !season.Done() {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}
		if err := season.SimulateWeek(); err != nil {
			return RunResult{}, err
		}
	}

	result.Players = season.Snapshot()
	for _, t := range season.History {
		result.Tournaments = append(result.Tournaments, TournamentSummary{
			Week:     t.Week,
			Name:     t.Name,
			Variant:  t.Variant,
			Entrants: t.Entrants,
			Champion: nameOf(t.Champion),
			Finalist: nameOf(t.Finalist),

			Standings: flatNames(t.Standings),
		})
	}

	engine.Log.WithFields(logrus.Fields{
		"index":       index,
		"tournaments": len(result.Tournaments),
	}).Debug("Season run complete")

	return result, nil
}

// Validates the score of every played match of the tournament and
// checks that the score agrees with the recorded winner.
// Returns the number of validated matches.
func AuditTournament(t *internal.Tournament) (int, error) {
	if t.MatchList == nil {
		return 0, nil
	}
	if !t.MatchesComplete() {
		return 0, fmt.Errorf("%s: %w", t.Name, ErrIncomplete)
	}

	settings, err := TourSettings(t.Format.SetTarget())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", t.Name, err)
	}

	audited := 0
	for _, m := range t.Matches {
		s, ok := MatchScore(m)
		if !ok {
			continue
		}
		if _, err := NewScore(s.Points1(), s.Points2(), settings); err != nil {
			return audited, fmt.Errorf("%s %v: %w", t.Name, m, err)
		}
		if m.SetsWon(m.Winner) != settings.WinningSets {
			return audited, fmt.Errorf("%s %v: %w", t.Name, m, ErrWinnerMismatch)
		}
		audited += 1
	}
	return audited, nil
}

func nameOf(p *internal.Player) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func flatNames(ranks [][]*internal.Player) []string {
	var names []string
	for _, rank := range ranks {
		for _, p := range rank {
			names = append(names, p.Name)
		}
	}
	return names
}

// Aggregated results of the players that used one entry policy
// across all runs
type PolicySummary struct {
	Policy  string
	Players int

	MeanPoints, StdPoints float64
	MeanRanking           float64
	MeanTitles            float64
	MeanMatches           float64
	MeanWinRate           float64
	// Share of the players who end the season injured
	InjuredAtSeasonEnd float64
}

// Summarizes the runs per entry policy. The summaries are sorted
// by mean ranking points, best first.
func Summarize(results []RunResult) []PolicySummary {
	type samples struct {
		points, ranking, titles, matches, winRate, injured []float64
	}
	byPolicy := make(map[string]*samples)

	for _, r := range results {
		for _, p := range r.Players {
			s, ok := byPolicy[p.Policy]
			if !ok {
				s = &samples{}
				byPolicy[p.Policy] = s
			}

			titles := 0
			for _, n := range p.TournamentsWon {
				titles += n
			}
			winRate := 0.0
			if p.Stats.NumMatches > 0 {
				winRate = float64(p.Stats.Wins) / float64(p.Stats.NumMatches)
			}
			injured := 0.0
			if p.Injured {
				injured = 1
			}

			s.points = append(s.points, float64(p.RankingPoints))
			s.ranking = append(s.ranking, float64(p.Ranking))
			s.titles = append(s.titles, float64(titles))
			s.matches = append(s.matches, float64(p.Stats.NumMatches))
			s.winRate = append(s.winRate, winRate)
			s.injured = append(s.injured, injured)
		}
	}

	summaries := make([]PolicySummary, 0, len(byPolicy))
	for policy, s := range byPolicy {
		mean, std := stat.MeanStdDev(s.points, nil)
		if len(s.points) < 2 {
			std = 0
		}
		summaries = append(summaries, PolicySummary{
			Policy:             policy,
			Players:            len(s.points),
			MeanPoints:         mean,
			StdPoints:          std,
			MeanRanking:        stat.Mean(s.ranking, nil),
			MeanTitles:         stat.Mean(s.titles, nil),
			MeanMatches:        stat.Mean(s.matches, nil),
			MeanWinRate:        stat.Mean(s.winRate, nil),
			InjuredAtSeasonEnd: stat.Mean(s.injured, nil),
		})
	}

	slices.SortFunc(summaries, func(a, b PolicySummary) int {
		if c := cmp.Compare(b.MeanPoints, a.MeanPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.Policy, b.Policy)
	})

	return summaries
}

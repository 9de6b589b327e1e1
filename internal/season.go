package internal

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Called after every tournament of the season. A returned error
// stops the season.
type Observer func(week int, t *Tournament) error

// The outcome of one tournament that the season keeps after the
// tournament's draw is released
type TournamentResult struct {
	Week     int
	Name     string
	Court    Court
	Variant  Variant
	Entrants int
	Champion *Player
	Finalist *Player
	// Entrants ordered by how far they reached, ties broken by
	// their sets and games
	Standings [][]*Player
}

// A Season plays the weeks of a calendar with a fixed field of
// players.
//
// Every week the players are ranked by their points, each
// tournament of the week is offered to the players in ranking
// order until its draw is full and the players who did not play
// rest and recover.
type Season struct {
	Engine   *Engine
	Calendar *Calendar

	// The field in ranking order
	Players []*Player

	// Number of weeks played so far
	Week int

	History  []TournamentResult
	Observer Observer
}

func NewSeason(e *Engine, calendar *Calendar, players []*Player) (*Season, error) {
	if err := calendar.Validate(); err != nil {
		return nil, err
	}
	for _, p := range players {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if p.Policy == nil {
			return nil, fmt.Errorf("%v: %w", p, ErrMissingPolicy)
		}
	}

	season := &Season{
		Engine:   e,
		Calendar: calendar,
		Players:  slices.Clone(players),
	}
	season.Rerank()

	return season, nil
}

// Sorts the field by ranking points and assigns the ranking
// positions 1..N. Players with equal points keep their relative
// order.
func (s *Season) Rerank() {
	slices.SortStableFunc(s.Players, func(a, b *Player) int {
		return cmp.Compare(b.RankingPoints, a.RankingPoints)
	})
	for i, p := range s.Players {
		p.Ranking = i + 1
	}
}

// Returns true when all weeks of the calendar are played
func (s *Season) Done() bool {
	return s.Week >= len(s.Calendar.Weeks)
}

// Plays all remaining weeks
func (s *Season) Simulate() error {
	for !s.Done() {
		if err := s.SimulateWeek(); err != nil {
			return err
		}
	}

	s.Engine.Log.WithFields(logrus.Fields{
		"weeks":       s.Week,
		"tournaments": len(s.History),
		"players":     len(s.Players),
	}).Info("Season complete")

	return nil
}

// Plays the next week of the calendar
func (s *Season) SimulateWeek() error {
	if s.Done() {
		return nil
	}
	week := s.Week + 1

	tournaments, err := s.Calendar.Weeks[s.Week].NewTournaments()
	if err != nil {
		return err
	}

	s.Rerank()

	entered := make(map[*Player]bool, len(s.Players))
	for _, t := range tournaments {
		entrants := s.offerEntry(t, entered)

		if err := t.GenerateDraw(s.Engine, entrants); err != nil {
			return err
		}
		if err := t.Simulate(s.Engine); err != nil {
			return err
		}

		if s.Observer != nil {
			if err := s.Observer(week, t); err != nil {
				return fmt.Errorf("week %d %s: %w", week, t.Name, err)
			}
		}

		s.History = append(s.History, TournamentResult{
			Week:     week,
			Name:     t.Name,
			Court:    t.Court,
			Variant:  t.Variant(),
			Entrants: len(t.Entrants),
			Champion: t.Champion,
			Finalist: t.Finalist,

			Standings: t.TieBrokenStandings(),
		})
	}

	for _, p := range s.Players {
		if !entered[p] {
			s.rest(p)
		}
	}

	s.Rerank()
	s.Week = week

	return nil
}

// Offers the tournament to the players in ranking order who did
// not enter another tournament of the same week
func (s *Season) offerEntry(t *Tournament, entered map[*Player]bool) []*Player {
	entrants := make([]*Player, 0, t.Format.DrawSize)
	for _, p := range s.Players {
		if len(entrants) == t.Format.DrawSize {
			break
		}
		if entered[p] {
			continue
		}
		if p.Policy.ShouldEnter(p, t, s) {
			entrants = append(entrants, p)
			entered[p] = true
		}
	}
	return entrants
}

func (s *Season) rest(player *Player) {
	if player.Injured && s.Engine.bernoulli(s.Engine.Rules.InjuryRecoveryChance) {
		player.Injured = false
	}
	player.adjustFitness(s.Engine.Rules.FitnessRecovery)
}

// The strength of a player as used by the estimators
func skillOf(player *Player) float64 {
	return (player.ServeStrength + player.ReturnStrength) * player.Form * (0.5 + 0.5*player.Fitness)
}

// Returns the mean skill of the top ranked players
func (s *Season) fieldBaseline() float64 {
	size := min(len(s.Players), s.Engine.Rules.FieldBaselineSize)
	if size == 0 {
		return 0
	}

	skills := make([]float64, 0, size)
	for _, p := range s.Players[:size] {
		skills = append(skills, skillOf(p))
	}
	return stat.Mean(skills, nil)
}

// Returns the chance of the player to win a single round against
// an average opponent of the field
func (s *Season) roundWinChance(player *Player) float64 {
	skill := skillOf(player)
	baseline := s.fieldBaseline()
	if !(baseline > 0) {
		return 0.5
	}
	return skill / (skill + baseline)
}

// Ranking points the player can expect from the tournament
func (s *Season) SkillBasedExpectedPoints(player *Player, t *Tournament) float64 {
	q := s.roundWinChance(player)
	rounds := t.Format.NumRounds()

	expected := 0.0
	for r := range rounds {
		// Wins the first r rounds and loses the next
		exit := math.Pow(q, float64(r)) * (1 - q)
		expected += exit * float64(t.Format.PointsForRound(r))
	}
	expected += math.Pow(q, float64(rounds)) * float64(t.Format.WinnerPoints)

	return expected
}

// Number of matches the player can expect to play in the
// tournament
func (s *Season) ExpectedMatches(player *Player, t *Tournament) float64 {
	q := s.roundWinChance(player)

	expected := 0.0
	for k := range t.Format.NumRounds() {
		expected += math.Pow(q, float64(k))
	}
	return expected
}

// Probability that the player gets injured in the tournament.
// The injury risk the player is expected to accumulate is
// compared with their threshold.
func (s *Season) TournamentRisk(t *Tournament, player *Player) float64 {
	load := s.ExpectedMatches(player, t) * t.Format.MatchRisk * (2 - player.Fitness)
	projected := player.InjuryRisk + load

	if player.InjuryThreshold <= 0 {
		return player.InjuryProbability
	}
	return player.InjuryProbability * min(1, projected/player.InjuryThreshold)
}

// A read-only copy of one player's state
type PlayerSnapshot struct {
	Id             int
	Name           string
	Policy         string
	Ranking        int
	RankingPoints  int
	Fitness        float64
	InjuryRisk     float64
	Injured        bool
	TournamentsWon map[Variant]int
	Stats          MatchMetrics
}

// Returns copies of the players' state in ranking order
func (s *Season) Snapshot() []PlayerSnapshot {
	snapshot := make([]PlayerSnapshot, 0, len(s.Players))
	for _, p := range s.Players {
		snapshot = append(snapshot, PlayerSnapshot{
			Id:             p.Id(),
			Name:           p.Name,
			Policy:         p.Policy.Name(),
			Ranking:        p.Ranking,
			RankingPoints:  p.RankingPoints,
			Fitness:        p.Fitness,
			InjuryRisk:     p.InjuryRisk,
			Injured:        p.Injured,
			TournamentsWon: maps.Clone(p.TournamentsWon),
			Stats:          p.Stats,
		})
	}
	return snapshot
}

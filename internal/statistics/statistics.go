package statistics

import (
	"fmt"
	"math"
	"sort"
)

// maxSeats bounds the per-seat breakdown.
const maxSeats = 8

// GameResult represents the outcome of a single simulated game from the
// subject's perspective.
type GameResult struct {
	Won          bool
	Score        int   // subject's final banked total
	BestOpponent int   // highest total among the other seats
	Margin       int   // Score - BestOpponent
	Rounds       int
	Busts        int   // rounds the subject busted
	SevenBonuses int   // seven-unique bonuses the subject hit
	Seat         int   // subject's seat index, 0-based
	Seed         int64 // RNG seed for this game (for replay)
}

// SeatStats tracks results for a single seat index.
type SeatStats struct {
	Games      int
	Wins       int
	SumMargin  float64
	SumMargin2 float64
}

// Statistics aggregates simulation results. Margins (score relative to
// the best opponent) are the headline metric since raw scores depend on
// how long each game ran.
type Statistics struct {
	Games   int
	Wins    int
	Margins []float64 // all margins, for median/percentile

	SumMargin  float64
	SumMargin2 float64 // sum of squares for variance

	SumScore     float64
	SumRounds    int
	Busts        int
	SevenBonuses int

	SeatResults [maxSeats]SeatStats
	MaxScore    int
	MaxMargin   int
}

// Add incorporates a new game result.
func (s *Statistics) Add(result GameResult) {
	margin := float64(result.Margin)
	s.Games++
	s.Margins = append(s.Margins, margin)
	s.SumMargin += margin
	s.SumMargin2 += margin * margin
	s.SumScore += float64(result.Score)
	s.SumRounds += result.Rounds
	s.Busts += result.Busts
	s.SevenBonuses += result.SevenBonuses

	if result.Won {
		s.Wins++
	}
	// Seed the maxima from the first result so an all-negative run
	// reports a margin that actually occurred.
	if s.Games == 1 || result.Score > s.MaxScore {
		s.MaxScore = result.Score
	}
	if s.Games == 1 || result.Margin > s.MaxMargin {
		s.MaxMargin = result.Margin
	}

	if result.Seat >= 0 && result.Seat < maxSeats {
		seat := &s.SeatResults[result.Seat]
		seat.Games++
		seat.SumMargin += margin
		seat.SumMargin2 += margin * margin
		if result.Won {
			seat.Wins++
		}
	}
}

// WinRate returns the fraction of games won.
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Mean returns the arithmetic mean margin per game.
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// MeanScore returns the mean final score per game.
func (s *Statistics) MeanScore() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// MeanRounds returns the mean game length in rounds.
func (s *Statistics) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumRounds) / float64(s.Games)
}

// Variance returns the sample variance of margins.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of margins.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean margin.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// margin.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median margin.
func (s *Statistics) Median() float64 {
	if len(s.Margins) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Margins))
	copy(sorted, s.Margins)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the margin at the given percentile (0.0 to 1.0),
// interpolating between observations.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Margins) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Margins))
	copy(sorted, s.Margins)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatWinRate returns the win rate for a specific seat index.
func (s *Statistics) SeatWinRate(seat int) float64 {
	if seat < 0 || seat >= maxSeats {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Games == 0 {
		return 0
	}
	return float64(ss.Wins) / float64(ss.Games)
}

// SeatMean returns the mean margin for a specific seat index.
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= maxSeats {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Games == 0 {
		return 0
	}
	return ss.SumMargin / float64(ss.Games)
}

// BustRate returns busts per game.
func (s *Statistics) BustRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Busts) / float64(s.Games)
}

// Validate checks the internal accounting for consistency.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid game count: %d", s.Games)
	}
	if len(s.Margins) != s.Games {
		return fmt.Errorf("margins length (%d) does not match game count (%d)",
			len(s.Margins), s.Games)
	}
	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceed games (%d)", s.Wins, s.Games)
	}

	seatGames, seatWins := 0, 0
	for seat := 0; seat < maxSeats; seat++ {
		seatGames += s.SeatResults[seat].Games
		seatWins += s.SeatResults[seat].Wins
	}
	if seatGames != s.Games {
		return fmt.Errorf("seat games total (%d) does not match game count (%d)",
			seatGames, s.Games)
	}
	if seatWins != s.Wins {
		return fmt.Errorf("seat wins total (%d) does not match win count (%d)",
			seatWins, s.Wins)
	}
	return nil
}

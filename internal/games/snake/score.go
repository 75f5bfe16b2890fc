package snake

import (
	"github.com/charmbracelet/log"
)

// HighScoreStore persists the single best score.
type HighScoreStore interface {
	// LoadHighScore returns the stored score; ok is false when none is stored.
	LoadHighScore() (score int, ok bool, err error)
	SaveHighScore(score int) error
}

// Scores tracks the session score and the persisted high score. Store
// failures are logged and the game carries on with in-memory values.
type Scores struct {
	store  HighScoreStore
	logger *log.Logger

	score int
	high  int
}

// NewScores creates a score keeper. A nil store keeps the high score in memory.
func NewScores(store HighScoreStore, logger *log.Logger) *Scores {
	if logger == nil {
		logger = discardLogger()
	}
	return &Scores{store: store, logger: logger}
}

// Load reads the high score from the store. A missing value means 0.
func (s *Scores) Load() {
	if s.store == nil {
		return
	}
	var (
		v   int
		ok  bool
		err error
	)
	safeCall(s.logger, "load high score", func() {
		v, ok, err = s.store.LoadHighScore()
	})
	if err != nil {
		s.logger.Warn("high score unavailable", "err", err)
		return
	}
	if ok && v > 0 {
		s.high = v
	}
}

// AddPoints adds n to the score, raising and persisting the high score when
// it is exceeded.
func (s *Scores) AddPoints(n int) {
	s.score += n
	if s.score <= s.high {
		return
	}
	s.high = s.score
	if s.store == nil {
		return
	}
	safeCall(s.logger, "save high score", func() {
		if err := s.store.SaveHighScore(s.high); err != nil {
			s.logger.Warn("failed to save high score", "score", s.high, "err", err)
		}
	})
}

// ResetScore zeroes the session score. The high score is kept.
func (s *Scores) ResetScore() { s.score = 0 }

// Score returns the session score.
func (s *Scores) Score() int { return s.score }

// HighScore returns the best score seen.
func (s *Scores) HighScore() int { return s.high }

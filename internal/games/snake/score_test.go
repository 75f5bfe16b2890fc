package snake

import (
	"testing"
)

type panicStore struct{}

func (panicStore) LoadHighScore() (int, bool, error) { panic("boom") }
func (panicStore) SaveHighScore(int) error { panic("boom") }

func TestScoresLoadAndPersist(t *testing.T) {
	store := &memStore{score: 120, ok: true}
	s := NewScores(store, nil)
	s.Load()
	if s.HighScore() != 120 {
		t.Fatalf("HighScore = %d, expected 120", s.HighScore())
	}

	s.AddPoints(100)
	if store.saves != 0 {
		t.Error("no save expected below the high score")
	}
	s.AddPoints(30)
	if s.HighScore() != 130 || store.score != 130 {
		t.Errorf("high score %d stored %d, expected 130", s.HighScore(), store.score)
	}

	s.ResetScore()
	if s.Score() != 0 || s.HighScore() != 130 {
		t.Error("ResetScore should keep the high score")
	}
}

func TestScoresMissingValueIsZero(t *testing.T) {
	s := NewScores(&memStore{}, nil)
	s.Load()
	if s.HighScore() != 0 {
		t.Errorf("HighScore = %d, expected 0", s.HighScore())
	}
}

func TestScoresSurviveStoreFailures(t *testing.T) {
	s := NewScores(&memStore{err: errStoreDown}, nil)
	s.Load()
	s.AddPoints(10)
	if s.Score() != 10 || s.HighScore() != 10 {
		t.Errorf("in-memory scores should still update, got %d/%d", s.Score(), s.HighScore())
	}

	p := NewScores(panicStore{}, nil)
	p.Load()
	p.AddPoints(5)
	if p.HighScore() != 5 {
		t.Errorf("panicking store should be contained, high %d", p.HighScore())
	}
}

func TestScoresWithoutStore(t *testing.T) {
	s := NewScores(nil, nil)
	s.Load()
	s.AddPoints(40)
	if s.HighScore() != 40 {
		t.Errorf("HighScore = %d, expected 40", s.HighScore())
	}
}

package snake

import "testing"

func TestDirectionQueue(t *testing.T) {
	var q DirectionQueue
	if got := q.PendingDirection(DirRight); got != DirRight {
		t.Errorf("empty queue should return current, got %v", got)
	}

	q.Push(DirUp)
	if q.Push(DirUp) {
		t.Error("repeat of the last queued direction should be dropped")
	}
	if q.Push(DirDown) {
		t.Error("reversal of the last queued direction should be dropped")
	}
	q.Push(DirLeft)
	q.Push(DirDown)
	if q.Push(DirRight) {
		t.Error("queue should hold at most 3 turns")
	}

	want := []Direction{DirUp, DirLeft, DirDown}
	for _, d := range want {
		if got := q.PendingDirection(DirRight); got != d {
			t.Errorf("PendingDirection = %v, expected %v", got, d)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue should be drained, len %d", q.Len())
	}

	q.Push(DirUp)
	q.Reset()
	if q.Len() != 0 {
		t.Error("Reset should drop queued turns")
	}
}

func TestMultiRendererFansOut(t *testing.T) {
	calls := 0
	r := MultiRenderer{
		RendererFunc(func(Snapshot) { calls++ }),
		RendererFunc(func(Snapshot) { calls++ }),
	}
	r.Render(Snapshot{})
	if calls != 2 {
		t.Errorf("Expected both renderers called, got %d", calls)
	}
}

func TestModeCycle(t *testing.T) {
	m := ModeClassic
	for _, want := range []Mode{ModeTimeAttack, ModeMaze, ModeClassic} {
		m = m.Next()
		if m != want {
			t.Errorf("Next() = %v, expected %v", m, want)
		}
	}
	if got, err := ParseMode("time_attack"); err != nil || got != ModeTimeAttack {
		t.Errorf("ParseMode(time_attack) = %v, %v", got, err)
	}
	if _, err := ParseMode("zen"); err == nil {
		t.Error("ParseMode should reject unknown modes")
	}
}

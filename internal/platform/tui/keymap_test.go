package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakeboy/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runeKey('w'), core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"a", runeKey('a'), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"p", runeKey('p'), core.ActionPause},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionSelect},
		{"z", runeKey('z'), core.ActionA},
		{"x", runeKey('x'), core.ActionB},
		{"r", runeKey('r'), core.ActionReset},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('m'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func feedAll(k *Konami, seq []core.Action) (hits int) {
	for _, a := range seq {
		if k.Feed(a) {
			hits++
		}
	}
	return hits
}

func TestKonamiCompletes(t *testing.T) {
	var k Konami
	for i, a := range konamiCode {
		got := k.Feed(a)
		if last := i == len(konamiCode)-1; got != last {
			t.Fatalf("Feed #%d = %v, expected %v", i, got, last)
		}
	}
	// The detector rearms after a hit
	if hits := feedAll(&k, konamiCode); hits != 1 {
		t.Errorf("second entry should hit once, got %d", hits)
	}
}

func TestKonamiExtraUpStillCounts(t *testing.T) {
	var k Konami
	seq := append([]core.Action{core.ActionUp}, konamiCode...)
	if hits := feedAll(&k, seq); hits != 1 {
		t.Errorf("↑↑↑↓↓←→←→BA should complete the code, got %d hits", hits)
	}
}

func TestKonamiMistakeRestarts(t *testing.T) {
	var k Konami
	seq := []core.Action{
		core.ActionUp, core.ActionUp, core.ActionDown, core.ActionLeft, // miss
	}
	seq = append(seq, konamiCode[:len(konamiCode)-1]...)
	if hits := feedAll(&k, seq); hits != 0 {
		t.Fatalf("incomplete code should not hit, got %d", hits)
	}
	if !k.Feed(core.ActionA) {
		t.Error("final A after a restarted attempt should complete the code")
	}
}

func TestKonamiIgnoresNone(t *testing.T) {
	var k Konami
	k.Feed(core.ActionUp)
	k.Feed(core.ActionNone)
	if k.pos != 1 {
		t.Errorf("ActionNone should not reset progress, pos = %d", k.pos)
	}
}

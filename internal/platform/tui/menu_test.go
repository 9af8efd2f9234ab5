package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func press(m MenuModel, msg tea.KeyMsg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuSelectsPreset(t *testing.T) {
	m := NewMenuModel(nil, 80)
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown}) // clamps at the last item
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatalf("Expected a selection")
	}
	if sel.Preset != config.DifficultyHard {
		t.Errorf("Expected hard, got %s", sel.Preset)
	}
}

func TestMenuQuitAndScoreboard(t *testing.T) {
	m := press(NewMenuModel(nil, 80), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() || m.Selected() != nil {
		t.Errorf("Expected tab to request the scoreboard")
	}

	m = press(NewMenuModel(nil, 80), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Errorf("Expected q to quit")
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore(string(config.DifficultyNormal), "ann", 1200, 12); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	m := NewMenuModel(store, 80)
	if !strings.Contains(m.View(), "best 1200") {
		t.Errorf("Expected normal best score in menu:\n%s", m.View())
	}
}

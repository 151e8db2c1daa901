package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astrarun/internal/core"
)

func TestMenuNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want MenuChoice
	}{
		{"enter plays", []tea.KeyMsg{{Type: tea.KeyEnter}}, ChoicePlay},
		{"down enter opens scores", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ChoiceScoreboard},
		{"cursor stops at bottom", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ChoiceQuit},
		{"cursor stops at top", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}}, ChoicePlay},
		{"tab opens scores", []tea.KeyMsg{{Type: tea.KeyTab}}, ChoiceScoreboard},
		{"q quits", []tea.KeyMsg{runeKey('q')}, ChoiceQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewMenuModel(MenuInfo{}, core.DefaultConfig())
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			if got := m.(MenuModel).Choice(); got != tt.want {
				t.Errorf("Choice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(MenuInfo{HighScore: 42, Difficulty: "hard"}, core.DefaultConfig())

	view := m.View()
	for _, want := range []string{"A S T R A R U N", "Best 00042", "hard", "> Play"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenuResize(t *testing.T) {
	var m tea.Model = NewMenuModel(MenuInfo{}, core.DefaultConfig())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	cfg := m.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config = %+v", cfg)
	}
}

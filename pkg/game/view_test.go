package game

import (
	"testing"

	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/messages"
)

func TestSnapshot(t *testing.T) {
	g := newMatch(t, config.SessionFreeForAll, map[string]any{config.SettingTimeLimit: 120})
	a := addPlayer(t, g, "alice", nil)
	addPlayer(t, g, "bob", nil)
	g.OnTransitionIn("Nowhere")
	g.OnBegin()
	g.Services.Router.Send(a.Entity, messages.FreezeMessage{})
	advance(g, 1)

	v := g.Snapshot()
	if v.TimeLeft != 119 {
		t.Errorf("TimeLeft = %v, want 119", v.TimeLeft)
	}

	players, frozen := 0, 0
	last := SpriteKind(-1)
	for _, s := range v.Sprites {
		if s.Kind < last {
			t.Fatal("sprites should be sorted bottom to top")
		}
		last = s.Kind
		if s.Kind == SpritePlayer {
			players++
			if s.Frozen {
				frozen++
				if s.Label != "alice" {
					t.Errorf("frozen player = %q, want alice", s.Label)
				}
			}
		}
	}
	if players != 2 || frozen != 1 {
		t.Errorf("players=%d frozen=%d, want 2/1", players, frozen)
	}
	if len(v.Standings) != 2 {
		t.Errorf("standings = %d teams, want 2", len(v.Standings))
	}
}

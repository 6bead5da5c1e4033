package messages

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindHit, "hit"},
		{KindFreeze, "freeze"},
		{KindThaw, "thaw"},
		{KindPowerup, "powerup"},
		{KindDie, "die"},
		{KindOutOfBounds, "out_of_bounds"},
		{KindTouched, "touched"},
		{KindExplodeHit, "explode_hit"},
		{KindStand, "stand"},
		{KindBombDied, "bomb_died"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPayloadKinds(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want Kind
	}{
		{"冲击", HitMessage{}, KindHit},
		{"冰冻", FreezeMessage{}, KindFreeze},
		{"解冻", ThawMessage{}, KindThaw},
		{"能量", PowerupMessage{Type: "super_ice"}, KindPowerup},
		{"死亡", DieMessage{Immediate: true}, KindDie},
		{"触碰", TouchedMessage{}, KindTouched},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeathTypeString(t *testing.T) {
	if DeathLeftGame.String() != "left_game" || DeathImpact.String() != "impact" {
		t.Errorf("unexpected death type names: %s %s", DeathLeftGame, DeathImpact)
	}
}

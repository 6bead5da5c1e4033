package entities

import (
	"math"
	"testing"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// TestNewPlayerEntity 测试玩家实体创建
func TestNewPlayerEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultModeConfig()

	tests := []struct {
		name         string
		spec         PlayerSpec
		wantBombType string
	}{
		{
			name:         "未指定炸弹类型时默认冰炸弹",
			spec:         PlayerSpec{PlayerID: 1, Name: "Alice", Position: utils.Vec3{X: 1, Y: 0, Z: 2}},
			wantBombType: "ice",
		},
		{
			name:         "保留指定的炸弹类型",
			spec:         PlayerSpec{PlayerID: 2, TeamID: 1, BombType: "tnt", Bot: true, EnablePickup: true},
			wantBombType: "tnt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewPlayerEntity(em, &cfg.Player, tt.spec)
			if id == 0 {
				t.Fatal("Expected valid entity ID, got 0")
			}

			player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
			if !ok {
				t.Fatal("player should have PlayerComponent")
			}
			if player.BombType != tt.wantBombType {
				t.Errorf("BombType = %q, want %q", player.BombType, tt.wantBombType)
			}
			if player.ImpactScale != 1.0 {
				t.Errorf("ImpactScale = %v, want 1.0", player.ImpactScale)
			}
			if player.BombCount != cfg.Player.BombCount {
				t.Errorf("BombCount = %d, want %d", player.BombCount, cfg.Player.BombCount)
			}

			health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
			if health.CurrentHealth != cfg.Player.MaxHealth {
				t.Errorf("CurrentHealth = %d, want %d", health.CurrentHealth, cfg.Player.MaxHealth)
			}

			for _, has := range []bool{
				ecs.HasComponent[*components.FreezeComponent](em, id),
				ecs.HasComponent[*components.IcePowerComponent](em, id),
				ecs.HasComponent[*components.ColliderComponent](em, id),
				ecs.HasComponent[*components.TweenComponent](em, id),
			} {
				if !has {
					t.Error("player is missing a status component")
				}
			}

			control, _ := ecs.GetComponent[*components.ControlComponent](em, id)
			if control.Bot != tt.spec.Bot {
				t.Errorf("Bot = %v, want %v", control.Bot, tt.spec.Bot)
			}
			if control.EnablePickup != tt.spec.EnablePickup {
				t.Errorf("EnablePickup = %v, want %v", control.EnablePickup, tt.spec.EnablePickup)
			}
		})
	}
}

// TestNewBombEntity_Defaults 测试炸弹参数默认值
func TestNewBombEntity_Defaults(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultModeConfig()

	id := NewBombEntity(em, &cfg.Bomb, BombSpec{Owner: 5, SourcePlayer: 5})
	bomb, ok := ecs.GetComponent[*components.BombComponent](em, id)
	if !ok {
		t.Fatal("bomb should have BombComponent")
	}
	if bomb.BombType != "ice" {
		t.Errorf("BombType = %q, want ice", bomb.BombType)
	}
	if bomb.BlastRadius != cfg.Bomb.BlastRadius {
		t.Errorf("BlastRadius = %v, want %v", bomb.BlastRadius, cfg.Bomb.BlastRadius)
	}
	if bomb.HitType != "explosion" || bomb.HitSubtype != "ice" {
		t.Errorf("hit type = %q/%q, want explosion/ice", bomb.HitType, bomb.HitSubtype)
	}
	if bomb.Exploded() {
		t.Error("new bomb should not be exploded")
	}
}

// TestNewBlastEntity 测试爆炸区域
func TestNewBlastEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewBlastEntity(em, BlastSpec{
		Position:  utils.Vec3{X: 1, Y: 2, Z: 3},
		Radius:    2,
		BlastType: "ice",
		HitType:   "explosion",
	})

	region, ok := ecs.GetComponent[*components.RegionComponent](em, id)
	if !ok {
		t.Fatal("blast should carry a collision region")
	}
	if region.Kind != components.RegionBlast || region.Radius != 2 || region.OffsetY != -0.1 {
		t.Errorf("unexpected region: %+v", region)
	}
	if !region.Accepts(&components.ColliderComponent{Materials: []string{components.MaterialBomb}}) {
		t.Error("blast region should hit bombs")
	}
}

// TestNewScorchEntity 测试焦痕淡出曲线
func TestNewScorchEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewScorchEntity(em, utils.Vec3{}, 2, true, 3, 13)

	scorch, _ := ecs.GetComponent[*components.ScorchComponent](em, id)
	if scorch.Presence != 1 {
		t.Errorf("scorch should start fully visible, got %v", scorch.Presence)
	}
	if math.Abs(scorch.Size-2*1.15*0.5) > 1e-9 {
		t.Errorf("big scorch size = %v, want %v", scorch.Size, 2*1.15*0.5)
	}

	tween, _ := ecs.GetComponent[*components.TweenComponent](em, id)
	track := tween.Tracks[0]
	if v := track.ValueAt(8); math.Abs(v-0.5) > 1e-9 {
		t.Errorf("presence at 8s = %v, want 0.5", v)
	}

	life, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if life.MaxLifetime != 13 {
		t.Errorf("MaxLifetime = %v, want 13", life.MaxLifetime)
	}
}

// TestNewPowerEntity 测试能量拾取物初始位置
func TestNewPowerEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultModeConfig()
	base := utils.Vec3{X: 0.5, Y: 1, Z: -2}

	id := NewPowerEntity(em, &cfg.Power, base, 7, 0.5)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.Y != 8 {
		t.Errorf("pickup should start at base+maxHeight, got y=%v", pos.Y)
	}
	power, _ := ecs.GetComponent[*components.PowerComponent](em, id)
	if power.Base != base || power.MeshScale != 0.5 {
		t.Errorf("unexpected power component: %+v", power)
	}
	if power.Touched() {
		t.Error("new pickup should not be touched")
	}
}

package game

import (
	"fmt"
	"sort"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// SpriteKind 画面元素种类
type SpriteKind int

const (
	SpriteScorch SpriteKind = iota
	SpriteLight
	SpriteBox
	SpritePower
	SpriteBomb
	SpriteBlast
	SpritePlayer
)

// Sprite 一个需要绘制的元素，与具体渲染方式无关
type Sprite struct {
	Kind   SpriteKind
	ID     ecs.EntityID
	Pos    utils.Vec3
	Radius float64
	Color  components.Color
	Alpha  float64
	Label  string

	// 玩家状态
	Frozen   bool
	Buffed   bool
	Dead     bool
	Shielded bool
	Health   float64 // 0 ~ 1
}

// View 某一时刻的画面快照，供窗口与终端观战共用
type View struct {
	Now        float64
	TimeLeft   float64 // 无时间限制时为 -1
	Bounds     config.Bounds
	Tint       components.Color
	Sprites    []Sprite // 按 Kind 从底到顶排序
	Standings  []*Team
	ScoreToWin int
	Ended      bool
	Winner     *Team
}

// Snapshot 收集当前画面
func (g *IceDeathMatch) Snapshot() View {
	em := g.EM
	v := View{
		Now:        g.Now(),
		TimeLeft:   -1,
		Bounds:     g.MapInfo.MapBounds(),
		Tint:       g.Tint,
		Standings:  g.Standings(),
		ScoreToWin: g.ScoreToWin,
		Ended:      g.Ended,
		Winner:     g.Winner,
	}
	if t := g.timeLimit.Timer(); t != nil && t.Active() {
		v.TimeLeft = t.Due() - g.Now()
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ScorchComponent, *components.PositionComponent](em) {
		scorch, _ := ecs.GetComponent[*components.ScorchComponent](em, id)
		v.Sprites = append(v.Sprites, Sprite{
			Kind: SpriteScorch, ID: id, Pos: posOf(em, id),
			Radius: scorch.Size, Color: scorch.Color, Alpha: scorch.Presence,
		})
	}
	for _, id := range ecs.GetEntitiesWith2[*components.LightComponent, *components.PositionComponent](em) {
		light, _ := ecs.GetComponent[*components.LightComponent](em, id)
		if light.Intensity <= 0 {
			continue
		}
		v.Sprites = append(v.Sprites, Sprite{
			Kind: SpriteLight, ID: id, Pos: posOf(em, id),
			Radius: light.Radius, Color: light.Color, Alpha: utils.Clamp(light.Intensity, 0, 1),
		})
	}
	for _, id := range ecs.GetEntitiesWith1[*components.PowerupBoxComponent](em) {
		box, _ := ecs.GetComponent[*components.PowerupBoxComponent](em, id)
		v.Sprites = append(v.Sprites, Sprite{
			Kind: SpriteBox, ID: id, Pos: posOf(em, id), Radius: 0.35,
			Color: components.Color{1, 0.8, 0.2}, Alpha: 1, Label: box.Type,
		})
	}
	for _, id := range ecs.GetEntitiesWith1[*components.PowerComponent](em) {
		power, _ := ecs.GetComponent[*components.PowerComponent](em, id)
		v.Sprites = append(v.Sprites, Sprite{
			Kind: SpritePower, ID: id, Pos: posOf(em, id),
			Radius: 0.5 * power.Scale, Color: components.Color{0.4, 0.9, 1.0}, Alpha: 1,
			Label: fmt.Sprintf("%d", power.Ticks),
		})
	}
	for _, id := range ecs.GetEntitiesWith1[*components.BombComponent](em) {
		bomb, _ := ecs.GetComponent[*components.BombComponent](em, id)
		color := components.Color{0.5, 0.8, 1.0}
		if bomb.BombType == "land_mine" {
			color = components.Color{0.3, 0.6, 0.3}
		}
		v.Sprites = append(v.Sprites, Sprite{
			Kind: SpriteBomb, ID: id, Pos: posOf(em, id), Radius: 0.3, Color: color, Alpha: 1,
			Label: bomb.BombType,
		})
	}
	for _, id := range ecs.GetEntitiesWith1[*components.BlastComponent](em) {
		blast, _ := ecs.GetComponent[*components.BlastComponent](em, id)
		v.Sprites = append(v.Sprites, Sprite{
			Kind: SpriteBlast, ID: id, Pos: posOf(em, id), Radius: blast.Radius,
			Color: components.Color{0.7, 0.9, 1.0}, Alpha: 0.6,
		})
	}
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerComponent](em) {
		v.Sprites = append(v.Sprites, playerSprite(em, id))
	}

	sort.SliceStable(v.Sprites, func(i, j int) bool { return v.Sprites[i].Kind < v.Sprites[j].Kind })
	return v
}

func playerSprite(em *ecs.EntityManager, id ecs.EntityID) Sprite {
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	look, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)
	s := Sprite{
		Kind: SpritePlayer, ID: id, Pos: posOf(em, id), Radius: 0.4,
		Color: look.Color, Alpha: 1, Label: player.Name,
		Shielded: player.Shielded(),
	}
	if frz, ok := ecs.GetComponent[*components.FreezeComponent](em, id); ok {
		s.Frozen = frz.Frozen
	}
	if ice, ok := ecs.GetComponent[*components.IcePowerComponent](em, id); ok {
		s.Buffed = ice.Active
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
		s.Dead = health.Dead
		if health.MaxHealth > 0 {
			s.Health = utils.Clamp(float64(health.CurrentHealth)/float64(health.MaxHealth), 0, 1)
		}
	}
	return s
}

func posOf(em *ecs.EntityManager, id ecs.EntityID) utils.Vec3 {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		return pos.Vec()
	}
	return utils.Vec3{}
}

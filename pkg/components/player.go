package components

import (
	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/ecs"
)

// Color RGB 颜色，分量可以大于 1（高亮）
type Color [3]float64

// Appearance 玩家外观，超级冰能量期间会被替换再恢复
type Appearance struct {
	Color            Color
	Highlight        Color
	ColorTexture     string
	ColorMaskTexture string
}

// PlayerComponent 玩家角色的身份与战斗属性
type PlayerComponent struct {
	PlayerID int // 会话中的玩家编号
	TeamID   int
	Name     string

	BombType      string
	BombCount     int // 当前可投放的炸弹数
	LandMineCount int
	BlastRadius   float64
	ImpactScale   float64 // 受到冲击时的伤害/击退倍率

	Invincible      bool
	ShieldHitpoints int // 大于 0 表示护盾存在

	// LastAttacker 最后一次造成伤害的玩家实体，用于击杀归属
	LastAttacker ecs.EntityID

	// TripleBombs 三连炸弹能量的到期计时器
	TripleBombs clock.Slot

	Timers clock.Group
}

// Shielded 是否有护盾
func (p *PlayerComponent) Shielded() bool {
	return p.ShieldHitpoints > 0
}

// AppearanceComponent 当前外观与名字颜色
type AppearanceComponent struct {
	Appearance
	NameColor Color
}

// MovementComponent 玩家移动参数与输入
type MovementComponent struct {
	Speed    float64
	Friction float64

	// Hockey 冰球模式：移动更快、摩擦更小
	Hockey          bool
	RollerMaterials []string

	// 本帧的移动输入，范围 [-1, 1]
	MoveX, MoveZ float64
	Facing       float64 // 朝向角（度）
}

// HasRollerMaterial 滚轮上是否带有指定材质
func (m *MovementComponent) HasRollerMaterial(name string) bool {
	for _, r := range m.RollerMaterials {
		if r == name {
			return true
		}
	}
	return false
}

// ControlComponent 玩家操作开关
type ControlComponent struct {
	// 本玩法没有抓取动作，只把设置原样带给宿主
	EnablePickup bool
	EnablePunch  bool
	EnableBomb   bool
	Bot          bool

	// 投弹/出拳请求，由输入或 AI 写入，移动系统消费后清零
	WantBomb  bool
	WantPunch bool
}

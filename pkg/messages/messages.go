// Package messages 定义实体之间传递的消息
//
// 消息种类是封闭集合：每种消息是一个具体的载荷类型，
// 处理方用 type switch 分派，未识别的种类交给基础处理逻辑。
package messages

import (
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// Kind 消息种类
type Kind int

const (
	// KindHit 冲击/伤害
	KindHit Kind = iota
	// KindFreeze 冰冻
	KindFreeze
	// KindThaw 解冻
	KindThaw
	// KindPowerup 获得能量
	KindPowerup
	// KindDie 死亡/移除
	KindDie
	// KindOutOfBounds 离开地图边界
	KindOutOfBounds
	// KindTouched 道具被玩家触碰
	KindTouched
	// KindExplodeHit 爆炸区域接触到实体
	KindExplodeHit
	// KindStand 将玩家放置到指定位置
	KindStand
	// KindBombDied 玩家投下的炸弹已消失，归还炸弹数
	KindBombDied
)

// String 返回消息种类名称（用于日志）
func (k Kind) String() string {
	switch k {
	case KindHit:
		return "hit"
	case KindFreeze:
		return "freeze"
	case KindThaw:
		return "thaw"
	case KindPowerup:
		return "powerup"
	case KindDie:
		return "die"
	case KindOutOfBounds:
		return "out_of_bounds"
	case KindTouched:
		return "touched"
	case KindExplodeHit:
		return "explode_hit"
	case KindStand:
		return "stand"
	case KindBombDied:
		return "bomb_died"
	default:
		return "unknown"
	}
}

// Message 所有消息的公共接口
type Message interface {
	Kind() Kind
}

// HitMessage 对实体施加冲击
type HitMessage struct {
	Pos          utils.Vec3 // 冲击源位置
	Velocity     utils.Vec3 // 冲击源速度
	Magnitude    float64    // 冲击强度
	Radius       float64    // 冲击半径（用于距离衰减）
	HitType      string     // 如 "explosion"、"punch"
	HitSubtype   string     // 如 "ice"、"normal"
	SourcePlayer ecs.EntityID
}

// FreezeMessage 冰冻实体
type FreezeMessage struct{}

// ThawMessage 解冻实体
type ThawMessage struct{}

// PowerupMessage 授予能量
type PowerupMessage struct {
	Type   string // "super_ice"、"health"、"shield"、"triple_bombs"、"land_mines"
	Source ecs.EntityID
}

// DeathType 死亡原因
type DeathType int

const (
	// DeathGeneric 一般死亡
	DeathGeneric DeathType = iota
	// DeathImpact 被冲击致死
	DeathImpact
	// DeathFall 掉出地图
	DeathFall
	// DeathLeftGame 玩家离开
	DeathLeftGame
)

func (d DeathType) String() string {
	switch d {
	case DeathGeneric:
		return "generic"
	case DeathImpact:
		return "impact"
	case DeathFall:
		return "fall"
	case DeathLeftGame:
		return "left_game"
	default:
		return "unknown"
	}
}

// DieMessage 请求实体死亡/移除
type DieMessage struct {
	Immediate bool
	How       DeathType
}

// OutOfBoundsMessage 实体离开地图边界
type OutOfBoundsMessage struct{}

// TouchedMessage 道具被玩家碰到
type TouchedMessage struct {
	Toucher ecs.EntityID
}

// ExplodeHitMessage 爆炸区域接触到实体
type ExplodeHitMessage struct {
	Opposing ecs.EntityID
}

// StandMessage 把玩家放到指定位置和朝向
type StandMessage struct {
	Pos   utils.Vec3
	Angle float64
}

// BombDiedMessage 玩家的炸弹已消失
type BombDiedMessage struct{}

func (HitMessage) Kind() Kind         { return KindHit }
func (FreezeMessage) Kind() Kind      { return KindFreeze }
func (ThawMessage) Kind() Kind        { return KindThaw }
func (PowerupMessage) Kind() Kind     { return KindPowerup }
func (DieMessage) Kind() Kind         { return KindDie }
func (OutOfBoundsMessage) Kind() Kind { return KindOutOfBounds }
func (TouchedMessage) Kind() Kind     { return KindTouched }
func (ExplodeHitMessage) Kind() Kind  { return KindExplodeHit }
func (StandMessage) Kind() Kind       { return KindStand }
func (BombDiedMessage) Kind() Kind    { return KindBombDied }

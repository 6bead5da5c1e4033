package components

// ActorKind 实体种类，消息路由按种类把消息交给对应的处理系统
type ActorKind int

const (
	ActorUnknown ActorKind = iota
	ActorPlayer
	ActorBomb
	ActorBlast
	ActorPowerPickup
	ActorPowerupBox
)

func (k ActorKind) String() string {
	switch k {
	case ActorPlayer:
		return "player"
	case ActorBomb:
		return "bomb"
	case ActorBlast:
		return "blast"
	case ActorPowerPickup:
		return "power"
	case ActorPowerupBox:
		return "powerup_box"
	default:
		return "unknown"
	}
}

// ActorComponent 标记实体参与消息路由
type ActorComponent struct {
	Kind ActorKind
}

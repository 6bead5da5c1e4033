package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

// Verbose 打开逐帧的调试日志（工具程序使用）
var Verbose = false

func debugf(format string, args ...any) {
	if Verbose {
		log.Printf(format, args...)
	}
}

// Scheduler 延迟回调能力
type Scheduler interface {
	Now() float64
	After(delay float64, fn func()) *clock.Timer
	Every(interval float64, fn func()) *clock.Timer
}

// Messenger 消息投递能力
type Messenger interface {
	Send(target ecs.EntityID, msg messages.Message)
}

// Handler 某一类实体的消息处理者
type Handler interface {
	HandleMessage(id ecs.EntityID, msg messages.Message)
}

// Services 系统共享的宿主服务
//
// 所有系统都通过这里拿到实体存储、计时器、消息投递和特效输出，
// 不依赖任何全局单例，测试时可以逐项替换。
type Services struct {
	EM     *ecs.EntityManager
	Clock  Scheduler
	Router Messenger
	FX     fx.Sink
	Config *config.ModeConfig
	Rand   *rand.Rand
}

// NewServices 创建一组默认服务，消息路由绑定到 em
// sink 为 nil 时丢弃所有特效，cfg 为 nil 时使用内置调参
func NewServices(em *ecs.EntityManager, sched Scheduler, sink fx.Sink, cfg *config.ModeConfig, seed int64) *Services {
	if sink == nil {
		sink = fx.Discard{}
	}
	if cfg == nil {
		cfg = config.DefaultModeConfig()
	}
	return &Services{
		EM:     em,
		Clock:  sched,
		Router: NewMessageRouter(em),
		FX:     sink,
		Config: cfg,
		Rand:   rand.New(rand.NewSource(seed)),
	}
}

// MessageRouter 返回默认的消息路由（Router 被替换时返回 nil）
func (s *Services) MessageRouter() *MessageRouter {
	r, _ := s.Router.(*MessageRouter)
	return r
}

// sendAfter 延迟投递消息；目标届时已被移除则静默丢弃
func (s *Services) sendAfter(delay float64, target ecs.EntityID, msg messages.Message) *clock.Timer {
	return s.Clock.After(delay, func() {
		s.Router.Send(target, msg)
	})
}

// positionOf 返回实体位置，没有位置组件时返回原点
func positionOf(em *ecs.EntityManager, id ecs.EntityID) utils.Vec3 {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		return pos.Vec()
	}
	return utils.Vec3{}
}

// fxSound 构造一个在实体位置播放的音效
func fxSound(name string, volume float64, em *ecs.EntityManager, id ecs.EntityID) fx.Sound {
	return fx.Sound{Name: name, Volume: volume, Position: positionOf(em, id)}
}

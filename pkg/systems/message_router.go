package systems

import (
	"log"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/messages"
)

// MessageRouter 按实体种类把消息投递给对应的系统
//
// 目标实体已经不存在（或已标记删除）时消息被丢弃，
// 因此处理函数总能假设实体在处理开始时仍然存在。
type MessageRouter struct {
	em       *ecs.EntityManager
	handlers map[components.ActorKind]Handler

	// Observers 在消息投递之后被调用（时间线记录、调试）
	Observers []func(target ecs.EntityID, msg messages.Message)
}

// NewMessageRouter 创建消息路由
func NewMessageRouter(em *ecs.EntityManager) *MessageRouter {
	return &MessageRouter{
		em:       em,
		handlers: make(map[components.ActorKind]Handler),
	}
}

// Register 注册某一类实体的处理者，重复注册会覆盖
func (r *MessageRouter) Register(kind components.ActorKind, h Handler) {
	r.handlers[kind] = h
}

// Send 立即投递消息
func (r *MessageRouter) Send(target ecs.EntityID, msg messages.Message) {
	if !r.em.Exists(target) {
		debugf("[MessageRouter] Dropped %s for missing entity %d", msg.Kind(), target)
		return
	}
	actor, ok := ecs.GetComponent[*components.ActorComponent](r.em, target)
	if !ok {
		debugf("[MessageRouter] Entity %d has no actor, dropped %s", target, msg.Kind())
		return
	}
	h, ok := r.handlers[actor.Kind]
	if !ok {
		log.Printf("[MessageRouter] Warning: no handler for %s (message %s)", actor.Kind, msg.Kind())
		return
	}
	h.HandleMessage(target, msg)

	for _, observe := range r.Observers {
		observe(target, msg)
	}
}

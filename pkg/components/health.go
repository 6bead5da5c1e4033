package components

// HealthComponent 存储实体的生命值信息
// 用于玩家这类可被击伤的实体
type HealthComponent struct {
	CurrentHealth int  // 当前生命值
	MaxHealth     int  // 最大生命值
	Dead          bool // 是否已经死亡（尸体仍会短暂留在场上）
}

// Heal 回满生命值
func (h *HealthComponent) Heal() {
	h.CurrentHealth = h.MaxHealth
}

package components

import "github.com/gonewx/icedm/pkg/ecs"

// BlastComponent 一次爆炸
type BlastComponent struct {
	BlastType    string
	Radius       float64
	SourcePlayer ecs.EntityID
	HitType      string
	HitSubtype   string

	// Struck 已经处理过的被击中实体，保证每个实体最多一次"冲击+冰冻"
	Struck map[ecs.EntityID]bool
}

// Strike 记录一次命中，已经命中过的实体返回 false
func (b *BlastComponent) Strike(id ecs.EntityID) bool {
	if b.Struck == nil {
		b.Struck = make(map[ecs.EntityID]bool)
	}
	if b.Struck[id] {
		return false
	}
	b.Struck[id] = true
	return true
}

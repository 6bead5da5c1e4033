package components

import "github.com/gonewx/icedm/pkg/ecs"

// LightComponent 点光源
type LightComponent struct {
	Color     Color
	Intensity float64
	Radius    float64

	// Follow 非零时光源跟随该实体移动
	Follow ecs.EntityID
}

// ScorchComponent 爆炸留下的焦痕
type ScorchComponent struct {
	Color    Color
	Size     float64
	Big      bool
	Presence float64 // 1 完全可见，0 消失
}

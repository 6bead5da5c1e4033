package components

import "github.com/gonewx/icedm/pkg/clock"

// FreezeComponent 冰冻状态
//
// 冰冻只能由计划好的自动解冻（或装备超级冰能量时的强制解冻）解除，
// Thaw 槽位保证同一时刻最多只有一个解冻计时器。
type FreezeComponent struct {
	Frozen    bool
	Shattered bool
	Thaw      clock.Slot
}

// IcePowerComponent 超级冰能量（IceBuffed）状态
//
// Expiry/Flash/Flicker/Efx 四个槽位各自最多持有一个计时器，
// 重复拾取时替换计时器从而把持续时间重置为完整时长，而不是叠加。
type IcePowerComponent struct {
	Active bool

	OldImpactScale float64
	OldAppearance  Appearance
	Custom         bool // 当前是否穿着冰能量外观（闪烁时来回切换）

	Expiry  clock.Slot
	Flash   clock.Slot
	Flicker clock.Slot
	Efx     clock.Slot

	// 冰光源参数，由补间动画驱动
	LightIntensity float64
	LightRadius    float64
}

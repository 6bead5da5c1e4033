package components

// 碰撞材质
//
// 区域（RegionComponent）只和带有指定材质的碰撞体（ColliderComponent）产生接触通知。
const (
	MaterialPlayer = "player"
	MaterialBomb   = "bomb"
	MaterialHockey = "hockey" // 超级冰能量期间附加在玩家滚轮上的低摩擦材质
)

// RegionKind 区域接触时发出的通知种类
type RegionKind int

const (
	// RegionBlast 爆炸区域：发送 ExplodeHitMessage
	RegionBlast RegionKind = iota
	// RegionPickup 拾取区域：发送 TouchedMessage
	RegionPickup
)

// RegionComponent 球形碰撞区域
//
// 区域本身不产生物理响应，只在每帧检测到与碰撞体重叠时通知区域所属实体。
// 同一对象可能在连续几帧内被重复通知，接收方需要自行去重。
type RegionComponent struct {
	Kind    RegionKind
	Radius  float64
	OffsetY float64  // 区域中心相对实体位置的 Y 偏移
	Targets []string // 接受的碰撞体材质
}

// Accepts 判断区域是否接受某个碰撞体
func (r *RegionComponent) Accepts(c *ColliderComponent) bool {
	for _, want := range r.Targets {
		for _, have := range c.Materials {
			if want == have {
				return true
			}
		}
	}
	return false
}

// ColliderComponent 实体的球形碰撞体
type ColliderComponent struct {
	Radius    float64
	Materials []string
}

// HasMaterial 碰撞体是否带有指定材质
func (c *ColliderComponent) HasMaterial(name string) bool {
	for _, m := range c.Materials {
		if m == name {
			return true
		}
	}
	return false
}

// RemoveMaterial 移除一个材质（只移除第一个匹配项）
func (c *ColliderComponent) RemoveMaterial(name string) {
	for i, m := range c.Materials {
		if m == name {
			c.Materials = append(c.Materials[:i], c.Materials[i+1:]...)
			return
		}
	}
}

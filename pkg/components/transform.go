package components

import "github.com/gonewx/icedm/pkg/utils"

// PositionComponent 实体在世界中的位置（米，Y 轴向上）
type PositionComponent struct {
	X, Y, Z float64
}

// Vec 以向量形式返回位置
func (p *PositionComponent) Vec() utils.Vec3 {
	return utils.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Set 用向量设置位置
func (p *PositionComponent) Set(v utils.Vec3) {
	p.X, p.Y, p.Z = v.X, v.Y, v.Z
}

// VelocityComponent 实体速度（米/秒）
type VelocityComponent struct {
	VX, VY, VZ float64
}

// Vec 以向量形式返回速度
func (v *VelocityComponent) Vec() utils.Vec3 {
	return utils.Vec3{X: v.VX, Y: v.VY, Z: v.VZ}
}

// Set 用向量设置速度
func (v *VelocityComponent) Set(vec utils.Vec3) {
	v.VX, v.VY, v.VZ = vec.X, vec.Y, vec.Z
}

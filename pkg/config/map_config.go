package config

import (
	"fmt"
	"math"

	"github.com/gonewx/icedm/pkg/embedded"
	"github.com/gonewx/icedm/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultMapConfigPath 默认地图表路径
const DefaultMapConfigPath = "data/maps.yaml"

// defaultBoundsExtent 地图未声明边界时，以能量点为中心的水平半宽
const defaultBoundsExtent = 12.0

// defaultSpawnRing 地图未声明出生点时，出生点环绕能量点的半径
const defaultSpawnRing = 4.0

// Bounds 地图的轴对齐边界
type Bounds struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

// Contains 判断点是否在边界内
func (b Bounds) Contains(p utils.Vec3) bool {
	return p.X >= b.Min[0] && p.X <= b.Max[0] &&
		p.Y >= b.Min[1] && p.Y <= b.Max[1] &&
		p.Z >= b.Min[2] && p.Z <= b.Max[2]
}

// MapInfo 单张地图的配置
type MapInfo struct {
	Name           string       `yaml:"name"`
	PowerPosition  [3]float64   `yaml:"powerPosition"`  // 能量道具的固定出现位置
	MaxPowerHeight *float64     `yaml:"maxPowerHeight"` // 能量道具最大漂浮高度（为空时使用默认值）
	FFASpawns      [][3]float64 `yaml:"ffaSpawns"`      // 自由混战出生点
	TeamSpawns     [][3]float64 `yaml:"teamSpawns"`     // 组队模式出生点（按队伍ID索引）
	Bounds         *Bounds      `yaml:"bounds"`
	Hockey         bool         `yaml:"hockey"` // 冰面地图：玩家滑行
}

// MapTable 地图配置表
type MapTable struct {
	Maps []MapInfo `yaml:"maps"`

	byName map[string]*MapInfo
}

// LoadMapTable 从 YAML 文件加载地图表
func LoadMapTable(filepath string) (*MapTable, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map table %s: %w", filepath, err)
	}

	table, err := ParseMapTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid map table in %s: %w", filepath, err)
	}
	return table, nil
}

// ParseMapTable 解析 YAML 格式的地图表
func ParseMapTable(data []byte) (*MapTable, error) {
	var table MapTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse map table YAML: %w", err)
	}

	table.byName = make(map[string]*MapInfo, len(table.Maps))
	for i := range table.Maps {
		m := &table.Maps[i]
		if m.Name == "" {
			return nil, fmt.Errorf("map #%d: name is required", i)
		}
		if _, dup := table.byName[m.Name]; dup {
			return nil, fmt.Errorf("map %q declared twice", m.Name)
		}
		if m.MaxPowerHeight != nil && *m.MaxPowerHeight <= 0 {
			return nil, fmt.Errorf("map %q: maxPowerHeight must be positive, got %v", m.Name, *m.MaxPowerHeight)
		}
		table.byName[m.Name] = m
	}
	return &table, nil
}

// Lookup 按名称查找地图
func (t *MapTable) Lookup(name string) (*MapInfo, bool) {
	if t == nil {
		return nil, false
	}
	m, ok := t.byName[name]
	return m, ok
}

// Resolve 返回地图配置；未知地图返回以原点为能量点的默认配置
func (t *MapTable) Resolve(name string) *MapInfo {
	if m, ok := t.Lookup(name); ok {
		return m
	}
	return &MapInfo{Name: name}
}

// PowerPos 能量道具位置
func (m *MapInfo) PowerPos() utils.Vec3 {
	return utils.Vec3{X: m.PowerPosition[0], Y: m.PowerPosition[1], Z: m.PowerPosition[2]}
}

// MaxHeight 返回能量道具最大漂浮高度
func (m *MapInfo) MaxHeight(defaultHeight float64) float64 {
	if m.MaxPowerHeight != nil {
		return *m.MaxPowerHeight
	}
	return defaultHeight
}

// MapBounds 返回地图边界；未声明时以能量点为中心生成
func (m *MapInfo) MapBounds() Bounds {
	if m.Bounds != nil {
		return *m.Bounds
	}
	c := m.PowerPos()
	return Bounds{
		Min: [3]float64{c.X - defaultBoundsExtent, c.Y - 5, c.Z - defaultBoundsExtent},
		Max: [3]float64{c.X + defaultBoundsExtent, c.Y + 30, c.Z + defaultBoundsExtent},
	}
}

// FFASpawnPoints 自由混战出生点；未声明时在能量点周围生成四个点
func (m *MapInfo) FFASpawnPoints() []utils.Vec3 {
	if len(m.FFASpawns) > 0 {
		return toVecs(m.FFASpawns)
	}
	c := m.PowerPos()
	points := make([]utils.Vec3, 0, 4)
	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		points = append(points, utils.Vec3{
			X: c.X + math.Cos(angle)*defaultSpawnRing,
			Y: c.Y,
			Z: c.Z + math.Sin(angle)*defaultSpawnRing,
		})
	}
	return points
}

// TeamSpawnPoint 组队模式出生点
func (m *MapInfo) TeamSpawnPoint(teamID int) utils.Vec3 {
	if len(m.TeamSpawns) > 0 {
		p := m.TeamSpawns[teamID%len(m.TeamSpawns)]
		return utils.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	c := m.PowerPos()
	side := -1.0
	if teamID%2 == 1 {
		side = 1.0
	}
	return utils.Vec3{X: c.X + side*defaultSpawnRing, Y: c.Y, Z: c.Z}
}

func toVecs(points [][3]float64) []utils.Vec3 {
	out := make([]utils.Vec3, 0, len(points))
	for _, p := range points {
		out = append(out, utils.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	return out
}

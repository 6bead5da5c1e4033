package config

import (
	"fmt"

	"github.com/gonewx/icedm/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultModeConfigPath 默认玩法调参文件路径
const DefaultModeConfigPath = "data/ice_deathmatch.yaml"

// BlastConfig 爆炸参数
type BlastConfig struct {
	BaseMagnitude   float64            `yaml:"baseMagnitude"`   // 冲击基准强度
	MagnitudeScale  map[string]float64 `yaml:"magnitudeScale"`  // 各炸弹类型的强度倍率
	RegionLifetime  float64            `yaml:"regionLifetime"`  // 碰撞区域存在时间（秒）
	ShrapnelDelay   float64            `yaml:"shrapnelDelay"`   // 碎片延迟发射时间（秒）
	ScorchFadeStart float64            `yaml:"scorchFadeStart"` // 焦痕开始淡出的时间（秒）
	ScorchLifetime  float64            `yaml:"scorchLifetime"`  // 焦痕存在时间（秒）
}

// BombConfig 炸弹参数
type BombConfig struct {
	FuseTime    float64 `yaml:"fuseTime"`    // 引信时间（秒）
	BlastRadius float64 `yaml:"blastRadius"` // 默认爆炸半径
	RemoveDelay float64 `yaml:"removeDelay"` // 爆炸后延迟移除时间（秒）
	Radius      float64 `yaml:"radius"`      // 炸弹碰撞半径
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	MaxHealth           int     `yaml:"maxHealth"`
	Radius              float64 `yaml:"radius"`              // 碰撞半径
	Speed               float64 `yaml:"speed"`               // 移动速度（单位/秒）
	HockeySpeedScale    float64 `yaml:"hockeySpeedScale"`    // 冰刀模式速度倍率
	Friction            float64 `yaml:"friction"`            // 每秒速度衰减比例
	HockeyFriction      float64 `yaml:"hockeyFriction"`      // 冰刀模式下的速度衰减比例
	DamageScale         float64 `yaml:"damageScale"`         // 冲击强度到伤害的换算系数
	ImpulseScale        float64 `yaml:"impulseScale"`        // 冲击强度到速度的换算系数
	BombCount           int     `yaml:"bombCount"`           // 默认同时可投炸弹数
	BuffedImpactScale   float64 `yaml:"buffedImpactScale"`   // 超级冰能量期间的受击倍率
	FlickerLead         float64 `yaml:"flickerLead"`         // 能量结束前多少秒开始闪烁
	FlickerInterval     float64 `yaml:"flickerInterval"`     // 闪烁切换间隔
	RespawnTime         float64 `yaml:"respawnTime"`         // 基础复活时间（秒）
	CorpseLifetime      float64 `yaml:"corpseLifetime"`      // 尸体保留时间（秒）
	TripleBombsDuration float64 `yaml:"tripleBombsDuration"` // 三连炸弹持续时间
	LandMinesPerPowerup int     `yaml:"landMinesPerPowerup"` // 每个地雷能量给予的数量
	ShieldHitpoints     int     `yaml:"shieldHitpoints"`     // 护盾耐久
}

// PowerConfig 能量道具参数
type PowerConfig struct {
	MeshScale        float64 `yaml:"meshScale"`
	TouchRadius      float64 `yaml:"touchRadius"`
	DefaultMaxHeight float64 `yaml:"defaultMaxHeight"` // 地图未指定时的最大漂浮高度
	MaxTicks         int     `yaml:"maxTicks"`         // 空闲计数上限（驱动光圈亮度）
	DescendTime      float64 `yaml:"descendTime"`      // 从最高处降落到悬浮位置的时间
	HoverHeight      float64 `yaml:"hoverHeight"`      // 悬浮高度
}

// PowerupDropConfig 标准能量箱掉落参数
type PowerupDropConfig struct {
	Interval float64  `yaml:"interval"`
	Lifetime float64  `yaml:"lifetime"`
	Types    []string `yaml:"types"`
}

// ModeConfig 冰冻死亡竞赛的全部调参
type ModeConfig struct {
	Blast        BlastConfig       `yaml:"blast"`
	Bomb         BombConfig        `yaml:"bomb"`
	Player       PlayerConfig      `yaml:"player"`
	Power        PowerConfig       `yaml:"power"`
	PowerupDrops PowerupDropConfig `yaml:"powerupDrops"`
}

// DefaultModeConfig 返回内置默认调参（与 data/ice_deathmatch.yaml 一致）
func DefaultModeConfig() *ModeConfig {
	return &ModeConfig{
		Blast: BlastConfig{
			BaseMagnitude: 1000,
			MagnitudeScale: map[string]float64{
				"ice":       1.0,
				"land_mine": 2.5,
				"tnt":       2.0,
			},
			RegionLifetime:  0.05,
			ShrapnelDelay:   0.05,
			ScorchFadeStart: 3,
			ScorchLifetime:  13,
		},
		Bomb: BombConfig{
			FuseTime:    3.0,
			BlastRadius: 2.0,
			RemoveDelay: 0.001,
			Radius:      0.3,
		},
		Player: PlayerConfig{
			MaxHealth:           1000,
			Radius:              0.4,
			Speed:               5,
			HockeySpeedScale:    1.6,
			Friction:            0.9,
			HockeyFriction:      0.4,
			DamageScale:         0.45,
			ImpulseScale:        0.006,
			BombCount:           1,
			BuffedImpactScale:   0.2,
			FlickerLead:         1.5,
			FlickerInterval:     0.05,
			RespawnTime:         2.5,
			CorpseLifetime:      2.0,
			TripleBombsDuration: 20,
			LandMinesPerPowerup: 3,
			ShieldHitpoints:     650,
		},
		Power: PowerConfig{
			MeshScale:        0.5,
			TouchRadius:      0.7,
			DefaultMaxHeight: 7,
			MaxTicks:         7,
			DescendTime:      7,
			HoverHeight:      0.6,
		},
		PowerupDrops: PowerupDropConfig{
			Interval: 12,
			Lifetime: 16,
			Types:    []string{"health", "shield", "triple_bombs", "land_mines"},
		},
	}
}

// MagnitudeFor 返回指定炸弹类型的冲击强度
// 未配置倍率的类型按 1.0 处理
func (c *ModeConfig) MagnitudeFor(blastType string) float64 {
	scale, ok := c.Blast.MagnitudeScale[blastType]
	if !ok {
		scale = 1.0
	}
	return c.Blast.BaseMagnitude * scale
}

// LoadModeConfig 从 YAML 文件加载玩法调参
// 参数：
//
//	filepath - 配置文件路径（data/ 前缀优先读取嵌入文件）
//
// 返回：
//
//	*ModeConfig - 解析后的配置对象（缺失字段使用默认值）
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadModeConfig(filepath string) (*ModeConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read mode config file %s: %w", filepath, err)
	}

	cfg, err := ParseModeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid mode config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseModeConfig 解析 YAML 格式的玩法调参
// 在默认值的基础上覆盖，未出现的字段保持默认
func ParseModeConfig(data []byte) (*ModeConfig, error) {
	cfg := DefaultModeConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse mode config YAML: %w", err)
	}
	if err := validateModeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateModeConfig 验证调参的合法性
func validateModeConfig(cfg *ModeConfig) error {
	if cfg.Blast.BaseMagnitude <= 0 {
		return fmt.Errorf("blast.baseMagnitude must be positive, got %v", cfg.Blast.BaseMagnitude)
	}
	for blastType, scale := range cfg.Blast.MagnitudeScale {
		if scale < 0 {
			return fmt.Errorf("blast.magnitudeScale[%s] cannot be negative, got %v", blastType, scale)
		}
	}
	if cfg.Blast.RegionLifetime <= 0 {
		return fmt.Errorf("blast.regionLifetime must be positive, got %v", cfg.Blast.RegionLifetime)
	}
	if cfg.Blast.ScorchFadeStart > cfg.Blast.ScorchLifetime {
		return fmt.Errorf("blast.scorchFadeStart (%v) must not exceed scorchLifetime (%v)",
			cfg.Blast.ScorchFadeStart, cfg.Blast.ScorchLifetime)
	}
	if cfg.Bomb.FuseTime <= 0 {
		return fmt.Errorf("bomb.fuseTime must be positive, got %v", cfg.Bomb.FuseTime)
	}
	if cfg.Bomb.BlastRadius <= 0 {
		return fmt.Errorf("bomb.blastRadius must be positive, got %v", cfg.Bomb.BlastRadius)
	}
	if cfg.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be positive, got %d", cfg.Player.MaxHealth)
	}
	if cfg.Player.BombCount < 1 {
		return fmt.Errorf("player.bombCount must be at least 1, got %d", cfg.Player.BombCount)
	}
	if cfg.Player.FlickerInterval <= 0 {
		return fmt.Errorf("player.flickerInterval must be positive, got %v", cfg.Player.FlickerInterval)
	}
	if cfg.Player.FlickerLead < 0 {
		return fmt.Errorf("player.flickerLead cannot be negative, got %v", cfg.Player.FlickerLead)
	}
	if cfg.Power.MaxTicks < 1 {
		return fmt.Errorf("power.maxTicks must be at least 1, got %d", cfg.Power.MaxTicks)
	}
	if cfg.Power.TouchRadius <= 0 {
		return fmt.Errorf("power.touchRadius must be positive, got %v", cfg.Power.TouchRadius)
	}
	return nil
}

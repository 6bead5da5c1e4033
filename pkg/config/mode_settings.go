package config

import (
	"fmt"
	"math"
)

// SessionType 会话类型，决定可用的设置项
type SessionType int

const (
	// SessionFreeForAll 自由混战
	SessionFreeForAll SessionType = iota
	// SessionDualTeam 双队对战
	SessionDualTeam
)

// SettingKind 设置项类型
type SettingKind int

const (
	// SettingInt 整数范围
	SettingInt SettingKind = iota
	// SettingIntChoice 整数多选一
	SettingIntChoice
	// SettingFloatChoice 浮点多选一
	SettingFloatChoice
	// SettingBool 开关
	SettingBool
)

// 设置项名称（宿主界面显示，也是配置映射的键）
const (
	SettingKillsToWin         = "Kills to Win Per Player"
	SettingFreezeTime         = "Freeze Time"
	SettingIcePowerTime       = "Ice Power Time"
	SettingPowerSpawnInterval = "Power Spawn Interval"
	SettingTimeLimit          = "Time Limit"
	SettingRespawnTimes       = "Respawn Times"
	SettingEnablePickup       = "Enable Pickup"
	SettingEnablePunch        = "Enable Punch"
	SettingEnablePowerups     = "Enable Powerups"
	SettingEpicMode           = "Epic Mode"
	SettingAllowNegative      = "Allow Negative Scores"
)

// Choice 多选一设置的选项
type Choice struct {
	Label string
	Value float64
}

// Setting 声明给宿主的一个设置项
type Setting struct {
	Name      string
	Kind      SettingKind
	Default   any
	MinValue  int
	Increment int
	Choices   []Choice
}

// AvailableSettings 返回本玩法在指定会话类型下的设置声明
// 自由混战额外提供"允许负分"选项
func AvailableSettings(session SessionType) []Setting {
	settings := []Setting{
		{Name: SettingKillsToWin, Kind: SettingInt, Default: 5, MinValue: 1, Increment: 1},
		{Name: SettingFreezeTime, Kind: SettingInt, Default: 5, MinValue: 1, Increment: 1},
		{Name: SettingIcePowerTime, Kind: SettingInt, Default: 10, MinValue: 1, Increment: 1},
		{Name: SettingPowerSpawnInterval, Kind: SettingInt, Default: 10, MinValue: 1, Increment: 1},
		{
			Name: SettingTimeLimit, Kind: SettingIntChoice, Default: 0,
			Choices: []Choice{
				{"None", 0},
				{"1 Minute", 60},
				{"2 Minutes", 120},
				{"5 Minutes", 300},
				{"10 Minutes", 600},
				{"20 Minutes", 1200},
			},
		},
		{
			Name: SettingRespawnTimes, Kind: SettingFloatChoice, Default: 1.0,
			Choices: []Choice{
				{"Shorter", 0.25},
				{"Short", 0.5},
				{"Normal", 1.0},
				{"Long", 2.0},
				{"Longer", 4.0},
			},
		},
		{Name: SettingEnablePickup, Kind: SettingBool, Default: false},
		{Name: SettingEnablePunch, Kind: SettingBool, Default: false},
		{Name: SettingEnablePowerups, Kind: SettingBool, Default: false},
		{Name: SettingEpicMode, Kind: SettingBool, Default: false},
	}

	// 自由混战中自杀会扣自己的分，默认不低于零；老手可以选择允许负分
	if session == SessionFreeForAll {
		settings = append(settings, Setting{Name: SettingAllowNegative, Kind: SettingBool, Default: false})
	}
	return settings
}

// ModeSettings 解码后的玩法设置
type ModeSettings struct {
	KillsToWinPerPlayer int     `yaml:"killsToWinPerPlayer"`
	FreezeTime          int     `yaml:"freezeTime"`         // 冰冻持续时间（秒）
	IcePowerTime        int     `yaml:"icePowerTime"`       // 超级冰能量持续时间（秒）
	PowerSpawnInterval  int     `yaml:"powerSpawnInterval"` // 能量道具出现间隔（秒）
	TimeLimit           int     `yaml:"timeLimit"`          // 时间限制（秒），0 为不限
	RespawnTimes        float64 `yaml:"respawnTimes"`       // 复活时间倍率
	EnablePickup        bool    `yaml:"enablePickup"`
	EnablePunch         bool    `yaml:"enablePunch"`
	EnablePowerups      bool    `yaml:"enablePowerups"`
	EpicMode            bool    `yaml:"epicMode"`
	AllowNegativeScores bool    `yaml:"allowNegativeScores"`
}

// DefaultModeSettings 返回所有设置项的默认值
func DefaultModeSettings() *ModeSettings {
	s, _ := DecodeModeSettings(nil, SessionFreeForAll)
	return s
}

// DecodeModeSettings 把宿主传回的配置映射解码为 ModeSettings
//
// 缺失的键使用声明的默认值；类型不符、低于最小值或不在选项中的值返回错误。
// 不属于当前会话类型的键被忽略。
func DecodeModeSettings(values map[string]any, session SessionType) (*ModeSettings, error) {
	s := &ModeSettings{}
	for _, decl := range AvailableSettings(session) {
		raw, ok := values[decl.Name]
		if !ok {
			raw = decl.Default
		}
		if err := assignSetting(s, decl, raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ToMap 把设置编码回配置映射（用于持久化和回传给宿主）
func (s *ModeSettings) ToMap() map[string]any {
	return map[string]any{
		SettingKillsToWin:         s.KillsToWinPerPlayer,
		SettingFreezeTime:         s.FreezeTime,
		SettingIcePowerTime:       s.IcePowerTime,
		SettingPowerSpawnInterval: s.PowerSpawnInterval,
		SettingTimeLimit:          s.TimeLimit,
		SettingRespawnTimes:       s.RespawnTimes,
		SettingEnablePickup:       s.EnablePickup,
		SettingEnablePunch:        s.EnablePunch,
		SettingEnablePowerups:     s.EnablePowerups,
		SettingEpicMode:           s.EpicMode,
		SettingAllowNegative:      s.AllowNegativeScores,
	}
}

func assignSetting(s *ModeSettings, decl Setting, raw any) error {
	switch decl.Kind {
	case SettingInt, SettingIntChoice:
		v, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("setting %q: %w", decl.Name, err)
		}
		if decl.Kind == SettingInt && v < decl.MinValue {
			return fmt.Errorf("setting %q: value %d is below minimum %d", decl.Name, v, decl.MinValue)
		}
		if decl.Kind == SettingIntChoice && !hasChoice(decl.Choices, float64(v)) {
			return fmt.Errorf("setting %q: %d is not one of the allowed choices", decl.Name, v)
		}
		switch decl.Name {
		case SettingKillsToWin:
			s.KillsToWinPerPlayer = v
		case SettingFreezeTime:
			s.FreezeTime = v
		case SettingIcePowerTime:
			s.IcePowerTime = v
		case SettingPowerSpawnInterval:
			s.PowerSpawnInterval = v
		case SettingTimeLimit:
			s.TimeLimit = v
		}

	case SettingFloatChoice:
		v, err := asFloat(raw)
		if err != nil {
			return fmt.Errorf("setting %q: %w", decl.Name, err)
		}
		if !hasChoice(decl.Choices, v) {
			return fmt.Errorf("setting %q: %v is not one of the allowed choices", decl.Name, v)
		}
		if decl.Name == SettingRespawnTimes {
			s.RespawnTimes = v
		}

	case SettingBool:
		v, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("setting %q: expected bool, got %T", decl.Name, raw)
		}
		switch decl.Name {
		case SettingEnablePickup:
			s.EnablePickup = v
		case SettingEnablePunch:
			s.EnablePunch = v
		case SettingEnablePowerups:
			s.EnablePowerups = v
		case SettingEpicMode:
			s.EpicMode = v
		case SettingAllowNegative:
			s.AllowNegativeScores = v
		}
	}
	return nil
}

func hasChoice(choices []Choice, v float64) bool {
	for _, c := range choices {
		if math.Abs(c.Value-v) < 1e-9 {
			return true
		}
	}
	return false
}

// asInt 接受整数或整值浮点数（YAML/JSON 解码后的数字可能是 float64）
func asInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func asFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}

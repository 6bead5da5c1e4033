package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadModeConfigFromDataDir(t *testing.T) {
	cfg, err := LoadModeConfig(filepath.Join("..", "..", DefaultModeConfigPath))
	if err != nil {
		t.Fatalf("LoadModeConfig failed: %v", err)
	}

	// 数据文件必须与内置默认值一致
	def := DefaultModeConfig()
	if cfg.Blast.BaseMagnitude != def.Blast.BaseMagnitude {
		t.Errorf("baseMagnitude: file %v, default %v", cfg.Blast.BaseMagnitude, def.Blast.BaseMagnitude)
	}
	if cfg.Player.FlickerLead != 1.5 {
		t.Errorf("flickerLead: expected 1.5, got %v", cfg.Player.FlickerLead)
	}
	if cfg.Power.MaxTicks != 7 {
		t.Errorf("maxTicks: expected 7, got %d", cfg.Power.MaxTicks)
	}
}

func TestMagnitudeFor(t *testing.T) {
	cfg := DefaultModeConfig()

	tests := []struct {
		blastType string
		want      float64
	}{
		{"ice", 1000},
		{"land_mine", 2500},
		{"tnt", 2000},
		{"normal", 1000}, // 未配置倍率的类型按 1.0
		{"sticky", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.blastType, func(t *testing.T) {
			if got := cfg.MagnitudeFor(tt.blastType); got != tt.want {
				t.Errorf("MagnitudeFor(%q) = %v, want %v", tt.blastType, got, tt.want)
			}
		})
	}
}

func TestParseModeConfigPartialOverride(t *testing.T) {
	cfg, err := ParseModeConfig([]byte(`
bomb:
  fuseTime: 1.5
player:
  maxHealth: 500
`))
	if err != nil {
		t.Fatalf("ParseModeConfig failed: %v", err)
	}
	if cfg.Bomb.FuseTime != 1.5 {
		t.Errorf("fuseTime: expected 1.5, got %v", cfg.Bomb.FuseTime)
	}
	if cfg.Player.MaxHealth != 500 {
		t.Errorf("maxHealth: expected 500, got %d", cfg.Player.MaxHealth)
	}
	// 未覆盖的字段保持默认
	if cfg.Bomb.BlastRadius != 2.0 {
		t.Errorf("blastRadius should keep default 2.0, got %v", cfg.Bomb.BlastRadius)
	}
}

func TestParseModeConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"负的引信时间", "bomb:\n  fuseTime: -1\n", "fuseTime"},
		{"零血量", "player:\n  maxHealth: 0\n", "maxHealth"},
		{"负的强度倍率", "blast:\n  magnitudeScale:\n    ice: -2\n", "magnitudeScale"},
		{"焦痕淡出晚于消失", "blast:\n  scorchFadeStart: 20\n", "scorchFadeStart"},
		{"非法YAML", "bomb: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModeConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadModeConfigMissingFile(t *testing.T) {
	_, err := LoadModeConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadModeConfigWrapsValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("power:\n  maxTicks: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	_, err := LoadModeConfig(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file, got %v", err)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/gonewx/icedm/pkg/config"
	"gopkg.in/yaml.v3"
)

// 校验 data/ 下的玩法调参与地图表（在项目根目录执行 go run tools/validate_yaml.go）
func main() {
	failed := 0

	modeCfg, err := config.LoadModeConfig(config.DefaultModeConfigPath)
	if err != nil {
		fmt.Printf("❌ 玩法调参加载失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 玩法调参格式正确（炸弹引信 %.1f 秒，玩家生命 %d）\n",
		modeCfg.Bomb.FuseTime, modeCfg.Player.MaxHealth)

	raw, err := os.ReadFile(config.DefaultModeConfigPath)
	if err == nil {
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err == nil && len(node.Content) > 0 {
			fmt.Printf("✅ 顶层配置段数量: %d\n", len(node.Content[0].Content)/2)
		}
	}

	maps, err := config.LoadMapTable(config.DefaultMapConfigPath)
	if err != nil {
		fmt.Printf("❌ 地图表加载失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 地图数量: %d\n", len(maps.Maps))

	for i := range maps.Maps {
		m := &maps.Maps[i]
		bounds := m.MapBounds()
		if !bounds.Contains(m.PowerPos()) {
			fmt.Printf("❌ 地图 %q 的能量点不在边界内\n", m.Name)
			failed++
		}
		for j, p := range m.FFASpawnPoints() {
			if !bounds.Contains(p) {
				fmt.Printf("❌ 地图 %q 的第 %d 个混战出生点不在边界内\n", m.Name, j+1)
				failed++
			}
		}
		for team := range m.TeamSpawns {
			if !bounds.Contains(m.TeamSpawnPoint(team)) {
				fmt.Printf("❌ 地图 %q 的队伍 %d 出生点不在边界内\n", m.Name, team)
				failed++
			}
		}
	}

	if failed == 0 {
		fmt.Printf("✅ 所有地图的能量点与出生点都在边界内\n")
	} else {
		fmt.Printf("❌ 有 %d 处问题\n", failed)
		os.Exit(1)
	}
}

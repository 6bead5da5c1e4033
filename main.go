package main

import (
	"flag"
	"log"

	"github.com/gonewx/icedm/pkg/app"
	"github.com/gonewx/icedm/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	mapName = flag.String("map", "Hockey Stadium", "地图名称")
	bots    = flag.Int("bots", 3, "电脑玩家数量")
	teams   = flag.Bool("teams", false, "双队对战（默认自由混战）")
	seed    = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Map:     *mapName,
		Bots:    *bots,
		Teams:   *teams,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Ice Death Match")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Fullscreen())

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// Package app 提供游戏应用的核心包装器
//
// 该包将比赛的组装逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/game"
	"github.com/gonewx/icedm/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 窗口逻辑尺寸
const (
	WindowWidth  = 960
	WindowHeight = 600
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Map 地图名称，未知地图的能量道具出现在原点
	Map string
	// Bots 电脑玩家数量
	Bots int
	// Teams 双队对战（否则为自由混战）
	Teams bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg      Config
	modeCfg  *config.ModeConfig
	maps     *config.MapTable
	settings *game.SettingsManager
	audio    *game.AudioManager
	camera   *cameraShake

	match *game.IceDeathMatch
	local *game.Player

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	systems.Verbose = cfg.Verbose

	modeCfg, err := config.LoadModeConfig(config.DefaultModeConfigPath)
	if err != nil {
		return nil, fmt.Errorf("玩法配置加载失败: %w", err)
	}
	maps, err := config.LoadMapTable(config.DefaultMapConfigPath)
	if err != nil {
		return nil, fmt.Errorf("地图配置加载失败: %w", err)
	}

	// 设置持久化失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: "icedm"})
	if err != nil {
		log.Printf("[App] Warning: persistent settings unavailable: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)

	audioManager := game.NewAudioManager(audio.NewContext(game.SampleRate), settings)
	audioManager.Preload()
	log.Printf("[App] AudioManager initialized")

	a := &App{
		cfg:      cfg,
		modeCfg:  modeCfg,
		maps:     maps,
		settings: settings,
		audio:    audioManager,
		camera:   &cameraShake{},
		verbose:  cfg.Verbose,
	}
	if err := a.newMatch(); err != nil {
		return nil, err
	}
	return a, nil
}

// newMatch 按当前设置开一局
func (a *App) newMatch() error {
	session := config.SessionFreeForAll
	if a.cfg.Teams {
		session = config.SessionDualTeam
	}
	seed := a.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	match, err := game.NewIceDeathMatch(a.settings.ModeSettingsMap(), game.Options{
		Session: session,
		Config:  a.modeCfg,
		Maps:    a.maps,
		FX:      fx.Multi{a.audio, a.camera},
		Seed:    seed,
	})
	if err != nil {
		return fmt.Errorf("比赛创建失败: %w", err)
	}

	var blue, red *game.Team
	if a.cfg.Teams {
		blue = match.AddTeam("Blue", components.Color{0.2, 0.4, 1.0})
		red = match.AddTeam("Red", components.Color{1.0, 0.25, 0.2})
	}
	local, err := match.AddPlayer("You", false, blue)
	if err != nil {
		return err
	}
	for i := 0; i < a.cfg.Bots; i++ {
		team := blue
		if i%2 == 0 {
			team = red
		}
		if _, err := match.AddPlayer(fmt.Sprintf("Bot %d", i+1), true, team); err != nil {
			return err
		}
	}

	match.OnTransitionIn(a.cfg.Map)
	match.OnBegin()
	a.match, a.local = match, local
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		wasFullscreen := ebiten.IsFullscreen()
		if wasFullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(!wasFullscreen)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}

	if a.match.Ended && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return a.newMatch()
	}

	a.readInput()
	deltaTime := 1.0 / 60.0
	a.match.Update(deltaTime * a.match.TimeScale())
	a.camera.update(deltaTime)
	return nil
}

// readInput 把键盘状态交给本地玩家：方向键/WASD 移动，空格投弹，F 出拳
func (a *App) readInput() {
	id := a.local.Entity
	if id == 0 {
		return
	}
	em := a.match.EM
	move, ok := ecs.GetComponent[*components.MovementComponent](em, id)
	if !ok {
		return
	}
	control, _ := ecs.GetComponent[*components.ControlComponent](em, id)

	move.MoveX, move.MoveZ = 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		move.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		move.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		move.MoveZ--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		move.MoveZ++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		control.WantBomb = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) && control.EnablePunch {
		control.WantPunch = true
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	shakeX, shakeY := a.camera.offset()
	drawView(screen, a.match.Snapshot(), a.local, shakeX, shakeY)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Fullscreen 上次保存的全屏设置
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// arena_tui 在终端里观看电脑玩家之间的冰冻死亡竞赛
//
// 用法（在项目根目录执行，读取 data/ 下的配置）：
//
//	go run ./cmd/arena_tui -bots 5 -map "Hockey Stadium"
//	go run ./cmd/arena_tui -teams -sound
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/icedm/internal/audio"
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/game"
)

var (
	mapName = flag.String("map", "Hockey Stadium", "地图名称")
	bots    = flag.Int("bots", 4, "电脑玩家数量")
	teams   = flag.Bool("teams", false, "双队对战")
	epic    = flag.Bool("epic", false, "史诗模式（慢动作）")
	sound   = flag.Bool("sound", false, "通过系统扬声器播放音效")
	volume  = flag.Float64("volume", 0.6, "音量 0 ~ 1")
	fps     = flag.Int("fps", 30, "刷新率")
	seed    = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	logFile = flag.String("log", "", "调试日志输出文件（终端被占用，默认丢弃）")
)

// spectator 持有终端、比赛与刷新循环
type spectator struct {
	screen  tcell.Screen
	render  *renderer
	sink    fx.Sink
	modeCfg *config.ModeConfig
	maps    *config.MapTable
	match   *game.IceDeathMatch
}

func (s *spectator) newMatch() error {
	session := config.SessionFreeForAll
	if *teams {
		session = config.SessionDualTeam
	}
	matchSeed := *seed
	if matchSeed == 0 {
		matchSeed = time.Now().UnixNano()
	}

	match, err := game.NewIceDeathMatch(map[string]any{
		config.SettingEpicMode:       *epic,
		config.SettingEnablePowerups: true,
		config.SettingEnablePunch:    true,
	}, game.Options{
		Session: session,
		Config:  s.modeCfg,
		Maps:    s.maps,
		FX:      s.sink,
		Seed:    matchSeed,
	})
	if err != nil {
		return err
	}

	var blue, red *game.Team
	if *teams {
		blue = match.AddTeam("Blue", components.Color{0.2, 0.4, 1.0})
		red = match.AddTeam("Red", components.Color{1.0, 0.25, 0.2})
	}
	for i := 0; i < *bots; i++ {
		team := blue
		if i%2 == 1 {
			team = red
		}
		if _, err := match.AddPlayer(fmt.Sprintf("Bot %d", i+1), true, team); err != nil {
			return err
		}
	}
	match.OnTransitionIn(*mapName)
	match.OnBegin()
	s.match = match
	return nil
}

// handleInput 处理按键，返回 false 表示退出
func (s *spectator) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'r', 'R':
				if err := s.newMatch(); err != nil {
					log.Printf("[Spectator] Restart failed: %v", err)
				}
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *spectator) run() {
	frame := time.Second / time.Duration(*fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !s.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !s.match.Ended {
				s.match.Update(dt * s.match.TimeScale())
			}
			s.render.draw(s.match.Snapshot())
		}
	}
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	modeCfg, err := config.LoadModeConfig(config.DefaultModeConfigPath)
	if err != nil {
		log.Printf("[Spectator] Mode config unavailable, using built-in tuning: %v", err)
		modeCfg = nil
	}
	maps, err := config.LoadMapTable(config.DefaultMapConfigPath)
	if err != nil {
		log.Printf("[Spectator] Map table unavailable: %v", err)
		maps = nil
	}

	var sink fx.Sink = fx.Discard{}
	if *sound {
		spk := audio.NewSpeaker(game.SampleRate, game.SoundPCM, *volume)
		if err := spk.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "音频初始化失败，静音运行: %v\n", err)
		} else {
			defer spk.Close()
			sink = spk
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	s := &spectator{
		screen:  screen,
		render:  &renderer{screen: screen},
		sink:    sink,
		modeCfg: modeCfg,
		maps:    maps,
	}
	if err := s.newMatch(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	s.run()
}

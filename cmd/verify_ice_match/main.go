// verify_ice_match 在无窗口的情况下跑一局只有电脑玩家的冰冻死亡竞赛，
// 并把冰冻、解冻、能量、击杀、得分等事件按时间顺序打印出来。
//
// 用法（在项目根目录执行，读取 data/ 下的配置）：
//
//	go run ./cmd/verify_ice_match -bots 4 -duration 90 -seed 7
//	go run ./cmd/verify_ice_match -teams -epic -fx
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/game"
	"github.com/gonewx/icedm/pkg/messages"
)

var (
	verbose   = flag.Bool("verbose", false, "显示系统内部日志")
	showFX    = flag.Bool("fx", false, "同时打印特效请求（音效、镜头震动）")
	mapName   = flag.String("map", "Hockey Stadium", "地图名称")
	bots      = flag.Int("bots", 4, "电脑玩家数量")
	teams     = flag.Bool("teams", false, "双队对战")
	epic      = flag.Bool("epic", false, "史诗模式（慢动作）")
	kills     = flag.Int("kills", 5, "每名玩家的胜利击杀数")
	timeLimit = flag.Int("time-limit", 0, "时间限制（秒），0 为不限")
	powerups  = flag.Bool("powerups", true, "掉落普通道具箱")
	duration  = flag.Float64("duration", 120, "最长模拟时间（秒）")
	step      = flag.Float64("step", 1.0/60, "模拟步长（秒）")
	seed      = flag.Int64("seed", 1, "随机种子")
)

// timeline 按模拟时间打印事件
type timeline struct {
	match *game.IceDeathMatch
	out   io.Writer
}

func (tl *timeline) printf(format string, args ...any) {
	fmt.Fprintf(tl.out, "[%7.3f] %s\n", tl.match.Now(), fmt.Sprintf(format, args...))
}

func (tl *timeline) name(id ecs.EntityID) string {
	if p, ok := tl.match.PlayerFor(id); ok {
		return p.Name
	}
	return fmt.Sprintf("entity %d", id)
}

// observe 记录送达玩家与能量道具的关键消息
func (tl *timeline) observe(target ecs.EntityID, msg messages.Message) {
	switch m := msg.(type) {
	case messages.FreezeMessage:
		if _, ok := tl.match.PlayerFor(target); ok {
			tl.printf("%s freeze requested", tl.name(target))
		}
	case messages.ThawMessage:
		tl.printf("%s thawed", tl.name(target))
	case messages.PowerupMessage:
		tl.printf("%s picked up %s", tl.name(target), m.Type)
	case messages.TouchedMessage:
		tl.printf("%s touched entity %d", tl.name(m.Toucher), target)
	}
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	modeCfg, err := config.LoadModeConfig(config.DefaultModeConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "玩法配置加载失败，使用内置调参: %v\n", err)
		modeCfg = nil
	}
	maps, err := config.LoadMapTable(config.DefaultMapConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "地图配置加载失败，能量道具将出现在原点: %v\n", err)
		maps = nil
	}

	session := config.SessionFreeForAll
	if *teams {
		session = config.SessionDualTeam
	}
	settings := map[string]any{
		config.SettingKillsToWin:     *kills,
		config.SettingTimeLimit:      *timeLimit,
		config.SettingEpicMode:       *epic,
		config.SettingEnablePowerups: *powerups,
		config.SettingEnablePunch:    true,
	}

	var sink fx.Sink = fx.Discard{}
	if *showFX {
		sink = fx.LogSink{}
		log.SetOutput(os.Stdout)
	}

	match, err := game.NewIceDeathMatch(settings, game.Options{
		Session: session,
		Config:  modeCfg,
		Maps:    maps,
		FX:      sink,
		Seed:    *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	tl := &timeline{match: match, out: os.Stdout}
	router := match.Services.MessageRouter()
	router.Observers = append(router.Observers, tl.observe)
	match.OnKill = func(victim, killer *game.Player, how messages.DeathType) {
		switch {
		case killer == nil:
			tl.printf("%s died (%s)", victim.Name, how)
		case killer == victim:
			tl.printf("%s killed themselves (%s)", victim.Name, how)
		default:
			tl.printf("%s killed %s (%s)", killer.Name, victim.Name, how)
		}
	}
	match.OnScore = func(team *game.Team) {
		tl.printf("team %s score %d/%d", team.Name, team.Score, match.ScoreToWin)
	}
	match.OnGameEnd = func(winner *game.Team) {
		if winner == nil {
			tl.printf("game over: draw")
			return
		}
		tl.printf("game over: %s wins", winner.Name)
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
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	match.OnTransitionIn(*mapName)
	match.OnBegin()
	tl.printf("match started on %q: %d players, score to win %d, time scale %.2f",
		match.MapInfo.Name, len(match.Roster), match.ScoreToWin, match.TimeScale())

	lastPower := ecs.EntityID(0)
	for match.Now() < *duration && !match.Ended {
		match.Update(*step)

		if live := match.Power.Live(); live != lastPower {
			if live != 0 {
				tl.printf("super ice %d appeared", live)
			}
			lastPower = live
		}
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Standings:")
	for _, team := range match.Standings() {
		fmt.Fprintf(os.Stdout, "  %-8s %3d\n", team.Name, team.Score)
		for _, p := range team.Players {
			fmt.Fprintf(os.Stdout, "    %-8s kills %2d  deaths %2d\n", p.Name, p.Kills, p.Deaths)
		}
	}
	if !match.Ended {
		fmt.Fprintf(os.Stdout, "stopped after %.1fs without a winner\n", match.Now())
	}
}

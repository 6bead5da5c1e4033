package game

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

// 场景色调（冰蓝）
var (
	IceTint    = components.Color{1.0, 1.1, 1.3}
	IceAmbient = components.Color{0.8, 1.2, 1.4}
)

// epicTimeScale 史诗模式下的慢动作倍率
const epicTimeScale = 0.5

// playerPalette 玩家的默认配色（颜色, 高光）
var playerPalette = []components.Appearance{
	{Color: components.Color{0.2, 0.4, 1.0}, Highlight: components.Color{0.8, 0.9, 1.0}},
	{Color: components.Color{1.0, 0.25, 0.2}, Highlight: components.Color{1.0, 0.8, 0.2}},
	{Color: components.Color{0.2, 0.85, 0.3}, Highlight: components.Color{0.9, 1.0, 0.3}},
	{Color: components.Color{0.9, 0.5, 1.0}, Highlight: components.Color{1.0, 1.0, 1.0}},
	{Color: components.Color{1.0, 0.6, 0.1}, Highlight: components.Color{0.3, 0.2, 0.1}},
	{Color: components.Color{0.1, 0.9, 0.9}, Highlight: components.Color{0.1, 0.2, 0.6}},
}

// Options 创建比赛所需的宿主服务
type Options struct {
	Session config.SessionType
	Config  *config.ModeConfig // 为 nil 时使用内置调参
	Maps    *config.MapTable   // 为 nil 时所有地图都按未知地图处理
	FX      fx.Sink            // 为 nil 时丢弃特效
	Seed    int64
}

// Team 一支队伍；自由混战中每个玩家单独成队
type Team struct {
	ID      int
	Name    string
	Color   components.Color
	Score   int
	Players []*Player
}

// Player 比赛中的一名玩家（跨越多次复活）
type Player struct {
	ID     int
	Name   string
	Team   *Team
	Bot    bool
	Look   components.Appearance
	Entity ecs.EntityID // 当前角色，死亡后为 0

	Kills  int
	Deaths int

	left    bool
	respawn clock.Slot
}

// Alive 玩家当前是否有活着的角色
func (p *Player) Alive() bool {
	return p.Entity != 0
}

// IceDeathMatch 冰冻死亡竞赛
//
// 被冰爆击中的玩家会被冻住一段时间，冻住时再受到致命伤害会直接碎裂；
// 地图中央周期性出现超级冰能量，拿到的玩家在一段时间内免疫冰冻。
type IceDeathMatch struct {
	*World

	Settings *config.ModeSettings
	Session  config.SessionType

	maps    *config.MapTable
	MapInfo *config.MapInfo
	Tint    components.Color
	Ambient components.Color

	Teams   []*Team
	Roster  []*Player
	byActor map[ecs.EntityID]*Player

	Power      *PowerSpawnScheduler
	drops      clock.Slot
	timeLimit  clock.Slot
	ScoreToWin int

	started bool
	Ended   bool
	Winner  *Team // 平局时为 nil

	// OnScore 队伍得分变化后调用
	OnScore func(team *Team)
	// OnKill 玩家死亡并完成计分后调用；killer 可能为 nil
	OnKill func(victim, killer *Player, how messages.DeathType)
	// OnGameEnd 比赛结束时调用
	OnGameEnd func(winner *Team)
}

// NewIceDeathMatch 校验并解码宿主传入的设置，创建比赛
func NewIceDeathMatch(settings map[string]any, opts Options) (*IceDeathMatch, error) {
	decoded, err := config.DecodeModeSettings(settings, opts.Session)
	if err != nil {
		return nil, fmt.Errorf("invalid ice death match settings: %w", err)
	}

	w := NewWorld(opts.Config, opts.FX, opts.Seed)
	w.Players.FreezeTime = float64(decoded.FreezeTime)
	w.Players.IcePowerTime = float64(decoded.IcePowerTime)

	g := &IceDeathMatch{
		World:    w,
		Settings: decoded,
		Session:  opts.Session,
		maps:     opts.Maps,
		MapInfo:  opts.Maps.Resolve(""),
		byActor:  make(map[ecs.EntityID]*Player),
	}
	g.Power = NewPowerSpawnScheduler(w, float64(decoded.PowerSpawnInterval))
	w.Players.OnDeath = g.handleDeath
	return g, nil
}

// TimeScale 宿主推进时间的倍率，史诗模式下为慢动作
func (g *IceDeathMatch) TimeScale() float64 {
	if g.Settings.EpicMode {
		return epicTimeScale
	}
	return 1.0
}

// AddTeam 组队模式下添加队伍，队伍ID按添加顺序分配
func (g *IceDeathMatch) AddTeam(name string, color components.Color) *Team {
	team := &Team{ID: len(g.Teams), Name: name, Color: color}
	g.Teams = append(g.Teams, team)
	return team
}

// AddPlayer 加入一名玩家
// 组队模式下 team 不能为空；自由混战忽略 team，为玩家单独建队
// 比赛已经开始时玩家立即出场
func (g *IceDeathMatch) AddPlayer(name string, bot bool, team *Team) (*Player, error) {
	look := playerPalette[len(g.Roster)%len(playerPalette)]
	if g.Session == config.SessionDualTeam {
		if team == nil {
			return nil, fmt.Errorf("player %q: a team is required in team sessions", name)
		}
		look.Color = team.Color
	} else {
		team = g.AddTeam(name, look.Color)
	}

	p := &Player{ID: len(g.Roster) + 1, Name: name, Team: team, Bot: bot, Look: look}
	team.Players = append(team.Players, p)
	g.Roster = append(g.Roster, p)

	if g.started && !g.Ended {
		g.SpawnPlayer(p)
	}
	return p, nil
}

// RemovePlayer 玩家离开，角色立即消失且不计分
func (g *IceDeathMatch) RemovePlayer(p *Player) {
	p.left = true
	p.respawn.Cancel()
	if p.Entity != 0 {
		g.Services.Router.Send(p.Entity, messages.DieMessage{Immediate: true, How: messages.DeathLeftGame})
	}
}

// OnTransitionIn 切换到地图：设置冰蓝色调，确定能量道具的位置和高度
func (g *IceDeathMatch) OnTransitionIn(mapName string) {
	g.Tint = IceTint
	g.Ambient = IceAmbient

	info, known := g.maps.Lookup(mapName)
	if !known {
		info = g.maps.Resolve(mapName)
		log.Printf("[IceDeathMatch] Unknown map %q, super ice appears at the origin", mapName)
	}
	g.MapInfo = info
	g.Power.Position = info.PowerPos()
	g.Power.MaxHeight = info.MaxHeight(g.Services.Config.Power.DefaultMaxHeight)
	g.Bounds.SetBounds(info.MapBounds())
}

// OnBegin 比赛开始
func (g *IceDeathMatch) OnBegin() {
	g.started = true

	if limit := g.Settings.TimeLimit; limit > 0 {
		g.timeLimit.Set(g.Clock.After(float64(limit), g.endGame))
	}
	g.Power.Start()
	if g.Settings.EnablePowerups {
		g.drops.Set(g.Clock.Every(g.Services.Config.PowerupDrops.Interval, g.dropPowerup))
	}

	largest := 0
	for _, t := range g.Teams {
		largest = max(largest, len(t.Players))
	}
	g.ScoreToWin = g.Settings.KillsToWinPerPlayer * max(1, largest)

	for _, p := range g.Roster {
		if !p.left && p.Entity == 0 {
			g.SpawnPlayer(p)
		}
	}
	log.Printf("[IceDeathMatch] Match started on %s: %d players, %d kills to win",
		g.MapInfo.Name, len(g.Roster), g.ScoreToWin)
}

// SpawnPlayer 让玩家出场：组队按队伍出生点，混战选离其他玩家最远的出生点
func (g *IceDeathMatch) SpawnPlayer(p *Player) ecs.EntityID {
	pos := g.spawnPosition(p)
	svc := g.Services

	id := g.Players.Spawn(entities.PlayerSpec{
		PlayerID:     p.ID,
		TeamID:       p.Team.ID,
		Name:         p.Name,
		Position:     pos,
		Appearance:   p.Look,
		NameColor:    safeColor(p.Look.Color, 0.75),
		BombType:     "ice",
		EnablePickup: g.Settings.EnablePickup,
		EnablePunch:  g.Settings.EnablePunch,
		Bot:          p.Bot,
	})
	p.Entity = id
	g.byActor[id] = p

	if g.MapInfo != nil && g.MapInfo.Hockey {
		if move, ok := ecs.GetComponent[*components.MovementComponent](g.EM, id); ok {
			move.Hockey = true
			move.RollerMaterials = append(move.RollerMaterials, components.MaterialHockey)
		}
	}

	svc.Router.Send(id, messages.StandMessage{Pos: pos, Angle: svc.Rand.Float64() * 360})
	svc.FX.PlaySound(fx.Sound{Name: "spawn", Volume: 1.0, Position: pos})
	entities.NewSpawnFlashEntity(g.EM, id, pos, normalizedColor(p.Look.Color))

	log.Printf("[IceDeathMatch] %s spawned at (%.1f, %.1f, %.1f)", p.Name, pos.X, pos.Y, pos.Z)
	return id
}

func (g *IceDeathMatch) spawnPosition(p *Player) utils.Vec3 {
	info := g.MapInfo
	if g.Session == config.SessionDualTeam {
		return info.TeamSpawnPoint(p.Team.ID)
	}

	points := info.FFASpawnPoints()
	var others []utils.Vec3
	for _, o := range g.Roster {
		if o != p && o.Entity != 0 {
			if pos, ok := ecs.GetComponent[*components.PositionComponent](g.EM, o.Entity); ok {
				others = append(others, pos.Vec())
			}
		}
	}
	if len(others) == 0 {
		return points[g.Services.Rand.Intn(len(points))]
	}

	best, bestDist := points[0], -1.0
	for _, pt := range points {
		nearest := math.Inf(1)
		for _, o := range others {
			nearest = math.Min(nearest, pt.Dist(o))
		}
		if nearest > bestDist {
			best, bestDist = pt, nearest
		}
	}
	return best
}

// handleDeath 计分并安排复活
func (g *IceDeathMatch) handleDeath(victimID, killerID ecs.EntityID, how messages.DeathType) {
	victim, ok := g.byActor[victimID]
	if !ok {
		return
	}
	victim.Entity = 0
	victim.Deaths++

	killer := g.byActor[killerID]
	if how != messages.DeathLeftGame && !g.Ended {
		g.score(victim, killer)
	}
	if g.OnKill != nil {
		g.OnKill(victim, killer, how)
	}
	if g.Ended || victim.left {
		return
	}

	delay := g.Services.Config.Player.RespawnTime * g.Settings.RespawnTimes
	victim.respawn.Set(g.Clock.After(delay, func() {
		if !g.Ended && !victim.left && victim.Entity == 0 {
			g.SpawnPlayer(victim)
		}
	}))
}

func (g *IceDeathMatch) score(victim, killer *Player) {
	switch {
	case killer == nil:
		// 自己摔死且没有伤害来源，不计分
		return
	case killer.Team == victim.Team:
		// 组队模式下自杀/误伤给对方加分；混战中扣自己的分
		if g.Session == config.SessionDualTeam {
			for _, t := range g.Teams {
				if t != victim.Team {
					g.addScore(t, 1)
				}
			}
		} else {
			team := victim.Team
			team.Score--
			if team.Score < 0 && !g.Settings.AllowNegativeScores {
				team.Score = 0
			}
			if g.OnScore != nil {
				g.OnScore(team)
			}
		}
	default:
		killer.Kills++
		g.addScore(killer.Team, 1)
	}
}

func (g *IceDeathMatch) addScore(team *Team, points int) {
	team.Score += points
	if g.OnScore != nil {
		g.OnScore(team)
	}
	if g.ScoreToWin > 0 && team.Score >= g.ScoreToWin {
		g.endGame()
	}
}

// endGame 结束比赛，分数最高的队伍获胜
func (g *IceDeathMatch) endGame() {
	if g.Ended {
		return
	}
	g.Ended = true
	g.timeLimit.Cancel()
	g.drops.Cancel()
	g.Power.Stop()
	for _, p := range g.Roster {
		p.respawn.Cancel()
	}

	g.Winner = nil
	best, tie := math.MinInt, false
	for _, t := range g.Teams {
		switch {
		case t.Score > best:
			best, tie, g.Winner = t.Score, false, t
		case t.Score == best:
			tie = true
		}
	}
	if tie {
		g.Winner = nil
	}

	if g.Winner != nil {
		log.Printf("[IceDeathMatch] Game over, %s wins with %d", g.Winner.Name, g.Winner.Score)
	} else {
		log.Printf("[IceDeathMatch] Game over, draw")
	}
	if g.OnGameEnd != nil {
		g.OnGameEnd(g.Winner)
	}
}

// dropPowerup 在随机出生点附近掉落一个普通能量箱
func (g *IceDeathMatch) dropPowerup() {
	points := g.MapInfo.FFASpawnPoints()
	rnd := g.Services.Rand
	pos := points[rnd.Intn(len(points))]
	pos.X += rnd.Float64()*2 - 1
	pos.Z += rnd.Float64()*2 - 1
	g.Boxes.Spawn(pos, "")
}

// Standings 按分数从高到低排列的队伍
func (g *IceDeathMatch) Standings() []*Team {
	teams := append([]*Team(nil), g.Teams...)
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].Score > teams[j].Score })
	return teams
}

// PlayerFor 返回实体对应的玩家
func (g *IceDeathMatch) PlayerFor(id ecs.EntityID) (*Player, bool) {
	p, ok := g.byActor[id]
	return p, ok
}

// normalizedColor 把颜色缩放到最大分量为 1
func normalizedColor(c components.Color) components.Color {
	m := math.Max(c[0], math.Max(c[1], c[2]))
	if m <= 0 {
		return components.Color{1, 1, 1}
	}
	return components.Color{c[0] / m, c[1] / m, c[2] / m}
}

// safeColor 把颜色调整到适合显示名字的亮度
func safeColor(c components.Color, targetIntensity float64) components.Color {
	n := normalizedColor(c)
	sum := n[0] + n[1] + n[2]
	scale := targetIntensity * 3 / sum
	return components.Color{
		utils.Clamp(n[0]*scale, 0, 1),
		utils.Clamp(n[1]*scale, 0, 1),
		utils.Clamp(n[2]*scale, 0, 1),
	}
}

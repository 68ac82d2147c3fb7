package arena

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qianlnk/wolfgrid/models"
)

// Settings 世界参数
type Settings struct {
	Width        int
	Height       int
	VisionRadius int
	TurnDuration time.Duration
	Obstacles    int
	// ObstacleCells 非空时使用固定障碍，忽略 Obstacles
	ObstacleCells []models.Position
	Seed          int64
}

// Player 服务端权威的玩家状态
type Player struct {
	ID           string              `json:"id"`
	Login        string              `json:"login"`
	Role         models.Role         `json:"role"`
	Pos          models.Position     `json:"position"`
	Status       models.PlayerStatus `json:"statut"`
	LastMoveTurn int                 `json:"-"`
	Bot          bool                `json:"bot"`
}

func (p *Player) alive() bool {
	return p.Status == models.Alive
}

// Event 推送给观战者的世界事件
type Event struct {
	Type     string            `json:"type"`
	Turn     int               `json:"tour"`
	PlayerID string            `json:"player_id,omitempty"`
	Role     models.Role       `json:"role,omitempty"`
	Position *models.Position  `json:"position,omitempty"`
	Status   models.GameStatus `json:"statut_partie"`
}

const (
	EventRegistered = "inscription"
	EventMoved      = "deplacement"
	EventEliminated = "elimination"
	EventTurn       = "tour"
	EventFinished   = "fin"
)

// World 网格世界：障碍、玩家、回合
type World struct {
	settings    Settings
	obstacles   map[models.Position]bool
	players     map[string]*Player
	logins      map[string]string
	joined      map[models.Role]int
	bots        int
	turn        int
	turnStarted time.Time
	rng         *rand.Rand
	now         func() time.Time
	listeners   []func(Event)
	mutex       sync.RWMutex
}

// NewWorld 创建世界并布置障碍
func NewWorld(settings Settings) *World {
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &World{
		settings:  settings,
		obstacles: make(map[models.Position]bool),
		players:   make(map[string]*Player),
		logins:    make(map[string]string),
		joined:    make(map[models.Role]int),
		turn:      1,
		rng:       rand.New(rand.NewSource(seed)),
		now:       time.Now,
	}
	w.turnStarted = w.now()
	w.placeObstacles()
	return w
}

func (w *World) placeObstacles() {
	if len(w.settings.ObstacleCells) > 0 {
		for _, p := range w.settings.ObstacleCells {
			if w.inBounds(p) {
				w.obstacles[p] = true
			}
		}
		return
	}
	// 至多占一半格子，保证有出生空间
	limit := w.settings.Obstacles
	if half := w.settings.Width * w.settings.Height / 2; limit > half {
		limit = half
	}
	for len(w.obstacles) < limit {
		p := models.Position{X: w.rng.Intn(w.settings.Width), Y: w.rng.Intn(w.settings.Height)}
		w.obstacles[p] = true
	}
}

// Subscribe 注册事件监听，在锁外调用
func (w *World) Subscribe(fn func(Event)) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *World) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	w.mutex.RLock()
	listeners := append([]func(Event){}, w.listeners...)
	w.mutex.RUnlock()
	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

// Register 注册玩家并在空闲格子出生
func (w *World) Register(login string, role models.Role) (Player, error) {
	w.mutex.Lock()
	if _, taken := w.logins[login]; taken {
		w.mutex.Unlock()
		return Player{}, ErrLoginTaken
	}
	if w.statusLocked() == models.GameFinished {
		w.mutex.Unlock()
		return Player{}, ErrGameOver
	}
	pos, ok := w.spawnCell()
	if !ok {
		w.mutex.Unlock()
		return Player{}, ErrWorldFull
	}
	p := w.addPlayer(login, role, pos)
	events := []Event{{Type: EventRegistered, Turn: w.turn, PlayerID: p.ID, Role: role, Position: &pos, Status: w.statusLocked()}}
	out := *p
	w.mutex.Unlock()

	w.emit(events)
	return out, nil
}

func (w *World) addPlayer(login string, role models.Role, pos models.Position) *Player {
	p := &Player{
		ID:           uuid.NewString(),
		Login:        login,
		Role:         role,
		Pos:          pos,
		Status:       models.Alive,
		LastMoveTurn: 0,
	}
	w.players[p.ID] = p
	w.logins[login] = p.ID
	w.joined[role]++
	return p
}

// spawnCell 随机选择一个空闲且不与任何存活玩家相邻的格子
func (w *World) spawnCell() (models.Position, bool) {
	var free []models.Position
	for y := 0; y < w.settings.Height; y++ {
		for x := 0; x < w.settings.Width; x++ {
			p := models.Position{X: x, Y: y}
			if w.obstacles[p] || w.nearAlive(p) {
				continue
			}
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return models.Position{}, false
	}
	return free[w.rng.Intn(len(free))], true
}

func (w *World) nearAlive(p models.Position) bool {
	for _, other := range w.players {
		if other.alive() && other.Pos.Distance(p) <= 1 {
			return true
		}
	}
	return false
}

// Move 校验并执行一次移动，返回落点
func (w *World) Move(id string, target models.Position, turn int) (models.Position, error) {
	w.mutex.Lock()
	p, ok := w.players[id]
	if !ok {
		w.mutex.Unlock()
		return models.Position{}, ErrUnknownPlayer
	}
	if err := w.validateMove(p, target, turn); err != nil {
		w.mutex.Unlock()
		return p.Pos, err
	}
	events := w.applyMove(p, target)
	w.mutex.Unlock()

	w.emit(events)
	return target, nil
}

// validateMove 校验顺序决定了返回的错误信息
func (w *World) validateMove(p *Player, target models.Position, turn int) error {
	switch {
	case !p.alive():
		return ErrPlayerDead
	case w.statusLocked() == models.GameFinished:
		return ErrGameOver
	case turn != w.turn:
		return ErrWrongTurn
	case p.LastMoveTurn == w.turn:
		return ErrAlreadyMoved
	case !w.inBounds(target):
		return ErrOutOfBounds
	case p.Pos.Distance(target) != 1:
		return ErrNotAdjacent
	case w.obstacles[target]:
		return ErrObstacle
	case w.occupant(target) != nil:
		return ErrOccupied
	}
	return nil
}

func (w *World) applyMove(p *Player, target models.Position) []Event {
	before := w.statusLocked()
	p.Pos = target
	p.LastMoveTurn = w.turn

	pos := target
	events := []Event{{Type: EventMoved, Turn: w.turn, PlayerID: p.ID, Role: p.Role, Position: &pos, Status: before}}
	for _, dead := range w.resolveEliminations() {
		events = append(events, Event{Type: EventEliminated, Turn: w.turn, PlayerID: dead.ID, Role: dead.Role, Status: w.statusLocked()})
	}
	if after := w.statusLocked(); after == models.GameFinished && before != models.GameFinished {
		events = append(events, Event{Type: EventFinished, Turn: w.turn, Status: after})
	}
	return events
}

// resolveEliminations 与狼人相邻的村民被淘汰
func (w *World) resolveEliminations() []*Player {
	var eliminated []*Player
	for _, v := range w.sortedPlayers() {
		if !v.alive() || v.Role != models.Villager {
			continue
		}
		for _, wolf := range w.players {
			if wolf.alive() && wolf.Role == models.Wolf && wolf.Pos.Distance(v.Pos) <= 1 {
				v.Status = models.Dead
				eliminated = append(eliminated, v)
				break
			}
		}
	}
	return eliminated
}

func (w *World) inBounds(p models.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w.settings.Width && p.Y < w.settings.Height
}

// occupant 返回格子上的存活玩家
func (w *World) occupant(p models.Position) *Player {
	for _, other := range w.players {
		if other.alive() && other.Pos == p {
			return other
		}
	}
	return nil
}

func (w *World) sortedPlayers() []*Player {
	out := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Turn 当前回合
func (w *World) Turn() int {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.turn
}

// AdvanceTurn 进入下一回合
func (w *World) AdvanceTurn() int {
	w.mutex.Lock()
	w.turn++
	w.turnStarted = w.now()
	turn := w.turn
	events := []Event{{Type: EventTurn, Turn: turn, Status: w.statusLocked()}}
	w.mutex.Unlock()

	w.emit(events)
	return turn
}

// Status 对局状态
func (w *World) Status() models.GameStatus {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.statusLocked()
}

// statusLocked 两个阵营都有人加入前为等待；任一阵营全灭即结束
func (w *World) statusLocked() models.GameStatus {
	if w.joined[models.Wolf] == 0 || w.joined[models.Villager] == 0 {
		return models.GameWaiting
	}
	wolves, villagers := 0, 0
	for _, p := range w.players {
		if !p.alive() {
			continue
		}
		switch p.Role {
		case models.Wolf:
			wolves++
		case models.Villager:
			villagers++
		}
	}
	if wolves == 0 || villagers == 0 {
		return models.GameFinished
	}
	return models.GameRunning
}

// Player 返回玩家副本
func (w *World) Player(id string) (Player, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	p, ok := w.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Players 返回所有玩家副本，按 ID 排序
func (w *World) Players() []Player {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]Player, 0, len(w.players))
	for _, p := range w.sortedPlayers() {
		out = append(out, *p)
	}
	return out
}

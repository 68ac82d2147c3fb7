package models

import (
	"fmt"
)

// Role 玩家阵营，只有狼人与村民两种
type Role int

const (
	RoleUnknown Role = iota
	Wolf             // 狼人 loup
	Villager         // 村民 villageois
)

var roleNames = map[Role]string{
	Wolf:     "loup",
	Villager: "villageois",
}

// ParseRole 解析服务端协议中的阵营字符串
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("rôle inconnu %q", s)
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "inconnu"
}

// Valid 是否为可注册的阵营
func (r Role) Valid() bool {
	return r == Wolf || r == Villager
}

// Symbol 阵营在地图上的符号
func (r Role) Symbol() Cell {
	switch r {
	case Wolf:
		return CellWolf
	case Villager:
		return CellVillager
	default:
		return CellUnknown
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("rôle invalide %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// GameStatus 对局状态
type GameStatus int

const (
	GameStatusUnknown GameStatus = iota
	GameWaiting                  // en_attente
	GameRunning                  // en_cours
	GameFinished                 // terminé
)

var gameStatusNames = map[GameStatus]string{
	GameWaiting:  "en_attente",
	GameRunning:  "en_cours",
	GameFinished: "terminé",
}

func (s GameStatus) String() string {
	if name, ok := gameStatusNames[s]; ok {
		return name
	}
	return "inconnu"
}

func (s GameStatus) MarshalText() ([]byte, error) {
	name, ok := gameStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("statut de partie invalide %d", int(s))
	}
	return []byte(name), nil
}

func (s *GameStatus) UnmarshalText(text []byte) error {
	for status, name := range gameStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("statut de partie inconnu %q", string(text))
}

// PlayerStatus 玩家存活状态
type PlayerStatus int

const (
	PlayerStatusUnknown PlayerStatus = iota
	Alive                            // vivant
	Dead                             // mort
)

var playerStatusNames = map[PlayerStatus]string{
	Alive: "vivant",
	Dead:  "mort",
}

func (s PlayerStatus) String() string {
	if name, ok := playerStatusNames[s]; ok {
		return name
	}
	return "inconnu"
}

func (s PlayerStatus) MarshalText() ([]byte, error) {
	name, ok := playerStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("statut de joueur invalide %d", int(s))
	}
	return []byte(name), nil
}

func (s *PlayerStatus) UnmarshalText(text []byte) error {
	for status, name := range playerStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("statut de joueur inconnu %q", string(text))
}

// Position 网格坐标，y 轴向下
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add 按方向平移一格
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Distance 曼哈顿距离
func (p Position) Distance(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction 移动方向
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions 四个基本方向，顺序固定
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta 方向对应的坐标增量
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "haut"
	case DirDown:
		return "bas"
	case DirLeft:
		return "gauche"
	case DirRight:
		return "droite"
	default:
		return "aucune"
	}
}

// Identity 服务端在注册时分配的身份，会话内不可变
type Identity struct {
	PlayerID string
	Login    string
	Role     Role
}

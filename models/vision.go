package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Cell 地图格子符号
type Cell rune

const (
	CellEmpty    Cell = '.'
	CellWolf     Cell = 'L'
	CellVillager Cell = 'V'
	CellUnknown  Cell = '?'
	CellObstacle Cell = 'X'
)

// ParseCell 解析格子符号，未知符号视为未观测
func ParseCell(s string) (Cell, bool) {
	if len(s) != 1 {
		return CellUnknown, false
	}
	switch c := Cell(s[0]); c {
	case CellEmpty, CellWolf, CellVillager, CellUnknown, CellObstacle:
		return c, true
	default:
		return CellUnknown, false
	}
}

func (c Cell) String() string {
	return string(rune(c))
}

// Grid 视野窗口，按行存储
type Grid [][]Cell

// MarshalJSON 输出为二维字符串数组
func (g Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]string, len(g))
	for i, row := range g {
		rows[i] = make([]string, len(row))
		for j, c := range row {
			rows[i][j] = c.String()
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON 兼容二维字符串数组与每行一个字符串两种格式
func (g *Grid) UnmarshalJSON(data []byte) error {
	var cells [][]string
	if err := json.Unmarshal(data, &cells); err == nil {
		out := make(Grid, len(cells))
		for i, row := range cells {
			out[i] = make([]Cell, len(row))
			for j, s := range row {
				out[i][j], _ = ParseCell(s)
			}
		}
		*g = out
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("carte illisible: %w", err)
	}
	out := make(Grid, len(lines))
	for i, line := range lines {
		out[i] = make([]Cell, 0, len(line))
		for _, r := range line {
			c, _ := ParseCell(string(r))
			out[i] = append(out[i], c)
		}
	}
	*g = out
	return nil
}

// At 返回指定行列的格子，越界视为未观测
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return CellUnknown
	}
	return g[row][col]
}

// NearbyPlayer 附近玩家，距离可能未知
type NearbyPlayer struct {
	Role          Role
	Distance      int
	DistanceKnown bool
}

// VisionSnapshot 一次视野轮询的完整结果，只读，下一次成功轮询整体替换
type VisionSnapshot struct {
	Turn          int
	TimeRemaining float64
	Grid          Grid
	Nearby        []NearbyPlayer
	Eliminated    bool
	GameStatus    GameStatus
	// Position 服务端给出的玩家坐标，可能缺失
	Position *Position
}

// GameOver 对局是否已结束
func (s *VisionSnapshot) GameOver() bool {
	return s.GameStatus == GameFinished
}

var errNegativeTurn = errors.New("tour négatif")

// Snapshot 把协议结构转换为视野快照
func (v VisionResponse) Snapshot() (VisionSnapshot, error) {
	if v.Turn < 0 {
		return VisionSnapshot{}, errNegativeTurn
	}

	snap := VisionSnapshot{
		Turn:          v.Turn,
		TimeRemaining: v.TimeRemaining,
		Grid:          v.Map,
		Nearby:        make([]NearbyPlayer, 0, len(v.Nearby)),
		Eliminated:    v.Eliminated || v.PlayerStatus == Dead,
		GameStatus:    v.GameStatus,
	}
	if snap.TimeRemaining < 0 {
		snap.TimeRemaining = 0
	}
	for _, p := range v.Nearby {
		np := NearbyPlayer{Role: p.Role}
		if p.Distance != nil {
			np.Distance = *p.Distance
			np.DistanceKnown = true
		}
		snap.Nearby = append(snap.Nearby, np)
	}
	if v.X != nil && v.Y != nil {
		snap.Position = &Position{X: *v.X, Y: *v.Y}
	}
	return snap, nil
}

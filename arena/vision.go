package arena

import (
	"sort"

	"github.com/qianlnk/wolfgrid/models"
)

// Vision 以玩家为中心、半径为 VisionRadius 的方形视野。
// 地图外的格子为 '?'；2R 以内的其他存活玩家列入 joueurs_proches，
// 超过 R 的只给出阵营、不给距离。
func (w *World) Vision(id string) (models.VisionResponse, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	p, ok := w.players[id]
	if !ok {
		return models.VisionResponse{}, ErrUnknownPlayer
	}

	r := w.settings.VisionRadius
	grid := make(models.Grid, 0, 2*r+1)
	for dy := -r; dy <= r; dy++ {
		row := make([]models.Cell, 0, 2*r+1)
		for dx := -r; dx <= r; dx++ {
			row = append(row, w.cellAt(models.Position{X: p.Pos.X + dx, Y: p.Pos.Y + dy}))
		}
		grid = append(grid, row)
	}

	type near struct {
		player *Player
		dist   int
	}
	var nearby []near
	for _, other := range w.sortedPlayers() {
		if other.ID == p.ID || !other.alive() {
			continue
		}
		if d := other.Pos.Distance(p.Pos); d <= 2*r {
			nearby = append(nearby, near{player: other, dist: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })

	resp := models.VisionResponse{
		Turn:          w.turn,
		TimeRemaining: w.timeRemaining(),
		Map:           grid,
		Nearby:        make([]models.NearbyPlayerPayload, 0, len(nearby)),
		Eliminated:    !p.alive(),
		GameStatus:    w.statusLocked(),
		PlayerStatus:  p.Status,
	}
	for _, n := range nearby {
		payload := models.NearbyPlayerPayload{Role: n.player.Role}
		if n.dist <= r {
			d := n.dist
			payload.Distance = &d
		}
		resp.Nearby = append(resp.Nearby, payload)
	}
	x, y := p.Pos.X, p.Pos.Y
	resp.X, resp.Y = &x, &y
	return resp, nil
}

func (w *World) cellAt(p models.Position) models.Cell {
	switch {
	case !w.inBounds(p):
		return models.CellUnknown
	case w.obstacles[p]:
		return models.CellObstacle
	}
	if other := w.occupant(p); other != nil {
		return other.Role.Symbol()
	}
	return models.CellEmpty
}

// timeRemaining 当前回合剩余秒数
func (w *World) timeRemaining() float64 {
	left := w.settings.TurnDuration - w.now().Sub(w.turnStarted)
	if left < 0 {
		return 0
	}
	return left.Seconds()
}

package arena

import (
	"fmt"

	"github.com/qianlnk/wolfgrid/models"
)

// AddBot 加入一个由服务端控制的玩家
func (w *World) AddBot(role models.Role) (Player, error) {
	w.mutex.Lock()
	w.bots++
	login := fmt.Sprintf("bot%s%d", role, w.bots)
	w.mutex.Unlock()

	p, err := w.Register(login, role)
	if err != nil {
		return Player{}, err
	}

	w.mutex.Lock()
	w.players[p.ID].Bot = true
	w.mutex.Unlock()
	p.Bot = true
	return p, nil
}

// MoveBots 每个存活的机器人在当前回合走一步：
// 狼人靠近最近的村民，村民远离最近的狼人，同分随机
func (w *World) MoveBots() {
	w.mutex.Lock()
	var events []Event
	for _, bot := range w.sortedPlayers() {
		if !bot.Bot || !bot.alive() || bot.LastMoveTurn == w.turn {
			continue
		}
		if w.statusLocked() == models.GameFinished {
			break
		}
		target, ok := w.decideBotMove(bot)
		if !ok {
			continue
		}
		events = append(events, w.applyMove(bot, target)...)
	}
	w.mutex.Unlock()

	w.emit(events)
}

// decideBotMove 在合法的相邻格子中挑选得分最高的一个
func (w *World) decideBotMove(bot *Player) (models.Position, bool) {
	var best []models.Position
	bestScore := 0
	for _, dir := range models.Directions {
		target := bot.Pos.Add(dir)
		if w.validateMove(bot, target, w.turn) != nil {
			continue
		}
		score := w.botScore(bot, target)
		switch {
		case len(best) == 0 || score > bestScore:
			best = []models.Position{target}
			bestScore = score
		case score == bestScore:
			best = append(best, target)
		}
	}
	if len(best) == 0 {
		return models.Position{}, false
	}
	return best[w.rng.Intn(len(best))], true
}

func (w *World) botScore(bot *Player, target models.Position) int {
	prey := models.Villager
	if bot.Role == models.Villager {
		prey = models.Wolf
	}
	nearest := -1
	for _, other := range w.players {
		if other.ID == bot.ID || !other.alive() || other.Role != prey {
			continue
		}
		if d := other.Pos.Distance(target); nearest < 0 || d < nearest {
			nearest = d
		}
	}
	if nearest < 0 {
		return 0
	}
	if bot.Role == models.Wolf {
		return -nearest
	}
	return nearest
}

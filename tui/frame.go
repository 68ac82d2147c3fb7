package tui

import (
	"fmt"

	"github.com/qianlnk/wolfgrid/models"
	"github.com/qianlnk/wolfgrid/services"
)

// Frame 一帧画面的文本布局，与终端库无关
type Frame struct {
	Header []string
	Banner string
	Grid   models.Grid
	Nearby []string
	Status string
	Help   string
}

// BuildFrame 把循环的视图转换为文本布局
func BuildFrame(v services.View) Frame {
	f := Frame{
		Header: []string{
			fmt.Sprintf("wolfgrid | %s (%s) | position %s", v.Identity.Login, v.Identity.Role, v.Position),
		},
		Help: services.KeyHelp,
	}

	if snap := v.Snapshot; snap != nil {
		f.Header = append(f.Header, fmt.Sprintf("tour %d | %.1f s restantes | partie %s",
			snap.Turn, snap.TimeRemaining, statusLabel(snap.GameStatus)))
		f.Grid = snap.Grid
		f.Nearby = nearbyLines(snap.Nearby)
	} else {
		f.Header = append(f.Header, "en attente de la vision...")
	}

	switch {
	case v.State == services.StateEliminated:
		f.Banner = "*** ÉLIMINÉ ***"
	case v.GameOver:
		f.Banner = "*** PARTIE TERMINÉE ***"
	}

	f.Status = v.Message
	if f.Status == "" && v.Health == services.OutcomeTransportError {
		f.Status = "connexion perdue, affichage du dernier état connu"
	}
	return f
}

func statusLabel(s models.GameStatus) string {
	switch s {
	case models.GameWaiting:
		return "en attente"
	case models.GameRunning:
		return "en cours"
	case models.GameFinished:
		return "terminée"
	default:
		return "?"
	}
}

func nearbyLines(players []models.NearbyPlayer) []string {
	if len(players) == 0 {
		return []string{"personne à proximité"}
	}
	lines := make([]string, 0, len(players))
	for _, p := range players {
		if p.DistanceKnown {
			lines = append(lines, fmt.Sprintf("%s à %d case(s)", p.Role, p.Distance))
		} else {
			lines = append(lines, fmt.Sprintf("%s, distance inconnue", p.Role))
		}
	}
	return lines
}

// Center 视野中心格，即玩家自己
func (f Frame) Center() (row, col int, ok bool) {
	if len(f.Grid) == 0 {
		return 0, 0, false
	}
	row = len(f.Grid) / 2
	if len(f.Grid[row]) == 0 {
		return 0, 0, false
	}
	return row, len(f.Grid[row]) / 2, true
}

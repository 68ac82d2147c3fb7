package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/nsf/termbox-go"

	"github.com/qianlnk/wolfgrid/models"
	"github.com/qianlnk/wolfgrid/services"
)

func sampleView() services.View {
	return services.View{
		State:    services.StateActive,
		Identity: models.Identity{PlayerID: "p1", Login: "alice", Role: models.Villager},
		Position: models.Position{X: 5, Y: 4},
		Snapshot: &models.VisionSnapshot{
			Turn:          3,
			TimeRemaining: 7.25,
			Grid: models.Grid{
				{'?', '.', '.'},
				{'.', 'V', 'X'},
				{'.', 'L', '.'},
			},
			Nearby: []models.NearbyPlayer{
				{Role: models.Wolf, Distance: 1, DistanceKnown: true},
				{Role: models.Villager},
			},
			GameStatus: models.GameRunning,
		},
	}
}

func TestBuildFrame(t *testing.T) {
	f := BuildFrame(sampleView())

	if len(f.Header) != 2 {
		t.Fatalf("header %q", f.Header)
	}
	if f.Header[0] != "wolfgrid | alice (villageois) | position (5,4)" {
		t.Errorf("header[0] %q", f.Header[0])
	}
	if f.Header[1] != "tour 3 | 7.2 s restantes | partie en cours" && f.Header[1] != "tour 3 | 7.3 s restantes | partie en cours" {
		t.Errorf("header[1] %q", f.Header[1])
	}
	if f.Banner != "" {
		t.Errorf("banner %q for an active player", f.Banner)
	}
	want := []string{"loup à 1 case(s)", "villageois, distance inconnue"}
	if strings.Join(f.Nearby, "|") != strings.Join(want, "|") {
		t.Errorf("nearby %q", f.Nearby)
	}
	if row, col, ok := f.Center(); !ok || f.Grid[row][col] != models.CellVillager {
		t.Errorf("center (%d,%d) ok=%v", row, col, ok)
	}
	if f.Help != services.KeyHelp {
		t.Errorf("help %q", f.Help)
	}
}

func TestBuildFrame_NoSnapshotYet(t *testing.T) {
	v := sampleView()
	v.Snapshot = nil
	v.Health = services.OutcomeTransportError

	f := BuildFrame(v)
	if f.Header[1] != "en attente de la vision..." {
		t.Errorf("header %q", f.Header)
	}
	if _, _, ok := f.Center(); ok {
		t.Error("center reported without a grid")
	}
	if !strings.Contains(f.Status, "connexion perdue") {
		t.Errorf("status %q", f.Status)
	}
}

func TestBuildFrame_Banners(t *testing.T) {
	v := sampleView()
	v.State = services.StateEliminated
	v.Message = "vous avez été éliminé"
	if f := BuildFrame(v); f.Banner != "*** ÉLIMINÉ ***" || f.Status != v.Message {
		t.Errorf("eliminated frame %+v", f)
	}

	v = sampleView()
	v.GameOver = true
	v.Snapshot.Nearby = nil
	f := BuildFrame(v)
	if f.Banner != "*** PARTIE TERMINÉE ***" {
		t.Errorf("banner %q", f.Banner)
	}
	if len(f.Nearby) != 1 || f.Nearby[0] != "personne à proximité" {
		t.Errorf("nearby %q", f.Nearby)
	}
}

func TestKeyCommand(t *testing.T) {
	cases := []struct {
		ev   termbox.Event
		want services.Command
	}{
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowUp}, services.MoveCommand(models.DirUp)},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowLeft}, services.MoveCommand(models.DirLeft)},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, services.Command{Kind: services.CommandQuit}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}, services.Command{Kind: services.CommandQuit}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, services.Command{Kind: services.CommandRefresh}},
		{termbox.Event{Type: termbox.EventKey, Ch: 'd'}, services.MoveCommand(models.DirRight)},
		{termbox.Event{Type: termbox.EventKey, Ch: 'S'}, services.MoveCommand(models.DirDown)},
	}
	for _, tc := range cases {
		got, err := keyCommand(tc.ev)
		if err != nil || got != tc.want {
			t.Errorf("keyCommand(%+v) = %+v, %v; want %+v", tc.ev, got, err, tc.want)
		}
	}
	if _, err := keyCommand(termbox.Event{Type: termbox.EventKey, Ch: 'm'}); !errors.Is(err, services.ErrUnknownCommand) {
		t.Errorf("unbound key err = %v", err)
	}
}

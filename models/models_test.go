package models

import (
	"encoding/json"
	"testing"
)

func TestRoleText(t *testing.T) {
	for _, s := range []string{"loup", "villageois"} {
		r, err := ParseRole(s)
		if err != nil || r.String() != s || !r.Valid() {
			t.Errorf("ParseRole(%q) = %v, %v", s, r, err)
		}
	}
	for _, s := range []string{"", "Loup", "sorcière"} {
		if _, err := ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) accepted", s)
		}
	}
	if _, err := RoleUnknown.MarshalText(); err == nil {
		t.Error("unknown role marshalled")
	}
	if Wolf.Symbol() != CellWolf || Villager.Symbol() != CellVillager {
		t.Error("role symbols")
	}
}

func TestGridDecodeFormats(t *testing.T) {
	var nested, rows Grid
	if err := json.Unmarshal([]byte(`[["?","L"],["V","Z"]]`), &nested); err != nil {
		t.Fatalf("nested: %v", err)
	}
	if err := json.Unmarshal([]byte(`["?L","VZ"]`), &rows); err != nil {
		t.Fatalf("rows: %v", err)
	}
	for _, g := range []Grid{nested, rows} {
		if g.At(0, 1) != CellWolf || g.At(1, 0) != CellVillager {
			t.Errorf("grid %v", g)
		}
		if g.At(1, 1) != CellUnknown {
			t.Errorf("unrecognised symbol decoded as %q", g.At(1, 1))
		}
		if g.At(5, 5) != CellUnknown || g.At(-1, 0) != CellUnknown {
			t.Error("out of range cell should be unknown")
		}
	}

	var bad Grid
	if err := json.Unmarshal([]byte(`{"a":1}`), &bad); err == nil {
		t.Error("object accepted as grid")
	}

	out, err := json.Marshal(Grid{{CellEmpty, CellObstacle}})
	if err != nil || string(out) != `[[".","X"]]` {
		t.Errorf("Marshal = %s, %v", out, err)
	}
}

func TestSnapshot(t *testing.T) {
	var resp VisionResponse
	payload := `{"tour_actuel":3,"temps_restant":-1,"carte":[],"elimine":false,
		"statut_partie":"terminé","statut_joueur":"vivant",
		"joueurs_proches":[{"role":"loup","distance":0}],"x":1}`
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	snap, err := resp.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TimeRemaining != 0 || snap.Eliminated || !snap.GameOver() {
		t.Errorf("snapshot %+v", snap)
	}
	if snap.Position != nil {
		t.Error("position set with only x present")
	}
	if n := snap.Nearby[0]; !n.DistanceKnown || n.Distance != 0 {
		t.Errorf("nearby %+v", n)
	}

	resp.Turn = -1
	if _, err := resp.Snapshot(); err == nil {
		t.Error("negative turn accepted")
	}
}

func TestPositionAndDirection(t *testing.T) {
	p := Position{X: 2, Y: 2}
	cases := map[Direction]Position{
		DirUp:    {X: 2, Y: 1},
		DirDown:  {X: 2, Y: 3},
		DirLeft:  {X: 1, Y: 2},
		DirRight: {X: 3, Y: 2},
		DirNone:  {X: 2, Y: 2},
	}
	for d, want := range cases {
		if got := p.Add(d); got != want {
			t.Errorf("%v.Add(%s) = %v, want %v", p, d, got, want)
		}
	}
	if d := p.Distance(Position{X: 0, Y: 5}); d != 5 {
		t.Errorf("distance %d, want 5", d)
	}
	if p.String() != "(2,2)" {
		t.Errorf("String = %q", p.String())
	}
}

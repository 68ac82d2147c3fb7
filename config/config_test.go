package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadClient_Defaults(t *testing.T) {
	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080" || cfg.Timeout != 5*time.Second {
		t.Errorf("defaults %+v", cfg)
	}
	if cfg.LogFile != "wolfgrid-client.log" || cfg.LogLevel != "info" {
		t.Errorf("log defaults %+v", cfg)
	}
}

func TestLoadClient_Env(t *testing.T) {
	t.Setenv("WOLFGRID_SERVER_URL", " http://game.local:9000 ")
	t.Setenv("WOLFGRID_TIMEOUT", "250ms")
	t.Setenv("WOLFGRID_LOG_LEVEL", "debug")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.ServerURL != "http://game.local:9000" {
		t.Errorf("server url %q", cfg.ServerURL)
	}
	if cfg.Timeout != 250*time.Millisecond || cfg.LogLevel != "debug" {
		t.Errorf("cfg %+v", cfg)
	}
}

func TestLoadClient_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"no scheme":     {"WOLFGRID_SERVER_URL", "localhost"},
		"zero timeout":  {"WOLFGRID_TIMEOUT", "0s"},
		"neg timeout":   {"WOLFGRID_TIMEOUT", "-1s"},
		"relative path": {"WOLFGRID_SERVER_URL", "/jeu"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			if _, err := LoadClient(); err == nil {
				t.Errorf("%s=%s accepted", env[0], env[1])
			}
		})
	}
}

func TestLoadArena_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	content := []byte("width: 12\nheight: 9\nvision_radius: 2\nturn_duration: 3s\nobstacles: 5\nbot_wolves: 1\nseed: 99\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WOLFGRID_ARENA_HEIGHT", "15")

	cfg, err := LoadArena(path)
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if cfg.Width != 12 || cfg.VisionRadius != 2 || cfg.Obstacles != 5 || cfg.BotWolves != 1 || cfg.Seed != 99 {
		t.Errorf("file values %+v", cfg)
	}
	if cfg.Height != 15 {
		t.Errorf("height %d, env should win", cfg.Height)
	}
	if cfg.TurnDuration != 3*time.Second {
		t.Errorf("turn duration %v", cfg.TurnDuration)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr %q", cfg.Addr)
	}
}

func TestLoadArena_MissingFile(t *testing.T) {
	if _, err := LoadArena(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestArenaValidate(t *testing.T) {
	valid := Arena{Width: 10, Height: 10, VisionRadius: 2, TurnDuration: time.Second, Obstacles: 10}
	if err := valid.validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	broken := []func(*Arena){
		func(a *Arena) { a.Width = 2 },
		func(a *Arena) { a.VisionRadius = 0 },
		func(a *Arena) { a.TurnDuration = 0 },
		func(a *Arena) { a.Obstacles = 50 },
		func(a *Arena) { a.Obstacles = -1 },
		func(a *Arena) { a.BotVillagers = -2 },
	}
	for i, mutate := range broken {
		a := valid
		mutate(&a)
		if err := a.validate(); err == nil {
			t.Errorf("case %d: %+v accepted", i, a)
		}
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	clientEnvPrefix = "WOLFGRID"
	arenaEnvPrefix  = "WOLFGRID_ARENA"
)

// Client 客户端配置，只从环境变量读取
type Client struct {
	ServerURL string
	Timeout   time.Duration
	LogFile   string
	LogLevel  string
}

// LoadClient 读取 WOLFGRID_* 环境变量
func LoadClient() (Client, error) {
	v := viper.New()
	v.SetEnvPrefix(clientEnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("log_file", "wolfgrid-client.log")
	v.SetDefault("log_level", "info")

	cfg := Client{
		ServerURL: strings.TrimSpace(v.GetString("server_url")),
		Timeout:   v.GetDuration("timeout"),
		LogFile:   v.GetString("log_file"),
		LogLevel:  v.GetString("log_level"),
	}
	return cfg, cfg.validate()
}

func (c Client) validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WOLFGRID_SERVER_URL invalide: %q", c.ServerURL)
	}
	if c.Timeout <= 0 {
		return errors.New("WOLFGRID_TIMEOUT doit être positif")
	}
	return nil
}

// Arena 参考服务端配置
type Arena struct {
	Addr         string
	Width        int
	Height       int
	VisionRadius int
	TurnDuration time.Duration
	Obstacles    int
	BotWolves    int
	BotVillagers int
	Seed         int64
	LogFile      string
	LogLevel     string
}

// LoadArena 读取配置文件（可选）与 WOLFGRID_ARENA_* 环境变量，环境变量优先
func LoadArena(path string) (Arena, error) {
	v := viper.New()
	v.SetEnvPrefix(arenaEnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("width", 20)
	v.SetDefault("height", 20)
	v.SetDefault("vision_radius", 3)
	v.SetDefault("turn_duration", 10*time.Second)
	v.SetDefault("obstacles", 30)
	v.SetDefault("bot_wolves", 0)
	v.SetDefault("bot_villagers", 0)
	v.SetDefault("seed", 0)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Arena{}, fmt.Errorf("lecture de %s: %w", path, err)
		}
	}

	cfg := Arena{
		Addr:         v.GetString("addr"),
		Width:        v.GetInt("width"),
		Height:       v.GetInt("height"),
		VisionRadius: v.GetInt("vision_radius"),
		TurnDuration: v.GetDuration("turn_duration"),
		Obstacles:    v.GetInt("obstacles"),
		BotWolves:    v.GetInt("bot_wolves"),
		BotVillagers: v.GetInt("bot_villagers"),
		Seed:         v.GetInt64("seed"),
		LogFile:      v.GetString("log_file"),
		LogLevel:     v.GetString("log_level"),
	}
	return cfg, cfg.validate()
}

func (a Arena) validate() error {
	switch {
	case a.Width < 3 || a.Height < 3:
		return fmt.Errorf("carte trop petite: %dx%d", a.Width, a.Height)
	case a.VisionRadius < 1:
		return errors.New("vision_radius doit être >= 1")
	case a.TurnDuration <= 0:
		return errors.New("turn_duration doit être positif")
	case a.Obstacles < 0 || a.Obstacles >= a.Width*a.Height/2:
		return fmt.Errorf("nombre d'obstacles invalide: %d", a.Obstacles)
	case a.BotWolves < 0 || a.BotVillagers < 0:
		return errors.New("nombre de bots négatif")
	}
	return nil
}

package arena

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// TurnClock 按固定间隔推进回合，并在新回合开始时驱动机器人
type TurnClock struct {
	world    *World
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
	started  bool
}

// NewTurnClock 创建回合计时器
func NewTurnClock(world *World, interval time.Duration, logger *zap.Logger) *TurnClock {
	return &TurnClock{
		world:    world,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start 启动计时协程
func (c *TurnClock) Start() {
	c.started = true
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.Tick()
			}
		}
	}()
}

// Tick 推进一个回合
func (c *TurnClock) Tick() {
	turn := c.world.AdvanceTurn()
	c.world.MoveBots()
	c.logger.Debug("回合推进",
		zap.Int("tour", turn),
		zap.Stringer("statut", c.world.Status()))
}

// Stop 停止计时并等待协程退出，可重复调用
func (c *TurnClock) Stop() {
	c.once.Do(func() {
		close(c.stop)
		if c.started {
			<-c.done
		}
	})
}

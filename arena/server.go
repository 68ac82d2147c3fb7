package arena

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// Server 参考游戏服务端：世界、回合计时、观战推送与 REST 路由
type Server struct {
	world      *World
	clock      *TurnClock
	spectators *Spectators
	engine     *gin.Engine
	logger     *zap.Logger
}

// NewServer 创建服务端，回合计时需调用 Start 启动
func NewServer(settings Settings, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	world := NewWorld(settings)
	s := &Server{
		world:      world,
		clock:      NewTurnClock(world, settings.TurnDuration, logger.Named("horloge")),
		spectators: NewSpectators(logger.Named("spectateurs")),
		logger:     logger,
	}
	world.Subscribe(s.spectators.Broadcast)
	world.Subscribe(s.logEvent)
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger.Named("http")))

	r.POST("/inscription", s.register)
	r.POST("/deplacement/:id", s.move)
	r.GET("/vision/:id", s.vision)
	r.GET("/tour", s.turn)
	r.GET("/ws/spectate", s.spectators.Handle)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

// Handler 供 http.Server 或 httptest 使用
func (s *Server) Handler() http.Handler {
	return s.engine
}

// World 返回服务端的世界
func (s *Server) World() *World {
	return s.world
}

// Clock 返回回合计时器
func (s *Server) Clock() *TurnClock {
	return s.clock
}

// Start 启动回合计时
func (s *Server) Start() {
	s.clock.Start()
}

// Close 停止计时并断开观战者
func (s *Server) Close() {
	s.clock.Stop()
	s.spectators.Close()
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inscription invalide: " + err.Error()})
		return
	}

	player, err := s.world.Register(req.Login, req.Role)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.RegisterResponse{
		PlayerID: player.ID,
		X:        player.Pos.X,
		Y:        player.Pos.Y,
	})
}

// moveBody 三个字段都必须出现，0 是合法值
type moveBody struct {
	X    *int `json:"x" binding:"required"`
	Y    *int `json:"y" binding:"required"`
	Turn *int `json:"tour" binding:"required"`
}

func (s *Server) move(c *gin.Context) {
	var body moveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "déplacement invalide: " + err.Error()})
		return
	}

	target := models.Position{X: *body.X, Y: *body.Y}
	pos, err := s.world.Move(c.Param("id"), target, *body.Turn)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.MoveResponse{X: &pos.X, Y: &pos.Y})
}

func (s *Server) vision(c *gin.Context) {
	resp, err := s.world.Vision(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) turn(c *gin.Context) {
	c.JSON(http.StatusOK, models.TurnResponse{Turn: s.world.Turn()})
}

func (s *Server) logEvent(ev Event) {
	s.logger.Info("世界事件",
		zap.String("type", ev.Type),
		zap.Int("tour", ev.Turn),
		zap.String("player_id", ev.PlayerID),
		zap.Stringer("statut", ev.Status))
}

// requestLogger 用 zap 记录每个请求
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("请求",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("client", c.ClientIP()))
	}
}

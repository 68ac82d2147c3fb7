package arena

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	spectatorWriteWait = 5 * time.Second
	// 每个观战者的待发送事件上限，写满即断开
	spectatorBuffer = 64
)

// spectator 一个观战连接，由独立的写协程消费 send
type spectator struct {
	conn *websocket.Conn
	send chan []byte
}

// Spectators 观战连接管理，向所有连接广播世界事件
type Spectators struct {
	spectators map[*spectator]struct{}
	upgrader   websocket.Upgrader
	logger     *zap.Logger
	mutex      sync.Mutex
}

// NewSpectators 创建观战管理器
func NewSpectators(logger *zap.Logger) *Spectators {
	return &Spectators{
		spectators: make(map[*spectator]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// Handle GET /ws/spectate
func (s *Spectators) Handle(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("升级WebSocket连接失败", zap.Error(err))
		return
	}

	sp := &spectator{conn: conn, send: make(chan []byte, spectatorBuffer)}
	s.mutex.Lock()
	s.spectators[sp] = struct{}{}
	count := len(s.spectators)
	s.mutex.Unlock()
	s.logger.Info("观战者加入", zap.String("remote", conn.RemoteAddr().String()), zap.Int("spectators", count))

	go s.writeLoop(sp)
	go s.readLoop(sp)
}

// writeLoop 串行写出事件；send 关闭后发送关闭帧并断开
func (s *Spectators) writeLoop(sp *spectator) {
	defer sp.conn.Close()
	for msg := range sp.send {
		_ = sp.conn.SetWriteDeadline(time.Now().Add(spectatorWriteWait))
		if err := sp.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Debug("向观战者发送失败", zap.Error(err))
			s.remove(sp)
			return
		}
	}
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "fin du flux")
	_ = sp.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(100*time.Millisecond))
}

// readLoop 观战者不发送业务消息，读循环只用于发现断开
func (s *Spectators) readLoop(sp *spectator) {
	sp.conn.SetReadLimit(512)
	for {
		if _, _, err := sp.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("观战连接读取失败", zap.Error(err))
			}
			s.remove(sp)
			return
		}
	}
}

// remove 可重复调用；关闭 send 让写协程退出
func (s *Spectators) remove(sp *spectator) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.removeLocked(sp)
}

func (s *Spectators) removeLocked(sp *spectator) {
	if _, ok := s.spectators[sp]; ok {
		delete(s.spectators, sp)
		close(sp.send)
	}
}

// Broadcast 把事件放入每个观战者的队列，不等待网络写；队列已满的观战者被断开
func (s *Spectators) Broadcast(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("事件序列化失败", zap.Error(err))
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	for sp := range s.spectators {
		select {
		case sp.send <- msg:
		default:
			s.logger.Warn("观战者跟不上，断开连接")
			s.removeLocked(sp)
		}
	}
}

// Count 当前观战人数
func (s *Spectators) Count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.spectators)
}

// Close 断开所有观战连接
func (s *Spectators) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for sp := range s.spectators {
		s.removeLocked(sp)
	}
}

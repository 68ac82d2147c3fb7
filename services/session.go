package services

import (
	"github.com/qianlnk/wolfgrid/models"
)

// Session 客户端对自身状态的认知：身份、位置、回合与连接健康度。
// 只由客户端循环持有，在网络调用之间修改，不做并发保护。
type Session struct {
	identity *models.Identity
	position models.Position
	turn     int
	health   Outcome
}

// NewSession 创建未注册的会话
func NewSession() *Session {
	return &Session{}
}

// Registered 是否已经注册
func (s *Session) Registered() bool {
	return s.identity != nil
}

// Identity 返回身份，未注册时 ok 为 false
func (s *Session) Identity() (models.Identity, bool) {
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Position 返回本地认为的位置，未注册时 ok 为 false
func (s *Session) Position() (models.Position, bool) {
	if s.identity == nil {
		return models.Position{}, false
	}
	return s.position, true
}

// Turn 最近一次得知的回合数，仅供参考
func (s *Session) Turn() int {
	return s.turn
}

// Health 最近一次网络调用的结果分类
func (s *Session) Health() Outcome {
	return s.health
}

// establish 写入身份与初始位置，只能成功一次
func (s *Session) establish(id models.Identity, pos models.Position) error {
	if s.identity != nil {
		return ErrAlreadyRegistered
	}
	s.identity = &id
	s.position = pos
	return nil
}

func (s *Session) setPosition(pos models.Position) {
	if s.identity == nil {
		return
	}
	s.position = pos
}

// observeTurn 回合只前进不后退
func (s *Session) observeTurn(turn int) {
	if turn > s.turn {
		s.turn = turn
	}
}

func (s *Session) record(err error) {
	s.health = Classify(err)
}

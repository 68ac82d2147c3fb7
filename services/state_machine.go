package services

import (
	"errors"

	"github.com/qianlnk/wolfgrid/models"
)

// LoopState 客户端循环状态
type LoopState int

const (
	StateUnregistered LoopState = iota
	StateActive
	StateEliminated
	StateTerminated
)

func (s LoopState) String() string {
	switch s {
	case StateUnregistered:
		return "non inscrit"
	case StateActive:
		return "actif"
	case StateEliminated:
		return "éliminé"
	case StateTerminated:
		return "terminé"
	default:
		return "inconnu"
	}
}

var errInvalidTransition = errors.New("transition d'état invalide")

// StateMachine 客户端状态机：
// UNREGISTERED -> ACTIVE <-> ELIMINATED -> TERMINATED
type StateMachine struct {
	state    LoopState
	gameOver bool
}

// NewStateMachine 创建处于未注册状态的状态机
func NewStateMachine() *StateMachine {
	return &StateMachine{state: StateUnregistered}
}

// State 当前状态
func (sm *StateMachine) State() LoopState {
	return sm.state
}

// GameOver 最近一次快照是否显示对局结束
func (sm *StateMachine) GameOver() bool {
	return sm.gameOver
}

// Registered 注册成功，进入活动状态
func (sm *StateMachine) Registered() error {
	if sm.state != StateUnregistered {
		return errInvalidTransition
	}
	sm.state = StateActive
	return nil
}

// Observe 根据最新快照在 ACTIVE 与 ELIMINATED 之间切换
func (sm *StateMachine) Observe(snap *models.VisionSnapshot) {
	if snap == nil {
		return
	}
	sm.gameOver = snap.GameOver()

	switch sm.state {
	case StateActive:
		if snap.Eliminated {
			sm.state = StateEliminated
		}
	case StateEliminated:
		if !snap.Eliminated {
			sm.state = StateActive
		}
	}
}

// Quit 任意状态都可以退出
func (sm *StateMachine) Quit() {
	sm.state = StateTerminated
}

// CanMove 本地拦截不应发往服务端的移动
func (sm *StateMachine) CanMove() error {
	switch sm.state {
	case StateUnregistered:
		return ErrNotRegistered
	case StateEliminated:
		return ErrEliminated
	case StateTerminated:
		return errInvalidTransition
	}
	if sm.gameOver {
		return ErrGameOver
	}
	return nil
}

package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// View 交给渲染器的一帧画面数据
type View struct {
	State    LoopState
	Identity models.Identity
	Position models.Position
	// Snapshot 最近一次成功轮询的快照，首次成功之前为 nil
	Snapshot *models.VisionSnapshot
	GameOver bool
	Message  string
	Health   Outcome
}

// Renderer 画面输出
type Renderer interface {
	Render(view View) error
}

// CommandReader 读取一条玩家指令，阻塞直到有输入
type CommandReader interface {
	ReadCommand() (Command, error)
}

// ClientLoop 单线程的 轮询 -> 渲染 -> 读指令 -> 执行 循环
type ClientLoop struct {
	session      *Session
	machine      *StateMachine
	registration *Registration
	movement     *Movement
	vision       *Vision
	logger       *zap.Logger

	renderer Renderer
	commands CommandReader

	last    *models.VisionSnapshot
	message string
}

// NewClientLoop 组装会话与各协议组件
func NewClientLoop(api *APIClient, logger *zap.Logger) *ClientLoop {
	logger = orNop(logger)
	session := NewSession()
	turns := NewTurnQuery(api, session, logger)
	return &ClientLoop{
		session:      session,
		machine:      NewStateMachine(),
		registration: NewRegistration(api, session, logger),
		movement:     NewMovement(api, session, turns, logger),
		vision:       NewVision(api, session, logger),
		logger:       logger.Named("boucle"),
	}
}

// Session 返回循环持有的会话
func (l *ClientLoop) Session() *Session {
	return l.session
}

// State 当前循环状态
func (l *ClientLoop) State() LoopState {
	return l.machine.State()
}

// Register 未注册状态下的唯一操作，失败时保持未注册
func (l *ClientLoop) Register(login string, role models.Role) error {
	if l.machine.State() != StateUnregistered {
		return ErrAlreadyRegistered
	}
	if _, _, err := l.registration.Register(login, role); err != nil {
		return err
	}
	return l.machine.Registered()
}

// Run 执行循环直到玩家退出；只有终端读写失败才返回错误
func (l *ClientLoop) Run(renderer Renderer, commands CommandReader) error {
	if l.machine.State() == StateUnregistered {
		return ErrNotRegistered
	}
	l.renderer = renderer
	l.commands = commands

	for l.machine.State() != StateTerminated {
		if err := l.cycle(); err != nil {
			l.machine.Quit()
			return err
		}
	}
	l.logger.Info("客户端退出")
	return nil
}

func (l *ClientLoop) cycle() error {
	if snap := l.vision.Poll(); snap != nil {
		l.observe(snap)
	}

	if err := l.renderer.Render(l.view()); err != nil {
		return fmt.Errorf("affichage: %w", err)
	}

	cmd, err := l.commands.ReadCommand()
	if err != nil {
		if errors.Is(err, ErrUnknownCommand) {
			l.message = UserMessage(err)
			return nil
		}
		return fmt.Errorf("lecture du clavier: %w", err)
	}
	l.handle(cmd)
	return nil
}

// observe 新快照整体替换旧快照，并驱动状态机
func (l *ClientLoop) observe(snap *models.VisionSnapshot) {
	before := l.machine.State()
	l.last = snap
	l.machine.Observe(snap)

	switch after := l.machine.State(); {
	case before == StateActive && after == StateEliminated:
		l.logger.Info("玩家被淘汰", zap.Int("tour", snap.Turn))
		l.message = ErrEliminated.Error()
	case before == StateEliminated && after == StateActive:
		l.logger.Info("玩家重新回到对局", zap.Int("tour", snap.Turn))
		l.message = ""
	}
}

func (l *ClientLoop) handle(cmd Command) {
	switch cmd.Kind {
	case CommandQuit:
		l.machine.Quit()
	case CommandMove:
		if err := l.machine.CanMove(); err != nil {
			l.message = UserMessage(err)
			return
		}
		pos, err := l.movement.Step(cmd.Direction)
		if err != nil {
			l.message = UserMessage(err)
			return
		}
		l.message = fmt.Sprintf("déplacé %s en %s", cmd.Direction, pos)
	default:
		l.message = ""
	}
}

func (l *ClientLoop) view() View {
	id, _ := l.session.Identity()
	pos, _ := l.session.Position()
	return View{
		State:    l.machine.State(),
		Identity: id,
		Position: pos,
		Snapshot: l.last,
		GameOver: l.machine.GameOver(),
		Message:  l.message,
		Health:   l.session.Health(),
	}
}

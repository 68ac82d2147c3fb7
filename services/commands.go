package services

import (
	"unicode"

	"github.com/qianlnk/wolfgrid/models"
)

// CommandKind 玩家指令类型
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandMove
	CommandRefresh
	CommandQuit
)

// Command 单个按键解析出的指令
type Command struct {
	Kind      CommandKind
	Direction models.Direction
}

// MoveCommand 构造移动指令
func MoveCommand(dir models.Direction) Command {
	return Command{Kind: CommandMove, Direction: dir}
}

var keyBindings = map[rune]Command{
	'z': MoveCommand(models.DirUp),
	'w': MoveCommand(models.DirUp),
	's': MoveCommand(models.DirDown),
	'a': MoveCommand(models.DirLeft),
	'd': MoveCommand(models.DirRight),
	'r': {Kind: CommandRefresh},
	' ': {Kind: CommandRefresh},
	'x': {Kind: CommandQuit},
}

// ParseCommand 把单个字符映射为指令，大小写不敏感
func ParseCommand(ch rune) (Command, error) {
	if cmd, ok := keyBindings[unicode.ToLower(ch)]; ok {
		return cmd, nil
	}
	return Command{}, ErrUnknownCommand
}

// KeyHelp 按键说明
const KeyHelp = "z/↑ haut  s/↓ bas  a/← gauche  d/→ droite  r rafraîchir  x/Échap quitter"

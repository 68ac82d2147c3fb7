package tui

import (
	"errors"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/qianlnk/wolfgrid/models"
	"github.com/qianlnk/wolfgrid/services"
)

// Screen termbox 终端：渲染画面并读取单键指令
type Screen struct{}

// Open 初始化终端，调用方负责 Close
func Open() (*Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	return &Screen{}, nil
}

// Close 恢复终端
func (s *Screen) Close() {
	termbox.Close()
}

// Render 绘制一帧
func (s *Screen) Render(view services.View) error {
	f := BuildFrame(view)
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}

	y := 0
	for _, line := range f.Header {
		drawText(0, y, line, termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault)
		y++
	}
	if f.Banner != "" {
		drawText(0, y, f.Banner, termbox.ColorRed|termbox.AttrBold, termbox.ColorDefault)
	}
	y += 2

	centerRow, centerCol, hasCenter := f.Center()
	for r, row := range f.Grid {
		for c, cell := range row {
			fg, bg := cellColors(cell)
			if hasCenter && r == centerRow && c == centerCol {
				fg |= termbox.AttrReverse
			}
			termbox.SetCell(c*2, y, rune(cell), fg, bg)
		}
		y++
	}
	y++

	for _, line := range f.Nearby {
		drawText(0, y, line, termbox.ColorDefault, termbox.ColorDefault)
		y++
	}
	y++
	drawText(0, y, f.Status, termbox.ColorYellow, termbox.ColorDefault)
	y += 2
	drawText(0, y, f.Help, termbox.ColorBlue, termbox.ColorDefault)

	return termbox.Flush()
}

func cellColors(c models.Cell) (termbox.Attribute, termbox.Attribute) {
	switch c {
	case models.CellWolf:
		return termbox.ColorRed | termbox.AttrBold, termbox.ColorDefault
	case models.CellVillager:
		return termbox.ColorGreen | termbox.AttrBold, termbox.ColorDefault
	case models.CellObstacle:
		return termbox.ColorWhite, termbox.ColorDefault
	case models.CellUnknown:
		return termbox.ColorBlack | termbox.AttrBold, termbox.ColorDefault
	default:
		return termbox.ColorDefault, termbox.ColorDefault
	}
}

// drawText 按显示宽度逐字符绘制
func drawText(x, y int, text string, fg, bg termbox.Attribute) {
	for _, r := range text {
		termbox.SetCell(x, y, r, fg, bg)
		x += runewidth.RuneWidth(r)
	}
}

var errInterrupted = errors.New("interruption du terminal")

// ReadCommand 阻塞读取一个按键
func (s *Screen) ReadCommand() (services.Command, error) {
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			return keyCommand(ev)
		case termbox.EventResize:
			return services.Command{Kind: services.CommandRefresh}, nil
		case termbox.EventError:
			return services.Command{}, ev.Err
		case termbox.EventInterrupt:
			return services.Command{}, errInterrupted
		}
	}
}

func keyCommand(ev termbox.Event) (services.Command, error) {
	switch ev.Key {
	case termbox.KeyArrowUp:
		return services.MoveCommand(models.DirUp), nil
	case termbox.KeyArrowDown:
		return services.MoveCommand(models.DirDown), nil
	case termbox.KeyArrowLeft:
		return services.MoveCommand(models.DirLeft), nil
	case termbox.KeyArrowRight:
		return services.MoveCommand(models.DirRight), nil
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return services.Command{Kind: services.CommandQuit}, nil
	case termbox.KeySpace:
		return services.ParseCommand(' ')
	}
	return services.ParseCommand(ev.Ch)
}

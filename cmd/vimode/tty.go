package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/vimode/internal/input/key"
	"github.com/dshills/vimode/internal/logger"
	"github.com/dshills/vimode/internal/session"
)

// interact feeds terminal keys to sess until Ctrl-C or until the screen
// stops delivering events. The bottom row shows the mode after each key.
// screen must already be initialized.
func interact(screen tcell.Screen, sess *session.Session) {
	drawStatus(screen, sess)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return
			}
			e, ok := key.FromTcell(ev)
			if !ok {
				continue
			}
			if !sess.HandleKey(e) {
				logger.L().Debug("key rejected", zap.String("key", e.String()))
			}
			drawStatus(screen, sess)
		case *tcell.EventResize:
			screen.Sync()
			drawStatus(screen, sess)
		}
	}
}

// drawStatus writes the mode and caret count on the bottom row.
func drawStatus(screen tcell.Screen, sess *session.Session) {
	w, h := screen.Size()
	if h == 0 {
		return
	}
	status := fmt.Sprintf("-- %s -- %d", sess.CurrentMode().DisplayText(), len(sess.CurrentSelections()))
	row := h - 1
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		screen.SetContent(x, row, r, nil, tcell.StyleDefault.Reverse(true))
	}
	screen.Show()
}

package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/game"
)

type action int

const (
	actForward action = iota
	actBack
	actStrafeLeft
	actStrafeRight
	actTurnLeft
	actTurnRight
	actFire
	numActions
)

// Terminals report key presses and auto-repeat but never releases, so a
// press holds its action for a short window.
const holdWindow = 150 * time.Millisecond

// actionFor maps a key event to an action. Bindings follow the desktop
// backend: arrows or WASD walk and turn, Q/E strafe, Space fires.
func actionFor(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return actForward, true
	case tcell.KeyDown:
		return actBack, true
	case tcell.KeyLeft:
		return actTurnLeft, true
	case tcell.KeyRight:
		return actTurnRight, true
	case tcell.KeyRune:
	default:
		return 0, false
	}
	switch ev.Rune() {
	case 'w', 'W':
		return actForward, true
	case 's', 'S':
		return actBack, true
	case 'a', 'A':
		return actTurnLeft, true
	case 'd', 'D':
		return actTurnRight, true
	case 'q', 'Q':
		return actStrafeLeft, true
	case 'e', 'E':
		return actStrafeRight, true
	case ' ':
		return actFire, true
	}
	return 0, false
}

// isQuit reports whether ev ends the session.
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// keyLatch remembers when each action was last pressed.
type keyLatch struct {
	until [numActions]time.Time
}

func (l *keyLatch) press(a action, now time.Time) {
	l.until[a] = now.Add(holdWindow)
}

func (l *keyLatch) held(a action, now time.Time) bool {
	return now.Before(l.until[a])
}

func (l *keyLatch) input(now time.Time) game.Input {
	return game.Input{
		Forward:     l.held(actForward, now),
		Back:        l.held(actBack, now),
		StrafeLeft:  l.held(actStrafeLeft, now),
		StrafeRight: l.held(actStrafeRight, now),
		TurnLeft:    l.held(actTurnLeft, now),
		TurnRight:   l.held(actTurnRight, now),
		Fire:        l.held(actFire, now),
	}
}

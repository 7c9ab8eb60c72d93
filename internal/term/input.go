package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mgy583/Solar-System-Simulation/internal/sim"
)

// Terminals report key presses but not releases, so a key counts as held
// until KeyHold has passed since its last press or auto-repeat.
type inputState struct {
	hold   time.Duration
	scaleX float64
	scaleY float64

	until map[sim.Key]time.Time

	mouseX, mouseY int
	haveMouse      bool

	frame sim.Input
}

func newInputState(cfg Config) *inputState {
	return &inputState{
		hold:   cfg.KeyHold,
		scaleX: cfg.MouseScaleX,
		scaleY: cfg.MouseScaleY,
		until:  make(map[sim.Key]time.Time),
	}
}

// handle applies one screen event. It reports whether the event asks to quit.
func (s *inputState) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev, now)
	case *tcell.EventMouse:
		x, y := ev.Position()
		if s.haveMouse {
			dx, dy := x-s.mouseX, y-s.mouseY
			if dx != 0 || dy != 0 {
				s.frame.PushMotion(float64(dx)*s.scaleX, float64(dy)*s.scaleY)
			}
		}
		s.mouseX, s.mouseY, s.haveMouse = x, y, true
	}
	return false
}

func (s *inputState) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		s.press(sim.KeyW, now)
	case tcell.KeyDown:
		s.press(sim.KeyS, now)
	case tcell.KeyLeft:
		s.press(sim.KeyA, now)
	case tcell.KeyRight:
		s.press(sim.KeyD, now)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'w', 'W':
			s.press(sim.KeyW, now)
		case 's', 'S':
			s.press(sim.KeyS, now)
		case 'a', 'A':
			s.press(sim.KeyA, now)
		case 'd', 'D':
			s.press(sim.KeyD, now)
		case ' ':
			s.press(sim.KeySpace, now)
		case 'c', 'C':
			s.press(sim.KeyShiftLeft, now)
		}
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		s.press(sim.KeyShiftLeft, now)
	}
	return false
}

func (s *inputState) press(k sim.Key, now time.Time) {
	s.until[k] = now.Add(s.hold)
}

// next returns the input for a frame starting at now. Pointer motion queued
// since the previous frame is carried in the result.
func (s *inputState) next(now time.Time) *sim.Input {
	s.frame.Keys = 0
	for k, until := range s.until {
		if now.Before(until) {
			s.frame.Press(k)
		} else {
			delete(s.until, k)
		}
	}
	return &s.frame
}

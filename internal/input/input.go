package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last
// press. Terminals only deliver repeats, so a short window smooths held
// movement keys into continuous input.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Fire    bool
	Grenade bool
	Enter   bool
	Escape  bool
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	fire    time.Time
	grenade time.Time
	enter   time.Time
	escape  time.Time
}

// Stream delivers input bytes via a channel and tracks key state so held
// keys and combinations survive terminal key-repeat gaps.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking),
// handles arrow-key escape sequences, and reports which keys are live
// within the hold window.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte

	// Drain all available bytes
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return Input{Quit: true}
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused on a fixed screen
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	return Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Fire:    now.Sub(s.state.fire) < keyHoldDuration,
		Grenade: now.Sub(s.state.grenade) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Pressed: buf,
	}
}

// ResetKeyInput clears all key state, so a key held on one screen does not
// leak into the next (e.g. the space that starts the game firing a shot).
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// applyByteToState updates the key state timestamps for a pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.fire = now
	case 'g', 'G':
		state.grenade = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}

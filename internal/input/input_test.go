package input

import (
	"testing"
	"time"
)

func streamWith(bytes ...byte) *Stream {
	s := &Stream{ch: make(chan byte, len(bytes)+1)}
	for _, b := range bytes {
		s.ch <- b
	}
	return s
}

func TestReadInputMapsGameKeys(t *testing.T) {
	now := time.Now()
	in := readInputAt(streamWith('a', ' ', 'g'), now)

	if !in.Left || !in.Fire || !in.Grenade {
		t.Fatalf("keys not mapped: %+v", in)
	}
	if in.Right || in.Quit {
		t.Fatalf("phantom keys: %+v", in)
	}
}

func TestReadInputParsesArrowSequences(t *testing.T) {
	now := time.Now()
	in := readInputAt(streamWith('\x1b', '[', 'C'), now)

	if !in.Right {
		t.Fatal("right arrow not parsed")
	}
	if in.Escape {
		t.Fatal("CSI escape leaked as a bare escape press")
	}
}

func TestKeyStateExpiresAfterHoldWindow(t *testing.T) {
	s := streamWith('d')
	now := time.Now()

	if in := readInputAt(s, now); !in.Right {
		t.Fatal("fresh press not live")
	}
	if in := readInputAt(s, now.Add(keyHoldDuration*2)); in.Right {
		t.Fatal("stale press still live past hold window")
	}
}

func TestResetKeyInputClearsHeldState(t *testing.T) {
	s := streamWith(' ')
	now := time.Now()
	readInputAt(s, now)

	ResetKeyInput(s)
	if in := readInputAt(s, now); in.Fire {
		t.Fatal("fire survived reset")
	}
}

func TestClosedStreamSignalsQuit(t *testing.T) {
	s := &Stream{ch: make(chan byte)}
	close(s.ch)

	if in := readInputAt(s, time.Now()); !in.Quit {
		t.Fatal("closed stream should read as quit")
	}
}

// Package telemetry records gameplay events and movement samples for a
// session. The recorder is write-only from the simulation's perspective;
// it is flushed to a sink once per session, after the terminal state.
package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// positionSampleInterval throttles movement samples so a session does not
// record thousands of near-identical positions.
const positionSampleInterval = 500 * time.Millisecond

// Shot is one fired bullet; Hit is back-filled when the bullet connects.
type Shot struct {
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	T         int64   `json:"t"` // ms since session start
	Hit       bool    `json:"hit"`
	EnemyType string  `json:"enemyType,omitempty"`
}

// Event is a discrete gameplay notification (grenade launched, enemy
// killed, player death).
type Event struct {
	Type string         `json:"type"`
	T    int64          `json:"t"`
	Data map[string]any `json:"data,omitempty"`
}

// PositionSample is one throttled player position reading.
type PositionSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t"`
}

// Session is the full recorded telemetry for one game session.
type Session struct {
	ID            string           `json:"id"`
	PlayerEmail   string           `json:"playerEmail"`
	PlayerName    string           `json:"playerName"`
	StartedAt     time.Time        `json:"startedAt"`
	EndedAt       time.Time        `json:"endedAt"`
	LevelReached  int              `json:"levelReached"`
	FinalScore    int              `json:"finalScore"`
	EndReason     string           `json:"endReason"`
	EnemiesKilled int              `json:"enemiesKilled"`
	Shots         []Shot           `json:"shots"`
	Events        []Event          `json:"events"`
	Positions     []PositionSample `json:"positions"`
}

// Summary is the aggregate view exposed on demand.
type Summary struct {
	SessionID   string  `json:"sessionId"`
	TotalShots  int     `json:"totalShots"`
	Hits        int     `json:"hits"`
	Accuracy    float64 `json:"accuracy"`
	Grenades    int     `json:"grenades"`
	Deaths      int     `json:"deaths"`
	PlaySeconds float64 `json:"playSeconds"`
}

// Sink receives completed sessions. Implementations must tolerate being
// called from a goroutine detached from the frame loop.
type Sink interface {
	SaveSession(s *Session) error
}

// Recorder accumulates telemetry for one active session. Not safe for
// concurrent use; the simulation owns it on the tick goroutine.
type Recorder struct {
	session    *Session
	recording  bool
	lastSample time.Time
}

// NewRecorder returns an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins recording for a player, assigning a fresh session id.
func (r *Recorder) Start(email, name string, now time.Time) {
	r.session = &Session{
		ID:          uuid.NewString(),
		PlayerEmail: email,
		PlayerName:  name,
		StartedAt:   now,
	}
	r.recording = true
	r.lastSample = time.Time{}
}

// Recording reports whether a session is being recorded.
func (r *Recorder) Recording() bool { return r.recording }

// RecordShot logs a fired bullet and returns its shot index, used to mark
// the shot as a hit later. Returns -1 when not recording.
func (r *Recorder) RecordShot(x, y float64, now time.Time) int {
	if !r.recording {
		return -1
	}
	r.session.Shots = append(r.session.Shots, Shot{
		X: x, Y: y,
		T: now.Sub(r.session.StartedAt).Milliseconds(),
	})
	return len(r.session.Shots) - 1
}

// MarkShotHit back-fills the hit flag for a previously recorded shot.
// Out-of-range indexes are ignored.
func (r *Recorder) MarkShotHit(index int, enemyType string) {
	if !r.recording || index < 0 || index >= len(r.session.Shots) {
		return
	}
	r.session.Shots[index].Hit = true
	r.session.Shots[index].EnemyType = enemyType
}

// RecordEvent logs a discrete gameplay event.
func (r *Recorder) RecordEvent(eventType string, now time.Time, data map[string]any) {
	if !r.recording {
		return
	}
	r.session.Events = append(r.session.Events, Event{
		Type: eventType,
		T:    now.Sub(r.session.StartedAt).Milliseconds(),
		Data: data,
	})
}

// RecordPosition logs a player position, throttled to one sample per
// interval.
func (r *Recorder) RecordPosition(x, y float64, now time.Time) {
	if !r.recording {
		return
	}
	if !r.lastSample.IsZero() && now.Sub(r.lastSample) < positionSampleInterval {
		return
	}
	r.lastSample = now
	r.session.Positions = append(r.session.Positions, PositionSample{
		X: x, Y: y,
		T: now.Sub(r.session.StartedAt).Milliseconds(),
	})
}

// Stop finalizes the session with its terminal facts and stops recording.
// Returns the finished session, or nil if nothing was recorded.
func (r *Recorder) Stop(now time.Time, levelReached, finalScore, enemiesKilled int, endReason string) *Session {
	if !r.recording {
		return nil
	}
	r.recording = false
	r.session.EndedAt = now
	r.session.LevelReached = levelReached
	r.session.FinalScore = finalScore
	r.session.EnemiesKilled = enemiesKilled
	r.session.EndReason = endReason
	return r.session
}

// Summary aggregates the recorded session so far.
func (r *Recorder) Summary() Summary {
	if r.session == nil {
		return Summary{}
	}

	s := Summary{SessionID: r.session.ID, TotalShots: len(r.session.Shots)}
	for _, shot := range r.session.Shots {
		if shot.Hit {
			s.Hits++
		}
	}
	if s.TotalShots > 0 {
		s.Accuracy = float64(s.Hits) / float64(s.TotalShots)
	}
	for _, e := range r.session.Events {
		switch e.Type {
		case "grenade_launched":
			s.Grenades++
		case "player_death":
			s.Deaths++
		}
	}
	end := r.session.EndedAt
	if end.IsZero() {
		end = r.session.StartedAt
	}
	s.PlaySeconds = end.Sub(r.session.StartedAt).Seconds()
	return s
}

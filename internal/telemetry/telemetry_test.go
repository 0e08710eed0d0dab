package telemetry

import (
	"testing"
	"time"
)

func TestShotHitMapping(t *testing.T) {
	r := NewRecorder()
	start := time.Now()
	r.Start("player@example.com", "Player", start)

	i0 := r.RecordShot(100, 500, start.Add(time.Second))
	i1 := r.RecordShot(120, 500, start.Add(2*time.Second))
	if i0 != 0 || i1 != 1 {
		t.Fatalf("shot indexes = %d, %d, want 0, 1", i0, i1)
	}

	r.MarkShotHit(i1, "sentinel")
	r.MarkShotHit(99, "normal") // out of range: ignored

	sum := r.Summary()
	if sum.TotalShots != 2 || sum.Hits != 1 {
		t.Fatalf("summary = %d shots / %d hits, want 2 / 1", sum.TotalShots, sum.Hits)
	}
	if sum.Accuracy != 0.5 {
		t.Fatalf("accuracy = %v, want 0.5", sum.Accuracy)
	}
}

func TestNotRecordingIsInert(t *testing.T) {
	r := NewRecorder()

	if idx := r.RecordShot(0, 0, time.Now()); idx != -1 {
		t.Fatalf("idle recorder returned shot index %d, want -1", idx)
	}
	r.RecordEvent("enemy_killed", time.Now(), nil)
	r.RecordPosition(1, 2, time.Now())
	if s := r.Stop(time.Now(), 1, 0, 0, "death"); s != nil {
		t.Fatal("idle recorder produced a session")
	}
}

func TestPositionSamplingThrottled(t *testing.T) {
	r := NewRecorder()
	start := time.Now()
	r.Start("player@example.com", "Player", start)

	for i := 0; i < 100; i++ {
		r.RecordPosition(float64(i), 500, start.Add(time.Duration(i)*16*time.Millisecond))
	}

	// 100 samples over ~1.6s at a 500ms throttle leaves a handful.
	if n := len(r.session.Positions); n > 5 {
		t.Fatalf("recorded %d position samples, want throttling to <= 5", n)
	}
}

func TestStopFinalizesSession(t *testing.T) {
	r := NewRecorder()
	start := time.Now()
	r.Start("player@example.com", "Player", start)
	r.RecordEvent("grenade_launched", start.Add(time.Second), nil)
	r.RecordEvent("player_death", start.Add(2*time.Second), map[string]any{"level": 2})

	s := r.Stop(start.Add(30*time.Second), 2, 4200, 17, "death")
	if s == nil {
		t.Fatal("Stop returned nil for an active session")
	}
	if s.LevelReached != 2 || s.FinalScore != 4200 || s.EnemiesKilled != 17 || s.EndReason != "death" {
		t.Fatalf("terminal facts not recorded: %+v", s)
	}
	if r.Recording() {
		t.Fatal("recorder still recording after Stop")
	}

	sum := r.Summary()
	if sum.Grenades != 1 || sum.Deaths != 1 {
		t.Fatalf("summary grenades/deaths = %d/%d, want 1/1", sum.Grenades, sum.Deaths)
	}
	if sum.PlaySeconds != 30 {
		t.Fatalf("play seconds = %v, want 30", sum.PlaySeconds)
	}
}

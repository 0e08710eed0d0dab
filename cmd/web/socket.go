package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/starfall-game/starfall/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// The page and the socket are served from the same process; browsers
	// still send an Origin header the default checker rejects behind
	// proxies, so accept all.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// joinMessage is the first frame a browser sends.
type joinMessage struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// inputMessage mirrors session.Input. The browser sends one whenever its
// key state changes; the server holds the latest between ticks.
type inputMessage struct {
	Type    string `json:"type"`
	Left    bool   `json:"left"`
	Right   bool   `json:"right"`
	Fire    bool   `json:"fire"`
	Grenade bool   `json:"grenade"`
}

// handleGameSocket runs one game session per websocket connection. The
// server is authoritative: the browser only sends intent and renders the
// snapshots it gets back.
func handleGameSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	var join joinMessage
	if err := conn.ReadJSON(&join); err != nil || join.Type != "join" || join.Email == "" {
		logger.Warn("websocket join failed", "err", err)
		return
	}
	logger.Info("web session joined", "email", join.Email)

	sess := session.New(session.Config{
		Email:     join.Email,
		Name:      join.Name,
		Profiles:  stores.Profiles,
		Scores:    stores.Scores,
		Telemetry: stores.Telemetry,
		Logger:    logger,
	}, time.Now())

	var (
		mu      sync.Mutex
		current session.Input
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var in inputMessage
			if err := conn.ReadJSON(&in); err != nil {
				return
			}
			if in.Type != "input" {
				continue
			}
			mu.Lock()
			current = session.Input{
				Left:    in.Left,
				Right:   in.Right,
				Fire:    in.Fire,
				Grenade: in.Grenade,
			}
			mu.Unlock()
		}
	}()

	ticker := time.NewTicker(session.TickTime)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			logger.Info("web session closed", "email", join.Email)
			return
		case now := <-ticker.C:
			mu.Lock()
			in := current
			mu.Unlock()

			sess.Step(now, in)
			if err := conn.WriteJSON(sess.Snapshot(now)); err != nil {
				logger.Debug("snapshot write failed", "email", join.Email, "err", err)
				return
			}
		}
	}
}

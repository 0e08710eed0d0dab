package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/starfall-game/starfall/internal/config"
	"github.com/starfall-game/starfall/internal/storage"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var (
	logger *log.Logger
	stores *storage.Stores
)

func main() {
	config.LoadDotenv()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "starfall-web"})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	dbPath := config.GetEnv("STARFALL_DB", "starfall.db")

	var err error
	stores, err = storage.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", "path", dbPath, "err", err)
	}
	defer stores.Close()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, htmlPage)
	})
	http.HandleFunc("/ws", handleGameSocket)
	http.HandleFunc("/api/leaderboard", handleLeaderboard)

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// handleLeaderboard returns the top scores as JSON.
func handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	records, err := stores.Scores.Leaderboard(10)
	if err != nil {
		logger.Error("leaderboard query failed", "err", err)
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		logger.Error("leaderboard encode failed", "err", err)
	}
}

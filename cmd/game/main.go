package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/starfall-game/starfall/internal/client"
	"github.com/starfall-game/starfall/internal/config"
	"github.com/starfall-game/starfall/internal/storage"
)

func main() {
	config.LoadDotenv()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "starfall"})

	var stores *storage.Stores
	dbPath := config.GetEnv("STARFALL_DB", "starfall.db")
	if dbPath != "" {
		var err error
		stores, err = storage.Open(dbPath)
		if err != nil {
			logger.Warn("database unavailable, playing without persistence", "path", dbPath, "err", err)
			stores = nil
		} else {
			defer stores.Close()
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.New(bufio.NewReader(os.Stdin), os.Stdout, client.Options{
		Email:  config.GetEnv("STARFALL_EMAIL", "local@starfall"),
		Name:   config.GetEnv("STARFALL_NAME", "Local Pilot"),
		Stores: stores,
		Logger: logger,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

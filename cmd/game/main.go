package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/blastar/internal/audio"
	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/loop/client"
	"github.com/tomz197/blastar/internal/loop/server"
	"github.com/tomz197/blastar/internal/match"
)

func main() {
	logger := config.NewLogger("blastar")
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("load .env", "err", err)
	}

	cfg, err := match.ConfigFromEnv()
	if err != nil {
		logger.Warn("match config", "err", err)
	}

	settings := config.DefaultSettings()
	var player audio.Player = audio.Nop{}
	if speaker, err := audio.NewSpeaker(settings); err != nil {
		logger.Warn("audio disabled", "err", err)
	} else {
		player = speaker
	}
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// Local play runs its own server; log output would corrupt the screen
	gameServer := server.NewServer(cfg, config.DiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gameServer.Run(ctx)

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(gameServer, reader, os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Audio:    player,
		Settings: &settings,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

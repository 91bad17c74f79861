package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/platform/ws"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets their own session with a picker menu. The SSH
username is recorded with scores and saves. Scores are stored per-server
(all users share the same leaderboard).

With --ws, a websocket endpoint is served at /ws as well. Clients send
JSON requests ({"type":"new"}, {"type":"move","dir":"left"}, ...) and
receive the board, move records and spawned tile after each slide.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --ws :8080                # Also serve ws://host:8080/ws
  arcade serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Websocket server address (host:port); empty disables it")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger("arcade")

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Logger:      logger.WithPrefix("arcade-ssh"),
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(serve func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			// One server failing takes the other down
			stop()
		}()
	}

	run(server.ListenAndServe)

	if flagWSAddr != "" {
		// The websocket server keeps its own handle; the SSH server closes its store on shutdown
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("websocket server runs without scores database", "error", err)
			store = nil
		}
		if store != nil {
			defer store.Close()
		}
		wsServer := ws.NewServer(flagWSAddr, store, logger.WithPrefix("arcade-ws"))
		run(wsServer.ListenAndServe)
	}

	logger.Info("press Ctrl+C to stop", "ssh", flagSSHAddr, "ws", flagWSAddr)
	wg.Wait()
	return errors.Join(errs...)
}

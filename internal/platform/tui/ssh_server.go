package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/dodge/internal/config"
	"github.com/vovakirdan/dodge/internal/core"
	"github.com/vovakirdan/dodge/internal/leaderboard"
	"github.com/vovakirdan/dodge/internal/session"
	"github.com/vovakirdan/dodge/internal/storage"
)

// eventBuffer is the per-connection queue of server events.
const eventBuffer = 16

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.dodge/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database. Offline disables it.
	DBPath  string
	Offline bool

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Game     config.DodgeConfig
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultDodgeConfig(),
		TickRate:    60,
	}
}

// SSHServer serves Dodge sessions over SSH. All sessions share one
// leaderboard and one registry of connected players.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	recorder *leaderboard.Recorder
	registry *session.Registry
	logger   *log.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dodge-ssh",
	})

	srv := &SSHServer{
		config:   cfg,
		registry: session.NewRegistry(),
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	var store leaderboard.Store = leaderboard.Nop{}
	if !cfg.Offline {
		s, err := storage.Open(cfg.DBPath)
		if err != nil {
			// Continue without storage
			logger.Warn("could not open scores database, playing offline", "error", err)
		} else {
			srv.store = s
			store = s
		}
	}
	srv.recorder = leaderboard.NewRecorder(store, logger)

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".dodge", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		// The last middleware runs first: sessions are registered before
		// logging sees them.
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.sessionMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionKey stores the connection's session ID in the ssh context.
type sessionKey struct{}

// sessionMiddleware registers each connection with the registry for its
// lifetime.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := s.newSessionID()
		h := session.NewHandle(id, sshSession.User(), sshSession.RemoteAddr().String(), eventBuffer)
		sshSession.Context().SetValue(sessionKey{}, id)

		s.registry.Register(h)
		defer s.registry.Unregister(id)

		next(sshSession)
	}
}

// handleFor returns the registered handle of the connection owning ctx.
func (s *SSHServer) handleFor(ctx context.Context) *session.Handle {
	id, ok := ctx.Value(sessionKey{}).(session.ID)
	if !ok {
		return nil
	}
	h, ok := s.registry.Get(id)
	if !ok {
		return nil
	}
	return h
}

func (s *SSHServer) newSessionID() session.ID {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return session.NewID(time.Now(), s.rng)
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	h := s.handleFor(sshSession.Context())

	runtime := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	opts := Options{
		Config:     s.config.Game,
		Runtime:    runtime,
		Recorder:   s.recorder,
		PlayerName: sshSession.User(),
		Registry:   s.registry,
		Handle:     h,
		Logger:     s.logger,
	}
	if h != nil {
		opts.SessionID = h.ID()
	}

	return NewModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		h := s.handleFor(sshSession.Context())
		if h == nil {
			s.logger.Warn("unregistered session", "user", sshSession.User(), "remote", sshSession.RemoteAddr().String())
			next(sshSession)
			return
		}

		s.logSessionStarted(h)
		next(sshSession)
		s.logSessionEnded(h)
	}
}

func (s *SSHServer) logSessionStarted(h *session.Handle) {
	s.logger.Info("session started",
		"id", h.ID(),
		"user", h.User(),
		"remote", h.Remote(),
		"online", s.registry.Count(),
	)
}

func (s *SSHServer) logSessionEnded(h *session.Handle) {
	s.logger.Info("session ended",
		"id", h.ID(),
		"user", h.User(),
		"remote", h.Remote(),
		"duration", time.Since(h.StartedAt()).Round(time.Second),
	)
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server",
		"address", s.config.Address,
		"offline", s.recorder.Offline(),
	)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores database", "error", err)
	}
	s.store = nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

package tui

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodge/internal/session"
)

func newTestSSHServer(buf *bytes.Buffer) *SSHServer {
	return &SSHServer{
		config:   DefaultSSHServerConfig(),
		registry: session.NewRegistry(),
		logger:   log.New(buf),
	}
}

func TestHandleFor(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSSHServer(&buf)

	h := session.NewHandle("1700000000000-abcdefghi", "ada", "10.0.0.7:5122", 4)
	s.registry.Register(h)
	defer s.registry.Unregister(h.ID())

	tests := []struct {
		name string
		ctx  context.Context
		want *session.Handle
	}{
		{"registered", context.WithValue(context.Background(), sessionKey{}, h.ID()), h},
		{"unknown id", context.WithValue(context.Background(), sessionKey{}, session.ID("gone")), nil},
		{"no id", context.Background(), nil},
		{"wrong type", context.WithValue(context.Background(), sessionKey{}, "1700000000000-abcdefghi"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.handleFor(tt.ctx); got != tt.want {
				t.Errorf("handleFor() = %p, expected %p", got, tt.want)
			}
		})
	}
}

func TestSessionLogsUseHandle(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSSHServer(&buf)

	h := session.NewHandle("1700000000000-abcdefghi", "ada", "10.0.0.7:5122", 4)
	s.registry.Register(h)
	defer s.registry.Unregister(h.ID())

	s.logSessionStarted(h)
	started := buf.String()
	for _, want := range []string{"session started", "user=ada", "remote=10.0.0.7:5122", "online=1"} {
		if !strings.Contains(started, want) {
			t.Errorf("start log %q missing %q", started, want)
		}
	}

	buf.Reset()
	s.logSessionEnded(h)
	ended := buf.String()
	for _, want := range []string{"session ended", "user=ada", "remote=10.0.0.7:5122", "duration="} {
		if !strings.Contains(ended, want) {
			t.Errorf("end log %q missing %q", ended, want)
		}
	}
}

func TestNewSSHServerOffline(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	cfg.Offline = true

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if !srv.recorder.Offline() {
		t.Error("offline server should use the no-op store")
	}
	if srv.store != nil {
		t.Error("offline server should not open a database")
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, expected %q", srv.Addr(), cfg.Address)
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

package pxe

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Session owns the process-wide client handle. The handle is created on the
// first Connect and reused for the lifetime of the session; it is never
// refreshed.
type Session struct {
	mu     sync.Mutex
	url    string
	dial   Dialer
	client Client
	logger *zap.Logger
}

// NewSession returns a session that will dial url with dial on first use.
func NewSession(url string, dial Dialer, logger *zap.Logger) *Session {
	if dial == nil {
		dial = Dial
	}
	return &Session{
		url:    url,
		dial:   dial,
		logger: logger.Named("pxe-session"),
	}
}

// URL returns the node endpoint this session dials.
func (s *Session) URL() string {
	return s.url
}

// Connect returns the session's handle, dialing the node if there is none yet.
func (s *Session) Connect(ctx context.Context) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	client, err := s.dial(ctx, s.url)
	if err != nil {
		return nil, err
	}
	s.client = client
	s.logger.Info("Created PXE client", zap.String("url", s.url))
	return client, nil
}

// Client returns the established handle or ErrNotConnected.
func (s *Session) Client() (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil, ErrNotConnected
	}
	return s.client, nil
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

// Close releases the handle. A later Connect dials again.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

package debate

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

// Mode identifies which loop variant a session runs.
type Mode string

// Debate modes.
const (
	ModeMonitored   Mode = "monitored"
	ModeAdversarial Mode = "adversarial"
	ModeSimulated   Mode = "simulated"
)

// Session is one running debate: a thread, a topic, a mode, and the
// background task driving its loop. State is in-memory only and dies
// with the task.
type Session struct {
	ID       string
	ThreadID string
	Topic    string
	Mode     Mode

	cancel context.CancelFunc
}

// Registry tracks running debate sessions and hosts their loops as
// background tasks. Loops never share state; the registry only owns
// their lifecycles.
type Registry struct {
	baseCtx context.Context
	logger  zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	wg       conc.WaitGroup
}

// NewRegistry creates a registry. Loops launched later inherit from
// baseCtx, so canceling it stops every session.
func NewRegistry(baseCtx context.Context, logger zerolog.Logger) *Registry {
	return &Registry{
		baseCtx:  baseCtx,
		logger:   logger.With().Str("component", "registry").Logger(),
		sessions: make(map[string]*Session),
	}
}

// Launch starts a loop as a background task and returns its session.
// The run function owns all per-debate state; the registry removes the
// session when it returns.
func (r *Registry) Launch(mode Mode, threadID, topic string, run func(context.Context) error) *Session {
	ctx, cancel := context.WithCancel(r.baseCtx)
	session := &Session{
		ID:       uuid.NewString(),
		ThreadID: threadID,
		Topic:    topic,
		Mode:     mode,
		cancel:   cancel,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	logger := r.logger.With().
		Str("session", session.ID).
		Str("mode", string(mode)).
		Str("thread", threadID).
		Logger()
	logger.Info().Str("topic", topic).Msg("debate session started")

	r.wg.Go(func() {
		defer func() {
			cancel()
			r.mu.Lock()
			delete(r.sessions, session.ID)
			r.mu.Unlock()
		}()

		err := run(ctx)
		switch {
		case err == nil:
			logger.Info().Msg("debate session ended")
		case errors.Is(err, context.Canceled):
			logger.Info().Msg("debate session canceled")
		default:
			logger.Error().Err(err).Msg("debate session failed")
		}
	})

	return session
}

// Active returns the number of running sessions.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// StopAll cancels every session and waits for the loops to exit, up to
// the deadline on ctx.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	for _, session := range r.sessions {
		session.cancel()
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if recovered := r.wg.WaitAndRecover(); recovered != nil {
			r.logger.Error().
				Str("panic", recovered.String()).
				Msg("debate loop panicked")
		}
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

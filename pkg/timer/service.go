package timer

import (
	"context"
	"io"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/format"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/notify"
	"github.com/polka-dots/polka/pkg/payload"
	"github.com/polka-dots/polka/pkg/poll"
	"github.com/polka-dots/polka/pkg/state"
)

// Service applies timer operations to the persisted state
type Service struct {
	store    *state.Store[State]
	notifier notify.Notifier
	cfg      Config
	now      func() time.Time
}

// NewService creates a timer service backed by store
func NewService(store *state.Store[State], n notify.Notifier, cfg Config) *Service {
	return &Service{store: store, notifier: n, cfg: cfg, now: time.Now}
}

// WithClock replaces the time source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// State returns the persisted timer as-is
func (s *Service) State() State {
	return s.store.Load()
}

// Status returns the current phase and remaining seconds
func (s *Service) Status() (Phase, int) {
	st := s.store.Load()
	now := s.now()
	return st.Phase(now), st.Remaining(now)
}

// StatusLine renders the short report for the current state
func (s *Service) StatusLine() string {
	return StatusLine(s.store.Load(), s.now())
}

// Render renders the payload for the current state
func (s *Service) Render() payload.Payload {
	return Render(s.store.Load(), s.now(), s.cfg.Icons)
}

// Start begins a countdown of secs seconds, replacing any existing timer.
// The unit preference survives.
func (s *Service) Start(ctx context.Context, secs int) (State, error) {
	if secs <= 0 {
		s.notifier.Notify(ctx, "", "Invalid duration")
		return State{}, errors.Newf(errors.ErrInvalidInput, "duration must be positive, got %d seconds", secs)
	}

	st, err := s.store.Update(func(st *State) error {
		now := s.now().UTC()
		*st = State{
			Duration:  secs,
			StartTime: &now,
			CreatedAt: &now,
			Unit:      st.CurrentUnit(),
		}
		return nil
	})
	if err != nil {
		return st, err
	}

	logger := logging.GetLogger("timer")
	logger.Info().Int("seconds", secs).Msg("Timer started")
	s.notifier.Notify(ctx, "", "Started — "+format.Clock(secs))
	return st, nil
}

// pause freezes st at now. Less than a second left still counts as a
// second so the timer stays paused instead of vanishing.
func pause(st *State, now time.Time) {
	remaining := st.Remaining(now)
	if remaining < 1 {
		remaining = 1
	}
	st.Duration = remaining
	st.PausedAt = &now
	st.StartTime = nil
}

func resume(st *State, now time.Time) {
	st.StartTime = &now
	st.PausedAt = nil
}

// Pause freezes a running timer. Pausing anything else returns
// ErrNotRunning and leaves the state untouched.
func (s *Service) Pause(ctx context.Context) (State, error) {
	st, err := s.store.Update(func(st *State) error {
		now := s.now().UTC()
		if st.Phase(now) != PhaseRunning {
			return errors.New(errors.ErrNotRunning, "timer is not running")
		}
		pause(st, now)
		return nil
	})
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotRunning) {
			s.notifier.Notify(ctx, "", "Not running")
		}
		return st, err
	}

	s.notifier.Notify(ctx, "", "Paused — "+format.Clock(st.Duration))
	return st, nil
}

// Resume restarts a paused timer from now
func (s *Service) Resume(ctx context.Context) (State, error) {
	st, err := s.store.Update(func(st *State) error {
		now := s.now().UTC()
		if st.Phase(now) != PhasePaused {
			return errors.New(errors.ErrNotPaused, "timer is not paused")
		}
		resume(st, now)
		return nil
	})
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotPaused) {
			s.notifier.Notify(ctx, "", "Not paused")
		}
		return st, err
	}

	s.notifier.Notify(ctx, "", "Resumed — "+format.Clock(st.Duration))
	return st, nil
}

// Toggle pauses a running timer or resumes a paused one. The phase is
// read and changed under one lock; anything else is ErrNoTimer.
func (s *Service) Toggle(ctx context.Context) (State, error) {
	var phase Phase
	st, err := s.store.Update(func(st *State) error {
		now := s.now().UTC()
		phase = st.Phase(now)
		switch phase {
		case PhaseRunning:
			pause(st, now)
		case PhasePaused:
			resume(st, now)
		default:
			return errors.New(errors.ErrNoTimer, "no timer to toggle")
		}
		return nil
	})
	if err != nil {
		return st, err
	}

	if phase == PhaseRunning {
		s.notifier.Notify(ctx, "", "Paused — "+format.Clock(st.Duration))
	} else {
		s.notifier.Notify(ctx, "", "Resumed — "+format.Clock(st.Duration))
	}
	return st, nil
}

// Adjust adds delta seconds to the timer. The duration never drops below
// one second.
func (s *Service) Adjust(ctx context.Context, delta int) (State, error) {
	st, err := s.store.Update(func(st *State) error {
		now := s.now().UTC()
		if st.Phase(now) == PhaseNone {
			return errors.New(errors.ErrNoTimer, "no timer to adjust")
		}
		st.Duration += delta
		if st.Duration < 1 {
			st.Duration = 1
		}
		if st.Phase(now) != PhaseFinished {
			st.FinishedNotified = false
		}
		return nil
	})
	if err != nil && errors.IsErrorCode(err, errors.ErrNoTimer) {
		s.notifier.Notify(ctx, "", "No timer")
	}
	return st, err
}

// Step adjusts by amount in the given direction (+1 or -1). An empty
// amount moves by the unit's default step.
func (s *Service) Step(ctx context.Context, direction int, amount string) (State, error) {
	unit := s.store.Load().CurrentUnit()
	var delta int
	if amount == "" {
		delta = unit.DefaultStep() * unit.Seconds()
	} else {
		delta = AdjustDelta(amount, unit)
	}
	if direction < 0 {
		delta = -delta
	}
	return s.Adjust(ctx, delta)
}

// Stop clears the timer
func (s *Service) Stop() error {
	logger := logging.GetLogger("timer")
	logger.Info().Msg("Timer stopped")
	return s.store.Clear()
}

// SetUnit stores the adjust unit
func (s *Service) SetUnit(u Unit) (State, error) {
	if !u.Valid() {
		return s.State(), errors.Newf(errors.ErrInvalidInput, "unknown unit %q", u)
	}
	return s.store.Update(func(st *State) error {
		st.Unit = u
		return nil
	})
}

// CycleUnit advances minutes, hours, seconds, minutes...
func (s *Service) CycleUnit() (State, error) {
	return s.store.Update(func(st *State) error {
		st.Unit = st.CurrentUnit().Next()
		return nil
	})
}

// Tick renders the current payload and, the first time a timer is seen
// finished, sends the finished notification.
func (s *Service) Tick(ctx context.Context) payload.Payload {
	st := s.store.Load()
	now := s.now()
	if st.Phase(now) == PhaseFinished && !st.FinishedNotified {
		notifyNow := false
		updated, err := s.store.Update(func(cur *State) error {
			if cur.Phase(now) == PhaseFinished && !cur.FinishedNotified {
				cur.FinishedNotified = true
				notifyNow = true
			}
			return nil
		})
		if err != nil {
			logger := logging.GetLogger("timer")
			logger.Warn().Err(err).Msg("Failed to record finished notification")
		} else {
			st = updated
		}
		if notifyNow {
			s.notifier.Notify(ctx, "", "Time's up!")
		}
	}
	return Render(st, now, s.cfg.Icons)
}

// Watch emits the timer payload to w every interval until ctx ends
func (s *Service) Watch(ctx context.Context, w io.Writer) error {
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}
	loop := &poll.Loop{
		Interval: interval,
		Emitter:  poll.NewEmitter(w),
		Render: func(ctx context.Context) (payload.Payload, bool) {
			return s.Tick(ctx), true
		},
	}
	return loop.Run(ctx)
}

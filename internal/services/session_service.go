package services

import (
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/logging"
	"github.com/xvierd/pomo/internal/ports"
)

// SessionOptions configures a SessionService.
type SessionOptions struct {
	// AutoAdvance selects the next active task whenever an expiry enters a
	// work interval with no task in progress.
	AutoAdvance bool
}

// SessionService coordinates one SessionClock and one TaskQueue. All calls
// are serialised so a tick source and a presentation surface can share it.
type SessionService struct {
	mu          sync.Mutex
	clock       *domain.SessionClock
	queue       *domain.TaskQueue
	autoAdvance bool
	observers   []chan domain.Event
	closed      bool
}

// Ensure SessionService implements ports.SessionController.
var _ ports.SessionController = (*SessionService)(nil)

// NewSessionService creates a paused session at the start of a work interval
// with an empty task queue.
func NewSessionService(config domain.SessionConfig, opts SessionOptions) *SessionService {
	return &SessionService{
		clock:       domain.NewSessionClock(config),
		queue:       domain.NewTaskQueue(),
		autoAdvance: opts.AutoAdvance,
	}
}

// State returns the current snapshot.
func (s *SessionService) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Start lets the countdown advance. Applied is false if it was already running.
func (s *SessionService) Start() domain.Outcome {
	return s.apply("start", func() domain.Outcome {
		wasRunning := s.clock.Running()
		s.clock.Start()
		return domain.Outcome{Applied: !wasRunning}
	})
}

// Pause stops the countdown. Applied is false if it was already paused.
func (s *SessionService) Pause() domain.Outcome {
	return s.apply("pause", func() domain.Outcome {
		wasRunning := s.clock.Running()
		s.clock.Pause()
		return domain.Outcome{Applied: wasRunning}
	})
}

// Toggle starts a paused clock or pauses a running one.
func (s *SessionService) Toggle() domain.Outcome {
	return s.apply("toggle", func() domain.Outcome {
		if s.clock.Running() {
			s.clock.Pause()
		} else {
			s.clock.Start()
		}
		return domain.Outcome{Applied: true}
	})
}

// Reset restores the current interval's full duration, paused.
func (s *SessionService) Reset() domain.Outcome {
	return s.apply("reset", func() domain.Outcome {
		s.clock.Reset()
		return domain.Outcome{Applied: true}
	})
}

// SkipBreak abandons a break for a paused work interval. Not applied in Work.
func (s *SessionService) SkipBreak() domain.Outcome {
	return s.apply("skip_break", func() domain.Outcome {
		from := s.clock.Mode()
		if !s.clock.SkipBreak() {
			return domain.Outcome{}
		}
		out := domain.Outcome{Applied: true}
		s.autoSelectLocked(&out)
		logging.Logger.Info("Break skipped", "from", from)
		return out
	})
}

// Tick advances a running countdown by one second and performs the expiry
// when it finds the countdown at zero. It does nothing on a paused clock.
func (s *SessionService) Tick() domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.clock.Running() {
		return domain.Outcome{State: s.stateLocked()}
	}

	transition, expired := s.clock.Tick()
	out := domain.Outcome{Applied: true}
	eventType := domain.EventStateChanged

	if expired {
		out.Transition = &transition
		eventType = domain.EventIntervalExpired
		s.autoSelectLocked(&out)

		attrs := []any{
			"from", transition.From,
			"to", transition.To,
			"completed_work_sessions", transition.CompletedWorkSessions,
		}
		if current, ok := s.queue.Current(); ok {
			attrs = append(attrs, "task_id", current.ID)
		}
		logging.Logger.Info("Interval expired", attrs...)
	}

	out.State = s.stateLocked()
	s.publishLocked(domain.Event{Type: eventType, State: out.State, Transition: out.Transition})
	return out
}

// UpdateConfig replaces all four configured values at once.
func (s *SessionService) UpdateConfig(config domain.SessionConfig) domain.Outcome {
	return s.apply("update_config", func() domain.Outcome {
		s.clock.UpdateConfig(config)
		return domain.Outcome{Applied: true}
	})
}

// ApplyPreset is UpdateConfig with a named preset's values.
func (s *SessionService) ApplyPreset(preset domain.Preset) domain.Outcome {
	return s.UpdateConfig(preset.Config())
}

// Enqueue appends a task to the active list. Not applied for blank content.
func (s *SessionService) Enqueue(content string) domain.Outcome {
	return s.apply("enqueue", func() domain.Outcome {
		task, ok := s.queue.Enqueue(content)
		if !ok {
			return domain.Outcome{}
		}
		return domain.Outcome{Applied: true, Task: &task}
	})
}

// Reorder moves a task within one list.
func (s *SessionService) Reorder(list domain.TaskList, from, to int) domain.Outcome {
	return s.apply("reorder", func() domain.Outcome {
		return domain.Outcome{Applied: s.queue.Reorder(list, from, to)}
	})
}

// SelectNext takes the front active task as the current task.
func (s *SessionService) SelectNext() domain.Outcome {
	return s.apply("select_next", func() domain.Outcome {
		task, ok := s.queue.SelectNext()
		if !ok {
			return domain.Outcome{}
		}
		return domain.Outcome{Applied: true, Task: &task}
	})
}

// Complete moves the current task to the front of the completed list.
func (s *SessionService) Complete() domain.Outcome {
	return s.apply("complete", func() domain.Outcome {
		task, ok := s.queue.Complete()
		if !ok {
			return domain.Outcome{}
		}
		return domain.Outcome{Applied: true, Task: &task}
	})
}

// CompleteAndSelectNext completes the current task, then selects the next
// one if any remains.
func (s *SessionService) CompleteAndSelectNext() domain.Outcome {
	return s.apply("complete_and_select_next", func() domain.Outcome {
		done, next, ok := s.queue.CompleteAndSelectNext()
		if !ok {
			return domain.Outcome{}
		}
		return domain.Outcome{Applied: true, Task: &done, Next: next}
	})
}

// ReturnToQueue puts the current task back at the front of the active list.
func (s *SessionService) ReturnToQueue() domain.Outcome {
	return s.apply("return_to_queue", func() domain.Outcome {
		task, ok := s.queue.ReturnToQueue()
		if !ok {
			return domain.Outcome{}
		}
		return domain.Outcome{Applied: true, Task: &task}
	})
}

// FindTasks fuzzy-matches query against task content in both lists.
// Matches are ordered best first; an empty query matches nothing.
func (s *SessionService) FindTasks(query string) []domain.TaskMatch {
	s.mu.Lock()
	active := s.queue.Active()
	completed := s.queue.Completed()
	s.mu.Unlock()

	if query == "" {
		return nil
	}

	all := append(append([]domain.Task{}, active...), completed...)
	contents := make([]string, len(all))
	for i, task := range all {
		contents[i] = task.Content
	}

	found := fuzzy.Find(query, contents)
	matches := make([]domain.TaskMatch, 0, len(found))
	for _, m := range found {
		match := domain.TaskMatch{Task: all[m.Index], Score: m.Score, List: domain.ListActive, Index: m.Index}
		if m.Index >= len(active) {
			match.List = domain.ListCompleted
			match.Index = m.Index - len(active)
		}
		matches = append(matches, match)
	}
	return matches
}

// Subscribe registers an observer channel. Events are dropped for an
// observer whose buffer is full. Subscribing after Close returns a closed
// channel.
func (s *SessionService) Subscribe(buffer int) <-chan domain.Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan domain.Event, buffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.observers = append(s.observers, ch)
	return ch
}

// Close closes every observer channel. Intents still work afterwards but
// publish nothing.
func (s *SessionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.observers {
		close(ch)
	}
	s.observers = nil
}

func (s *SessionService) apply(intent string, fn func() domain.Outcome) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := fn()
	out.State = s.stateLocked()

	attrs := []any{"intent", intent, "applied", out.Applied}
	if out.Task != nil {
		attrs = append(attrs, "task_id", out.Task.ID)
	}
	logging.Logger.Debug("Session intent", attrs...)

	if out.Applied {
		s.publishLocked(domain.Event{Type: domain.EventStateChanged, State: out.State, Transition: out.Transition})
	}
	return out
}

// autoSelectLocked takes the next task when a work interval begins with
// nothing in progress.
func (s *SessionService) autoSelectLocked(out *domain.Outcome) {
	if !s.autoAdvance || s.clock.Mode() != domain.IntervalWork {
		return
	}
	if _, ok := s.queue.Current(); ok {
		return
	}
	if task, ok := s.queue.SelectNext(); ok {
		out.Task = &task
		logging.Logger.Debug("Task auto-selected", "task_id", task.ID)
	}
}

func (s *SessionService) stateLocked() domain.State {
	return domain.State{
		Clock: s.clock.Snapshot(),
		Queue: s.queue.Snapshot(),
	}
}

func (s *SessionService) publishLocked(event domain.Event) {
	for _, ch := range s.observers {
		select {
		case ch <- event:
		default:
		}
	}
}

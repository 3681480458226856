package domain

import "time"

// TaskQueue keeps pending tasks in order, at most one current task and the
// completed tasks, most recent first. Every task lives in exactly one of the
// three places. Calls that do not apply to the current state change nothing
// and report false. It is not safe for concurrent use.
type TaskQueue struct {
	active    []Task
	current   *Task
	completed []Task
	now       func() time.Time
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{now: time.Now}
}

// Enqueue appends a new task to the back of the active list. Blank content
// is rejected and nothing is added.
func (q *TaskQueue) Enqueue(content string) (Task, bool) {
	task, err := NewTask(content)
	if err != nil {
		return Task{}, false
	}
	q.active = append(q.active, task)
	return task, true
}

// Reorder moves the task at index from to index to within the same list.
// Out-of-range indices leave the list untouched.
func (q *TaskQueue) Reorder(list TaskList, from, to int) bool {
	switch list {
	case ListActive:
		return move(q.active, from, to)
	case ListCompleted:
		return move(q.completed, from, to)
	default:
		return false
	}
}

func move(tasks []Task, from, to int) bool {
	n := len(tasks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	moved := tasks[from]
	if from < to {
		copy(tasks[from:to], tasks[from+1:to+1])
	} else {
		copy(tasks[to+1:from+1], tasks[to:from])
	}
	tasks[to] = moved
	return true
}

// SelectNext makes the front of the active list the current task.
// It does nothing if a task is already current or the active list is empty.
func (q *TaskQueue) SelectNext() (Task, bool) {
	if q.current != nil || len(q.active) == 0 {
		return Task{}, false
	}
	next := q.active[0]
	q.active = append(q.active[:0:0], q.active[1:]...)
	q.current = &next
	return next, true
}

// Complete moves the current task to the front of the completed list.
func (q *TaskQueue) Complete() (Task, bool) {
	if q.current == nil {
		return Task{}, false
	}
	done := *q.current
	completedAt := q.now()
	done.CompletedAt = &completedAt
	q.completed = append([]Task{done}, q.completed...)
	q.current = nil
	return done, true
}

// CompleteAndSelectNext completes the current task and selects the next one
// in a single step. next is nil when the active list was empty.
func (q *TaskQueue) CompleteAndSelectNext() (done Task, next *Task, ok bool) {
	done, ok = q.Complete()
	if !ok {
		return Task{}, nil, false
	}
	if task, selected := q.SelectNext(); selected {
		next = &task
	}
	return done, next, true
}

// ReturnToQueue puts the current task back at the front of the active list.
func (q *TaskQueue) ReturnToQueue() (Task, bool) {
	if q.current == nil {
		return Task{}, false
	}
	task := *q.current
	q.active = append([]Task{task}, q.active...)
	q.current = nil
	return task, true
}

// Current returns the current task, if any.
func (q *TaskQueue) Current() (Task, bool) {
	if q.current == nil {
		return Task{}, false
	}
	return *q.current, true
}

// Active returns a copy of the pending tasks, front first.
func (q *TaskQueue) Active() []Task {
	return append([]Task{}, q.active...)
}

// Completed returns a copy of the completed tasks, most recent first.
func (q *TaskQueue) Completed() []Task {
	return append([]Task{}, q.completed...)
}

// List returns a copy of the named list.
func (q *TaskQueue) List(list TaskList) []Task {
	if list == ListCompleted {
		return q.Completed()
	}
	return q.Active()
}

// Len returns the number of tasks held by the queue in all three places.
func (q *TaskQueue) Len() int {
	n := len(q.active) + len(q.completed)
	if q.current != nil {
		n++
	}
	return n
}

// Snapshot captures the queue state.
func (q *TaskQueue) Snapshot() QueueSnapshot {
	snap := QueueSnapshot{
		Active:    q.Active(),
		Completed: q.Completed(),
	}
	if q.current != nil {
		current := *q.current
		snap.Current = &current
	}
	return snap
}

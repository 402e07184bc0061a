// internal/schedule/scheduler.go
package schedule

import "container/heap"

// epsilon absorbs float drift from summing many small frame deltas.
const epsilon = 1e-9

// TaskID identifies a scheduled task. The zero value is never issued.
type TaskID uint64

// Task is resumed once simulated time reaches its due time.
type Task func(now float64)

type item struct {
	id    TaskID
	due   float64
	seq   uint64
	run   Task
	index int
}

type queue []*item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}
func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *queue) Push(x any) {
	it := x.(*item)
	it.index = len(*q)
	*q = append(*q, it)
}
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*q = old[:n-1]
	return it
}

// Scheduler - очередь отложенных задач в симулированном времени.
// Заменяет корутины: задача выполняется, когда часы симуляции доходят до её срока,
// и может сама перепланировать продолжение.
type Scheduler struct {
	now   float64
	seq   uint64
	q     queue
	byID  map[TaskID]*item
	nextI TaskID
}

func New() *Scheduler {
	return &Scheduler{byID: make(map[TaskID]*item)}
}

// Now returns the current simulated time in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// After schedules run to fire delay seconds from now. A non-positive delay fires
// on the next Advance, including Advance(0).
func (s *Scheduler) After(delay float64, run Task) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextI++
	s.seq++
	it := &item{id: s.nextI, due: s.now + delay, seq: s.seq, run: run}
	heap.Push(&s.q, it)
	s.byID[it.id] = it
	return it.id
}

// Cancel drops a pending task. It reports false if the task already ran or was cancelled.
func (s *Scheduler) Cancel(id TaskID) bool {
	it, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	heap.Remove(&s.q, it.index)
	return true
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int { return len(s.q) }

// Advance moves the clock forward by dt and runs every task that became due, in
// due-time order. Tasks scheduled while advancing run in the same call if they
// are already due.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}
	for len(s.q) > 0 {
		next := s.q[0]
		if next.due > s.now+epsilon {
			return
		}
		heap.Pop(&s.q)
		delete(s.byID, next.id)
		next.run(s.now)
	}
}

// Reset drops all pending tasks and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.q = nil
	s.byID = make(map[TaskID]*item)
	s.now = 0
}

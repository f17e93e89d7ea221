// SPDX-License-Identifier: EPL-2.0

package sound

import "time"

// Request is one pending decode.
type Request struct {
	Filename string
	Handle   Handle
	Loaded   bool
	Failed   bool
}

// LoadQueue is a FIFO of decode requests handed out at most once per interval.
type LoadQueue struct {
	items    []*Request
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func NewLoadQueue(interval time.Duration) *LoadQueue {
	return &LoadQueue{interval: interval, now: time.Now}
}

// SetClock replaces the time source.
func (q *LoadQueue) SetClock(now func() time.Time) { q.now = now }

func (q *LoadQueue) SetInterval(d time.Duration) { q.interval = d }

// Enqueue appends a request. An empty filename is ignored.
func (q *LoadQueue) Enqueue(h Handle, filename string) bool {
	if filename == "" || h < 0 {
		return false
	}

	q.items = append(q.items, &Request{Filename: filename, Handle: h})
	return true
}

// Next pops the head request. The rate limit is charged even when the queue
// is empty, so polling an empty queue also waits out the interval.
func (q *LoadQueue) Next() (*Request, bool) {
	now := q.now()
	if !q.last.IsZero() && now.Sub(q.last) < q.interval {
		return nil, false
	}
	q.last = now

	if len(q.items) == 0 {
		return nil, false
	}

	req := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}

	return req, true
}

func (q *LoadQueue) Len() int { return len(q.items) }

// Clear drops every pending request and returns how many were discarded.
func (q *LoadQueue) Clear() int {
	n := len(q.items)
	clear(q.items)
	q.items = nil
	return n
}

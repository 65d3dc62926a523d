package event

import (
	"sync/atomic"

	"github.com/lixenwraith/billiard/parameter"
)

// RequestQueue is a lock-free MPSC ring buffer of state mutation requests
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (tick driver)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest requests overwritten when full, counted in Dropped
type RequestQueue struct {
	requests  [parameter.RequestQueueSize]Request
	published [parameter.RequestQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                           // Read index
	tail      atomic.Uint64                           // Write index
	dropped   atomic.Uint64
}

func NewRequestQueue() *RequestQueue {
	return &RequestQueue{}
}

// Push adds a request using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (q *RequestQueue) Push(req Request) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.RequestBufferMask

			q.requests[idx] = req
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread requests
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.RequestQueueSize {
				if q.head.CompareAndSwap(currentHead, nextTail-parameter.RequestQueueSize) {
					q.dropped.Add(1)
				}
			}
			return
		}
	}
}

// Consume appends all pending requests in FIFO order to dst and advances head
// Single-consumer design (tick driver). Checks published flags for safety
func (q *RequestQueue) Consume(dst []Request) []Request {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return dst
		}

		available := currentTail - currentHead
		if available > parameter.RequestQueueSize {
			available = parameter.RequestQueueSize
			currentHead = currentTail - parameter.RequestQueueSize
		}

		start := len(dst)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & parameter.RequestBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			dst = append(dst, q.requests[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(dst)-start)
		if q.head.CompareAndSwap(currentHead, newHead) {
			return dst
		}
		dst = dst[:start]
	}
}

// Len returns approximate pending request count
func (q *RequestQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.RequestQueueSize {
		return parameter.RequestQueueSize
	}
	return diff
}

// Dropped returns the number of requests lost to overflow since creation
func (q *RequestQueue) Dropped() uint64 {
	return q.dropped.Load()
}

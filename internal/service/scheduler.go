package service

import (
	"time"

	"github.com/benbeisheim/duckboard-backend/internal/board"
)

// loopScheduler turns frame requests into timers whose callbacks run on the
// session loop. It is only touched from the loop goroutine; the timers
// themselves only post.
type loopScheduler struct {
	interval time.Duration
	post     func(func()) bool
	next     board.FrameID
	timers   map[board.FrameID]*time.Timer
}

func newLoopScheduler(interval time.Duration, post func(func()) bool) *loopScheduler {
	return &loopScheduler{
		interval: interval,
		post:     post,
		timers:   make(map[board.FrameID]*time.Timer),
	}
}

func (s *loopScheduler) RequestFrame(fn func(now time.Time)) board.FrameID {
	s.next++
	id := s.next
	s.timers[id] = time.AfterFunc(s.interval, func() {
		s.post(func() {
			// dropped if cancelled while queued
			if _, ok := s.timers[id]; !ok {
				return
			}
			delete(s.timers, id)
			fn(time.Now())
		})
	})
	return id
}

func (s *loopScheduler) CancelFrame(id board.FrameID) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *loopScheduler) stopAll() {
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *loopScheduler) pending() int { return len(s.timers) }

package services

import (
	"time"

	"gym_backend/internal/events"
)

// Clock - источник текущего времени (подменяется в тестах)
type Clock func() time.Time

func defaultClock(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}

func publisherOrNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.Nop{}
	}
	return p
}

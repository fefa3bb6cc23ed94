package events

import "time"

var LoadCompletedTopic = "LoadCompletedEvent"

type LoadCompleted struct {
	LoadID    string
	Companies int
	Vacancies int
	Rejected  int
	Duration  time.Duration
}

package http

import (
	"context"

	"launchpad/internal/async"
	"launchpad/internal/event"
	"launchpad/internal/generator"
	"launchpad/internal/logging"
	"launchpad/internal/store"
	"launchpad/internal/swarm"
)

// Progress message types shared by the SSE and WebSocket streams.
const (
	progressTaskStarted  = "task_started"
	progressTaskFinished = "task_finished"
	progressResult       = "result"
	progressError        = "error"
)

type progressMessage struct {
	Type       string            `json:"type"`
	Task       string            `json:"task,omitempty"`
	Status     string            `json:"status,omitempty"`
	DurationMS int64             `json:"duration_ms,omitempty"`
	Error      string            `json:"error,omitempty"`
	Result     *generator.Result `json:"result,omitempty"`
}

// channelObserver forwards task progress into a channel until ctx ends.
type channelObserver struct {
	ctx context.Context
	out chan<- progressMessage
}

func (o channelObserver) send(msg progressMessage) {
	select {
	case o.out <- msg:
	case <-o.ctx.Done():
	}
}

func (o channelObserver) TaskStarted(name string) {
	o.send(progressMessage{Type: progressTaskStarted, Task: name})
}

func (o channelObserver) TaskFinished(outcome swarm.Outcome) {
	msg := progressMessage{
		Type:       progressTaskFinished,
		Task:       outcome.Name,
		Status:     "ok",
		DurationMS: outcome.Duration.Milliseconds(),
	}
	if outcome.Failed() {
		msg.Status = "fallback"
		msg.Error = outcome.Err.Error()
	}
	o.send(msg)
}

// streamGeneration runs generation in the background and returns the
// progress channel. The channel ends with a result or error message and is
// then closed.
func streamGeneration(ctx context.Context, gen *generator.Service, events *store.EventStore, in event.Input, logger logging.Logger) <-chan progressMessage {
	out := make(chan progressMessage, 16)
	observer := channelObserver{ctx: ctx, out: out}

	async.Go(logger, "http.streamGeneration", func() {
		defer close(out)
		res, err := gen.GenerateEventObserved(ctx, in, observer)
		if err != nil {
			observer.send(progressMessage{Type: progressError, Error: err.Error()})
			return
		}
		storeEvent(events, res.Event, logger)
		observer.send(progressMessage{Type: progressResult, Result: &res})
	})
	return out
}

package driver

import "time"

// Stage names the work done on a file.
type Stage string

const (
	// StageFormat is the format stage.
	StageFormat Stage = "format"
	// StageCheck is the check stage.
	StageCheck Stage = "check"
)

// Status captures progress state of one file.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusChanged is a successful format run that rewrote (or would rewrite) the file.
	StatusChanged Status = "changed"
	StatusError   Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; workers emit from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

func emitQueued(sink ProgressSink, stage Stage, files []string) {
	if sink == nil {
		return
	}
	for _, f := range files {
		sink.OnEvent(Event{File: f, Stage: stage, Status: StatusQueued})
	}
}

// finished maps a per-file outcome to its final event.
func finished(file string, stage Stage, changed bool, err error, start time.Time) Event {
	ev := Event{File: file, Stage: stage, Status: StatusDone, Err: err, Elapsed: time.Since(start)}
	switch {
	case err != nil:
		ev.Status = StatusError
	case changed:
		ev.Status = StatusChanged
	}
	return ev
}

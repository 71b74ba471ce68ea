package cyclorama

import (
	"log/slog"
	"sync"

	Cp "github.com/maroda/cyclorama/plugin"
	Ct "github.com/maroda/cyclorama/types"
)

const journalQueue = 1024

// Journal hands issued tween commands to the output on its own goroutine.
// Record is called from the tween sink while the Timeline lock is held,
// so it never blocks: a full queue drops the command.
type Journal struct {
	MU      sync.Mutex
	Output  Cp.OutputAdapter
	Queue   chan Ct.TweenCommand
	WG      sync.WaitGroup
	OnDrop  func()
	stopped bool
}

func NewJournal(out Cp.OutputAdapter, size int) *Journal {
	if size <= 0 {
		size = journalQueue
	}
	return &Journal{
		Output: out,
		Queue:  make(chan Ct.TweenCommand, size),
	}
}

// Start the writer
func (j *Journal) Start() {
	j.WG.Add(1)
	go func() {
		defer j.WG.Done()
		for cmd := range j.Queue {
			if err := j.Output.WriteCommand(&cmd); err != nil {
				slog.Error("Output write failed",
					slog.String("output", j.Output.Type()),
					slog.Any("Error", err))
			}
		}
	}()
}

// Record queues a command, false when it was dropped
func (j *Journal) Record(cmd Ct.TweenCommand) bool {
	j.MU.Lock()
	defer j.MU.Unlock()

	if j.stopped {
		return false
	}
	select {
	case j.Queue <- cmd:
		return true
	default:
		slog.Debug("Journal queue full, dropping command",
			slog.String("handle", cmd.Handle),
			slog.Uint64("seq", cmd.Seq))
		if j.OnDrop != nil {
			j.OnDrop()
		}
		return false
	}
}

// Stop drains what is queued and waits for the writer, safe to call more than once
func (j *Journal) Stop() {
	j.MU.Lock()
	if j.stopped {
		j.MU.Unlock()
		return
	}
	j.stopped = true
	close(j.Queue)
	j.MU.Unlock()

	j.WG.Wait()
}

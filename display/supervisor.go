package cyclorama

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type FrameSupervisor struct {
	View     *View
	Ticker   *time.Ticker
	StopChan chan struct{}
	WG       sync.WaitGroup
}

// NewFrameSupervisor is a wrapper around the View that manages the ticking goroutine
// They are strongly coupled, one knows about the other
func (v *View) NewFrameSupervisor() *FrameSupervisor {
	fs := &FrameSupervisor{
		View: v,
	}
	v.Supervisor = fs
	return fs
}

// Start the FrameSupervisor
func (f *FrameSupervisor) Start() {
	f.StopChan = make(chan struct{})
	f.Ticker = time.NewTicker(f.View.frameInterval())
	f.View.lastTick = time.Time{}

	f.WG.Add(1)
	go func() {
		defer f.WG.Done()
		defer f.Ticker.Stop()

		// Panic recovery and logging
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic in frame loop", slog.Any("panic", r))
				slog.Error("Recovered from panic", slog.String("stack", string(debug.Stack())))
			}
		}()

		slog.Info("Starting frame loop", slog.Int("fps", f.View.FPS))
		for {
			select {
			case <-f.Ticker.C:
				f.View.TickFrame()
			case <-f.StopChan:
				return
			}
		}
	}()
}

// Stop the FrameSupervisor, safe to call more than once
func (f *FrameSupervisor) Stop() {
	if f.StopChan != nil {
		close(f.StopChan)
		f.WG.Wait()
		f.StopChan = nil
	}
}

// Restart the FrameSupervisor
func (f *FrameSupervisor) Restart() {
	f.Stop()
	f.Start()
}

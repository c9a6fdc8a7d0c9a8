package termrender

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/grove"
)

// Config configures Run.
type Config struct {
	// SceneW and SceneH are the scene-space size mapped onto the screen.
	SceneW, SceneH float64
	// TPS is the tick rate. Zero means 30.
	TPS int
}

// TriggerForKey maps a key event to a scene trigger: 'p' pauses and Space
// resumes.
func TriggerForKey(ev *tcell.EventKey) (grove.Trigger, bool) {
	if ev.Key() != tcell.KeyRune {
		return grove.TriggerNone, false
	}
	switch ev.Rune() {
	case 'p', 'P':
		return grove.TriggerPause, true
	case ' ':
		return grove.TriggerResume, true
	}
	return grove.TriggerNone, false
}

// isQuit reports whether ev should end Run.
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'))
}

// Run drives s on screen until ctx is done or the user quits with q, Esc or
// Ctrl-C. A left click pauses like 'p'. screen must already be initialized;
// Run does not finalize it. Before returning, Run wakes its event reader with
// an interrupt event and waits for it to exit, so the caller may poll screen
// again afterwards.
func Run(ctx context.Context, screen tcell.Screen, s *grove.Scene, cfg Config) error {
	tps := cfg.TPS
	if tps <= 0 {
		tps = 30
	}
	r := NewRenderer(screen, cfg.SceneW, cfg.SceneH)
	screen.EnableMouse()
	log := s.Logger()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-quit:
				return
			default:
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer func() {
		close(quit)
		if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
			// The queue is full, so PollEvent returns without our event.
			log.Debug("terminal wake-up not posted", slog.Any("err", err))
		}
		<-exited
	}()

	period := time.Second / time.Duration(tps)
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	last := time.Now()
	var buttons tcell.ButtonMask

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					log.Info("terminal loop quit")
					return nil
				}
				if trig, ok := TriggerForKey(ev); ok {
					s.Event(grove.Event{Kind: grove.EventPress, Trigger: trig})
				}
			case *tcell.EventMouse:
				now := ev.Buttons()
				if now&tcell.Button1 != 0 && buttons&tcell.Button1 == 0 {
					s.Event(grove.Event{Kind: grove.EventPress, Trigger: grove.TriggerPause})
				}
				if now&tcell.Button1 == 0 && buttons&tcell.Button1 != 0 {
					s.Event(grove.Event{Kind: grove.EventRelease, Trigger: grove.TriggerPause})
				}
				buttons = now
			case *tcell.EventResize:
				screen.Sync()
				r.Fit(cfg.SceneW, cfg.SceneH)
				cols, rows := screen.Size()
				log.Debug("terminal resized", slog.Int("cols", cols), slog.Int("rows", rows))
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Event(grove.Event{Kind: grove.EventTick, DT: dt})
			screen.Clear()
			s.Draw(grove.Identity, r)
			screen.Show()
		}
	}
}

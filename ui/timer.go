package ui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// timer shows the timer's elapsed time. It runs locally between updates so the display
// keeps moving when the board is quiet
type timer struct {
	startTime time.Time
	mtx       *sync.Mutex
	text      *canvas.Text
	stop      chan struct{}
}

func newTimer() *timer {
	text := canvas.NewText("00:00.0", nil)
	text.TextSize = 28
	text.TextStyle = fyne.TextStyle{Monospace: true}
	return &timer{
		startTime: time.Now(),
		mtx:       &sync.Mutex{},
		text:      text,
		stop:      make(chan struct{}),
	}
}

// Sync aligns the display with elapsed time reported at now
func (t *timer) Sync(now time.Time, elapsed time.Duration) {
	t.mtx.Lock()
	t.startTime = now.Add(-elapsed)
	t.mtx.Unlock()
}

func (t *timer) Stop() {
	close(t.stop)
}

func (t *timer) Go() {
	ticker := time.NewTicker(100 * time.Millisecond)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
			}
			fyne.Do(func() {
				t.mtx.Lock()
				elapsed := time.Since(t.startTime)
				t.mtx.Unlock()

				minutes := int(elapsed / time.Minute)
				tenths := int(elapsed%time.Minute) / int(100*time.Millisecond)
				t.text.Text = fmt.Sprintf("%02d:%02d.%d", minutes, tenths/10, tenths%10)
				t.text.Refresh()
			})
		}
	}()
}

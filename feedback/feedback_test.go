package feedback

import (
	"testing"
	"time"

	"github.com/calvinmclean/touchandgo"
)

func TestRenderSolid(t *testing.T) {
	states := []State{
		{},
		{Color: touchandgo.Blank, Visible: false, LastFlash: 10 * time.Second},
		{Color: touchandgo.Red, Visible: true, LastFlash: 10 * time.Second, FlashCount: 4},
	}

	for _, s := range states {
		got := Render(&s, touchandgo.Green, Solid, 10*time.Second, true)
		if got != touchandgo.Green {
			t.Errorf("expected solid green, got %v", got)
		}
		if !s.Visible || s.Color != touchandgo.Green {
			t.Errorf("unexpected state after solid render: %+v", s)
		}
	}
}

func TestRenderFlash(t *testing.T) {
	tests := []struct {
		name         string
		countFlashes bool
		wantCount    uint
	}{
		{"Counting", true, 2},
		{"NotCounting", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Color: touchandgo.Yellow, Visible: true}

			steps := []struct {
				now  time.Duration
				want bool
			}{
				{100 * time.Millisecond, true},
				{400 * time.Millisecond, false},
				{700 * time.Millisecond, false},
				{800 * time.Millisecond, true},
				{1200 * time.Millisecond, false},
				{1600 * time.Millisecond, true},
			}
			for _, step := range steps {
				got := Render(&s, touchandgo.Yellow, Program, step.now, tt.countFlashes)
				visible := got == touchandgo.Yellow
				if visible != step.want || s.Visible != step.want {
					t.Errorf("at %v expected visible=%v, got color %v", step.now, step.want, got)
				}
			}

			if s.FlashCount != tt.wantCount {
				t.Errorf("expected %d flashes, got %d", tt.wantCount, s.FlashCount)
			}
		})
	}
}

func TestRenderFlashPicksUpNewColor(t *testing.T) {
	s := State{Color: touchandgo.Blank, Visible: false}
	got := Render(&s, touchandgo.White, Warning, time.Second, false)
	if got != touchandgo.White {
		t.Errorf("expected white, got %v", got)
	}
}

package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/calvinmclean/touchandgo"
)

type fakePort struct {
	io.Reader

	mtx     sync.Mutex
	written bytes.Buffer
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.written.Write(b)
}

func (p *fakePort) writtenString() string {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.written.String()
}

func TestRun(t *testing.T) {
	input := strings.Join([]string{
		"booting",
		touchandgo.Event{Kind: touchandgo.EventParams, Params: touchandgo.DefaultParameters()}.String(),
		touchandgo.Event{Elapsed: 3 * time.Second, Kind: touchandgo.EventMode, Mode: touchandgo.ModeDelay, Color: touchandgo.Blue}.String(),
		"@12 hover",
		touchandgo.Event{Elapsed: 5 * time.Second, Kind: touchandgo.EventNotice, Note: "parameters not saved"}.String(),
	}, "\r\n") + "\r\n"

	received := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	var events []touchandgo.Event
	sink := SinkFunc(func(_ context.Context, at time.Time, e touchandgo.Event) error {
		if !at.Equal(received) {
			t.Errorf("unexpected received time: %v", at)
		}
		events = append(events, e)
		return errors.New("sink errors are not fatal")
	})

	port := &fakePort{Reader: strings.NewReader(input)}
	m := New(port, WithSinks(sink), WithClock(func() time.Time { return received }))

	var out bytes.Buffer
	err := m.Run(context.Background(), nil, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(events), events)
	}
	if events[1].Mode != touchandgo.ModeDelay || events[1].Color != touchandgo.Blue {
		t.Errorf("unexpected event: %+v", events[1])
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected every line echoed, got %q", lines)
	}
	if lines[0] != "booting" || lines[3] != "@12 hover" {
		t.Errorf("expected plain lines unchanged, got %q", lines)
	}
	if !strings.Contains(lines[1], "delay 30s, flight 4m0s, cruise 60%") {
		t.Errorf("unexpected parameters line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "delay") || !strings.Contains(lines[2], "3.00s") {
		t.Errorf("unexpected mode line: %q", lines[2])
	}
}

func TestRunForwardsInput(t *testing.T) {
	pr, pw := io.Pipe()
	port := &fakePort{Reader: pr}
	m := New(port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- m.Run(ctx, strings.NewReader("D"), io.Discard)
	}()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if port.writtenString() == "D" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	pw.Close()

	if port.writtenString() != "D" {
		t.Errorf("expected command forwarded, got %q", port.writtenString())
	}
}

type closingPort struct {
	fakePort
	pr     *io.PipeReader
	closed chan struct{}
}

func (p *closingPort) Close() error {
	close(p.closed)
	return p.pr.Close()
}

func TestRunClosesPortOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	port := &closingPort{fakePort: fakePort{Reader: pr}, pr: pr, closed: make(chan struct{})}
	m := New(port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- m.Run(ctx, nil, io.Discard)
	}()

	_, err := pw.Write([]byte("booting\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	select {
	case <-port.closed:
	default:
		t.Error("expected port closed")
	}

	// closing the port closed the read side of the pipe
	_, err = pw.Write([]byte("late\n"))
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("expected closed pipe, got %v", err)
	}
}

func TestParseBaudRate(t *testing.T) {
	if v, err := ParseBaudRate("115200"); err != nil || v != 115200 {
		t.Errorf("unexpected result: %d %v", v, err)
	}
	if _, err := ParseBaudRate("fast"); err == nil {
		t.Error("expected error")
	}
}

func TestOpenSerialNone(t *testing.T) {
	if _, err := OpenSerial(SerialPortNone, 115200); err == nil {
		t.Error("expected error")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Valid", Config{SerialPort: "/dev/ttyACM0", BaudRate: "115200"}, false},
		{"WithTWChart", Config{SerialPort: "/dev/ttyACM0", BaudRate: "115200", TWChartAddr: "http://localhost:8080", SessionName: "Flight"}, false},
		{"NoPort", Config{BaudRate: "115200"}, true},
		{"PortNone", Config{SerialPort: SerialPortNone, BaudRate: "115200"}, true},
		{"BadBaudRate", Config{SerialPort: "/dev/ttyACM0", BaudRate: "0"}, true},
		{"TWChartWithoutSession", Config{SerialPort: "/dev/ttyACM0", BaudRate: "115200", TWChartAddr: "http://localhost:8080"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

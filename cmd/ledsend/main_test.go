package main

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/junsooki/ledsim/internal/capture"
	"github.com/junsooki/ledsim/internal/encoder"
	"github.com/junsooki/ledsim/internal/frame"
)

type recordingSender struct {
	frames [][]byte
}

func (s *recordingSender) SendFrame(data []byte) error {
	s.frames = append(s.frames, append([]byte(nil), data...))
	return nil
}

func (s *recordingSender) Close() error { return nil }

func TestStreamFramesStopsAtCount(t *testing.T) {
	dim := frame.Dimension{Width: 2, Height: 1}
	frames := make(chan *capture.Frame, 4)
	for i := 0; i < 4; i++ {
		g := frame.NewGrid(dim)
		g.Fill(frame.Color{R: uint8(i)})
		frames <- &capture.Frame{Grid: g, Seq: uint64(i)}
	}

	snd := &recordingSender{}
	sent := streamFrames(context.Background(), frames, encoder.NewRGBEncoder(dim), snd, 3)
	if sent != 3 || len(snd.frames) != 3 {
		t.Fatalf("sent %d frames (%d recorded), want 3", sent, len(snd.frames))
	}
	if !bytes.Equal(snd.frames[2], []byte{2, 0, 0, 2, 0, 0}) {
		t.Errorf("third frame = %v", snd.frames[2])
	}
}

func TestStreamFramesStopsOnClose(t *testing.T) {
	frames := make(chan *capture.Frame)
	close(frames)
	if sent := streamFrames(context.Background(), frames, encoder.NewRGBEncoder(frame.Dimension{Width: 1, Height: 1}), &recordingSender{}, 0); sent != 0 {
		t.Errorf("sent = %d", sent)
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad flag", []string{"-nosuchflag"}, 2},
		{"bad pattern", []string{"-pattern", "plaid"}, 1},
		{"bad dimension", []string{"-width", "0"}, 1},
		{"unreachable websocket", []string{"-ws", "ws://127.0.0.1:1/frames"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRunSendsCount(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	args := []string{"-addr", conn.LocalAddr().String(), "-width", "2", "-height", "1", "-fps", "200", "-count", "2"}
	if got := run(args); got != 0 {
		t.Fatalf("run = %d, want 0", got)
	}

	buf := make([]byte, 16)
	for i := 0; i < 2; i++ {
		if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatal(err)
		}
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			t.Fatalf("datagram %d: %v", i, err)
		}
		if n != 6 {
			t.Errorf("datagram %d is %d bytes, want 6", i, n)
		}
	}
}

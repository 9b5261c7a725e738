package transport

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-faster/errors"
)

func bindLoopback(t *testing.T) *UDPSource {
	t.Helper()
	src, err := BindUDP("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { src.Close() })
	return src
}

// receiveWithin polls until something other than TimedOut arrives.
func receiveWithin(t *testing.T, src FrameSource, buf []byte, d time.Duration) Outcome {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		out := src.TryReceive(buf)
		if out.Kind != TimedOut {
			return out
		}
	}
	t.Fatalf("nothing received within %v", d)
	return Outcome{}
}

func TestUDPSourceTimesOut(t *testing.T) {
	src := bindLoopback(t)
	src.SetTimeout(5 * time.Millisecond)

	buf := make([]byte, 13)
	start := time.Now()
	out := src.TryReceive(buf)
	if out.Kind != TimedOut {
		t.Fatalf("TryReceive on idle socket = %v (%v), want timed out", out.Kind, out.Err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("TryReceive blocked for %v", elapsed)
	}
}

func TestUDPSourceReceivesFrame(t *testing.T) {
	src := bindLoopback(t)
	snd, err := DialUDP(src.LocalAddr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer snd.Close()

	frame := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 255, 255}
	if err := snd.SendFrame(frame); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, len(frame)+1)
	out := receiveWithin(t, src, buf, 2*time.Second)
	if out.Kind != Received {
		t.Fatalf("got %v (%v), want received", out.Kind, out.Err)
	}
	if out.Size != len(frame) || !bytes.Equal(buf[:out.Size], frame) {
		t.Errorf("received %v, want %v", buf[:out.Size], frame)
	}
	if out.Sender == nil {
		t.Error("sender address not reported")
	}
}

func TestUDPSourceTruncatesOversized(t *testing.T) {
	src := bindLoopback(t)
	snd, err := DialUDP(src.LocalAddr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer snd.Close()

	if err := snd.SendFrame(make([]byte, 100)); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 13)
	out := receiveWithin(t, src, buf, 2*time.Second)
	if out.Kind != Received {
		t.Fatalf("got %v (%v), want received", out.Kind, out.Err)
	}
	if out.Size != len(buf) {
		t.Errorf("oversized datagram read back as %d bytes, want %d", out.Size, len(buf))
	}
}

func TestBindUDPErrors(t *testing.T) {
	src := bindLoopback(t)

	cases := []string{
		src.LocalAddr().String(),
		"127.0.0.1:99999",
		"127.0.0.1:notaport",
	}
	for _, addr := range cases {
		s, err := BindUDP(addr)
		if err == nil {
			s.Close()
			t.Errorf("BindUDP(%q): expected error", addr)
			continue
		}
		var be *BindError
		if !errors.As(err, &be) || be.Address != addr {
			t.Errorf("BindUDP(%q) error = %v, want *BindError", addr, err)
		}
	}
}

func TestUDPSourceClosedFails(t *testing.T) {
	src, err := BindUDP("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	src.Close()
	out := src.TryReceive(make([]byte, 4))
	if out.Kind != Failed || out.Err == nil {
		t.Errorf("TryReceive after Close = %v (%v), want failed", out.Kind, out.Err)
	}
}

func TestSetTimeoutDefault(t *testing.T) {
	src := bindLoopback(t)
	src.SetTimeout(0)
	if src.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", src.Timeout(), DefaultTimeout)
	}
	src.SetTimeout(7 * time.Millisecond)
	if src.Timeout() != 7*time.Millisecond {
		t.Errorf("Timeout() = %v", src.Timeout())
	}
}

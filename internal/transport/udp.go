package transport

import (
	"net"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("transport")

// UDPSource receives frames from a bound UDP socket.
type UDPSource struct {
	conn    *net.UDPConn
	timeout time.Duration
}

// BindUDP binds a local UDP endpoint such as "127.0.0.1:54321".
func BindUDP(address string) (*UDPSource, error) {
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, &BindError{Address: address, Err: errors.Wrap(err, "resolve")}
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, &BindError{Address: address, Err: errors.Wrap(err, "listen")}
	}
	log.Infof("UDP server listening on %s", conn.LocalAddr())
	return &UDPSource{conn: conn, timeout: DefaultTimeout}, nil
}

// SetTimeout sets how long one TryReceive may block. Non-positive values
// restore DefaultTimeout.
func (s *UDPSource) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	s.timeout = d
}

// Timeout returns the current receive bound.
func (s *UDPSource) Timeout() time.Duration { return s.timeout }

// LocalAddr returns the bound address.
func (s *UDPSource) LocalAddr() net.Addr { return s.conn.LocalAddr() }

// TryReceive reads one datagram into buf. A datagram larger than buf is
// truncated by the kernel, so callers size buf one byte past the frame size
// and let exact-length decoding reject it.
func (s *UDPSource) TryReceive(buf []byte) Outcome {
	if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
		return Outcome{Kind: Failed, Err: errors.Wrap(err, "set read deadline")}
	}
	n, from, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		if isTimeout(err) {
			return Outcome{Kind: TimedOut}
		}
		return Outcome{Kind: Failed, Err: errors.Wrap(err, "read")}
	}
	return Outcome{Kind: Received, Size: n, Sender: from}
}

func (s *UDPSource) Close() error {
	return s.conn.Close()
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// UDPSender writes frames to a fixed UDP destination.
type UDPSender struct {
	conn *net.UDPConn
}

// DialUDP connects a sender to address, e.g. "127.0.0.1:54321".
func DialUDP(address string) (*UDPSender, error) {
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, errors.Wrap(err, "resolve")
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}
	return &UDPSender{conn: conn}, nil
}

func (s *UDPSender) SendFrame(data []byte) error {
	_, err := s.conn.Write(data)
	return err
}

func (s *UDPSender) Close() error {
	return s.conn.Close()
}

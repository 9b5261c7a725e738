package transport

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/websocket"
)

// ErrClosed is returned by sources and senders used after Close.
var ErrClosed = errors.New("transport closed")

// maxMessageSize is the smallest hard cap on one incoming message.
const maxMessageSize = 1 << 20

type wsMessage struct {
	data []byte
	from net.Addr
}

// WebSocketSource accepts frames as binary WebSocket messages. Every
// connected client feeds the same one-slot mailbox and the newest message
// replaces any that has not been received yet.
type WebSocketSource struct {
	upgrader  websocket.Upgrader
	frameSize int
	readLimit int64
	timeout   time.Duration

	latest chan wsMessage
	done   chan struct{}
	once   sync.Once

	srv *http.Server
	ln  net.Listener
}

// NewWebSocketSource returns a source usable as an http.Handler. frameSize
// is the expected payload length. At most frameSize+1 bytes of a message are
// kept and the rest is discarded, so an oversized message reaches the decoder
// the way a truncated datagram does and is dropped there. A message above the
// hard read limit (at least 1 MiB) closes that client's connection.
func NewWebSocketSource(frameSize int) *WebSocketSource {
	limit := max(int64(frameSize)+1, maxMessageSize)
	return &WebSocketSource{
		frameSize: frameSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize: 4096,
			CheckOrigin:    func(*http.Request) bool { return true },
		},
		readLimit: limit,
		timeout:   DefaultTimeout,
		latest:    make(chan wsMessage, 1),
		done:      make(chan struct{}),
	}
}

// ListenWebSocket serves a WebSocketSource on addr at path.
func ListenWebSocket(addr, path string, frameSize int) (*WebSocketSource, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Address: addr, Err: errors.Wrap(err, "listen")}
	}
	s := NewWebSocketSource(frameSize)
	mux := http.NewServeMux()
	mux.Handle(path, s)
	s.ln = ln
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Warningf("websocket server: %v", err)
		}
	}()
	log.Infof("WebSocket ingest listening on ws://%s%s", ln.Addr(), path)
	return s, nil
}

// Addr returns the listening address, or nil when used as a bare handler.
func (s *WebSocketSource) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// SetTimeout sets how long one TryReceive may block.
func (s *WebSocketSource) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	s.timeout = d
}

func (s *WebSocketSource) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warningf("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	log.Infof("websocket client connected: %s", conn.RemoteAddr())
	go s.readLoop(conn)
}

func (s *WebSocketSource) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.done:
			conn.Close()
		case <-stop:
		}
	}()

	conn.SetReadLimit(s.readLimit)
	for {
		mt, data, err := s.readMessage(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warningf("websocket read from %s: %v", conn.RemoteAddr(), err)
			} else {
				log.Infof("websocket client disconnected: %s", conn.RemoteAddr())
			}
			return
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		select {
		case <-s.done:
			return
		default:
		}
		s.offer(wsMessage{data: data, from: conn.RemoteAddr()})
	}
}

// readMessage returns the next message, keeping at most frameSize+1 bytes of
// a binary payload.
func (s *WebSocketSource) readMessage(conn *websocket.Conn) (int, []byte, error) {
	mt, r, err := conn.NextReader()
	if err != nil {
		return mt, nil, err
	}
	if mt != websocket.BinaryMessage {
		_, err := io.Copy(io.Discard, r)
		return mt, nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(s.frameSize)+1))
	if err != nil {
		return mt, nil, err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return mt, nil, err
	}
	return mt, data, nil
}

// offer stores m, displacing any message not yet received.
func (s *WebSocketSource) offer(m wsMessage) {
	for {
		select {
		case s.latest <- m:
			return
		default:
		}
		select {
		case <-s.latest:
		default:
		}
	}
}

// TryReceive copies the newest pending message into buf, waiting at most
// the configured timeout. Messages longer than buf are truncated.
func (s *WebSocketSource) TryReceive(buf []byte) Outcome {
	select {
	case m := <-s.latest:
		return Outcome{Kind: Received, Size: copy(buf, m.data), Sender: m.from}
	default:
	}
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case m := <-s.latest:
		return Outcome{Kind: Received, Size: copy(buf, m.data), Sender: m.from}
	case <-timer.C:
		return Outcome{Kind: TimedOut}
	case <-s.done:
		return Outcome{Kind: Failed, Err: ErrClosed}
	}
}

func (s *WebSocketSource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		if s.srv != nil {
			err = s.srv.Close()
		}
	})
	return err
}

// WebSocketSender streams frames to a WebSocketSource.
type WebSocketSender struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

// DialWebSocket connects to url, e.g. "ws://127.0.0.1:8081/frames".
func DialWebSocket(url string) (*WebSocketSender, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "websocket dial")
	}
	s := &WebSocketSender{conn: conn, done: make(chan struct{})}
	go s.readLoop()
	go s.pingLoop()
	return s, nil
}

func (s *WebSocketSender) SendFrame(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *WebSocketSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return s.conn.Close()
}

// readLoop drains control frames; the source never sends data back.
func (s *WebSocketSender) readLoop() {
	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			select {
			case <-s.done:
			default:
				log.Warningf("websocket sender read: %v", err)
			}
			return
		}
	}
}

func (s *WebSocketSender) pingLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.closed {
				_ = s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
			}
			s.mu.Unlock()
		}
	}
}

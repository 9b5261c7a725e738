package config

import (
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"

	"github.com/junsooki/ledsim/internal/capture"
	"github.com/junsooki/ledsim/internal/frame"
	"github.com/junsooki/ledsim/internal/transport"
)

// Viewer defaults.
const (
	DefaultPort     = 54321
	DefaultHeight   = 24
	DefaultWidth    = 48
	DefaultScale    = 12
	DefaultBindHost = "127.0.0.1"
	DefaultWSPath   = "/frames"
	WindowTitle     = "Fun LED Simulator"

	// MaxWindowSide bounds the initial window edge, grid side times scale.
	MaxWindowSide = 16384
)

// Environment variables read by the viewer binary.
const (
	EnvLogLevel    = "LEDSIM_LOG_LEVEL"
	EnvBindHost    = "LEDSIM_BIND_HOST"
	EnvWSAddr      = "LEDSIM_WS_ADDR"
	EnvRecvTimeout = "LEDSIM_RECV_TIMEOUT"
)

// ViewerConfig holds runtime configuration for the visualizer.
type ViewerConfig struct {
	Port   int
	Height int
	Width  int
	Scale  int

	BindHost      string
	WebSocketAddr string
	RecvTimeout   time.Duration
	LogLevel      string
}

// ParseViewerArgs reads the positional arguments [port] [height] [width]
// [scale]. Missing, unparsable or non-positive values fall back to their
// defaults. A grid whose frame would not fit in one datagram falls back to the
// default grid, and the scale is lowered until the window fits MaxWindowSide.
// getenv supplies the optional environment settings.
func ParseViewerArgs(args []string, getenv func(string) string) *ViewerConfig {
	cfg := &ViewerConfig{
		Port:        positional(args, 0, DefaultPort),
		Height:      positional(args, 1, DefaultHeight),
		Width:       positional(args, 2, DefaultWidth),
		Scale:       positional(args, 3, DefaultScale),
		BindHost:    DefaultBindHost,
		RecvTimeout: transport.DefaultTimeout,
	}
	if cfg.Port > 65535 {
		cfg.Port = DefaultPort
	}
	if err := cfg.Dimension().Validate(); err != nil {
		cfg.Height, cfg.Width = DefaultHeight, DefaultWidth
	}
	if limit := MaxWindowSide / max(cfg.Width, cfg.Height); cfg.Scale > 1 && cfg.Scale > limit {
		cfg.Scale = max(1, min(DefaultScale, limit))
	}
	if getenv == nil {
		return cfg
	}
	if v := strings.TrimSpace(getenv(EnvBindHost)); v != "" {
		cfg.BindHost = v
	}
	if d, err := time.ParseDuration(getenv(EnvRecvTimeout)); err == nil && d > 0 {
		cfg.RecvTimeout = d
	}
	cfg.WebSocketAddr = strings.TrimSpace(getenv(EnvWSAddr))
	cfg.LogLevel = getenv(EnvLogLevel)
	return cfg
}

func positional(args []string, i, def int) int {
	if i >= len(args) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[i]))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Address is the UDP endpoint to bind.
func (c *ViewerConfig) Address() string {
	return net.JoinHostPort(c.BindHost, strconv.Itoa(c.Port))
}

// Dimension is the configured grid size.
func (c *ViewerConfig) Dimension() frame.Dimension {
	return frame.Dimension{Width: c.Width, Height: c.Height}
}

// SenderConfig holds configuration for the test-pattern sender.
type SenderConfig struct {
	Addr    string
	WSURL   string
	Width   int
	Height  int
	FPS     int
	Pattern string
	Count   int
}

// ParseSenderArgs parses the sender binary's flags from args.
func ParseSenderArgs(args []string) (*SenderConfig, error) {
	fs := flag.NewFlagSet("ledsend", flag.ContinueOnError)
	cfg, err := parseSenderFlags(fs, args)
	if err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}
	return cfg, nil
}

func parseSenderFlags(fs *flag.FlagSet, args []string) (*SenderConfig, error) {
	cfg := &SenderConfig{}
	fs.StringVar(&cfg.Addr, "addr", net.JoinHostPort(DefaultBindHost, strconv.Itoa(DefaultPort)), "UDP address of the visualizer")
	fs.StringVar(&cfg.WSURL, "ws", "", "WebSocket URL of the visualizer (overrides -addr)")
	fs.IntVar(&cfg.Width, "width", DefaultWidth, "Grid width in cells")
	fs.IntVar(&cfg.Height, "height", DefaultHeight, "Grid height in cells")
	fs.IntVar(&cfg.FPS, "fps", 30, "Frames per second")
	fs.StringVar(&cfg.Pattern, "pattern", string(capture.Gradient), "Test pattern: solid, gradient, chase, noise")
	fs.IntVar(&cfg.Count, "count", 0, "Frames to send (0 = until interrupted)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dimension is the grid size frames are generated at.
func (c *SenderConfig) Dimension() frame.Dimension {
	return frame.Dimension{Width: c.Width, Height: c.Height}
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

package main

import (
	"os"

	"github.com/op/go-logging"

	"github.com/junsooki/ledsim/internal/applog"
	"github.com/junsooki/ledsim/internal/config"
	"github.com/junsooki/ledsim/internal/display"
	"github.com/junsooki/ledsim/internal/input"
	"github.com/junsooki/ledsim/internal/render"
	"github.com/junsooki/ledsim/internal/transport"
)

var log = logging.MustGetLogger("ledsim")

func main() {
	os.Exit(run())
}

func run() int {
	envErr := config.LoadDotEnv(".env")
	cfg := config.ParseViewerArgs(os.Args[1:], os.Getenv)
	applog.Configure(cfg.LogLevel)
	if envErr != nil {
		log.Warningf("ignoring .env: %v", envErr)
	}

	dim := cfg.Dimension()
	log.Infof("%s starting", config.WindowTitle)
	log.Infof("  Grid:     %v (%d bytes per frame)", dim, dim.FrameSize())
	log.Infof("  Scale:    %d", cfg.Scale)
	log.Infof("  Timeout:  %v", cfg.RecvTimeout)

	// Bind before any window exists so a busy port fails fast.
	src, err := openSource(cfg)
	if err != nil {
		applog.LogError(log, "bind", err)
		return 1
	}
	defer src.Close()

	backend := display.NewEbitenBackend(dim, cfg.Scale, config.WindowTitle)

	surface, err := display.NewSurface(dim, backend)
	if err != nil {
		applog.LogError(log, "create surface", err)
		return 1
	}

	loop, err := render.New(src, surface, input.NewEbitenPoller(), dim)
	if err != nil {
		applog.LogError(log, "create render loop", err)
		return 1
	}

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	err = render.Run(render.NewGame(loop, backend))
	loop.LogStats()
	if err != nil {
		applog.LogError(log, "render", err)
		return 1
	}
	log.Info("Shutting down...")
	return 0
}

// openSource binds the UDP endpoint, or the WebSocket ingest when
// LEDSIM_WS_ADDR is set.
func openSource(cfg *config.ViewerConfig) (transport.FrameSource, error) {
	frameSize := cfg.Dimension().FrameSize()
	if cfg.WebSocketAddr != "" {
		ws, err := transport.ListenWebSocket(cfg.WebSocketAddr, config.DefaultWSPath, frameSize)
		if err != nil {
			return nil, err
		}
		ws.SetTimeout(cfg.RecvTimeout)
		return ws, nil
	}
	udp, err := transport.BindUDP(cfg.Address())
	if err != nil {
		return nil, err
	}
	udp.SetTimeout(cfg.RecvTimeout)
	return udp, nil
}

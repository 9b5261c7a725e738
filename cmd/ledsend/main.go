package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"

	"github.com/junsooki/ledsim/internal/applog"
	"github.com/junsooki/ledsim/internal/capture"
	"github.com/junsooki/ledsim/internal/config"
	"github.com/junsooki/ledsim/internal/encoder"
	"github.com/junsooki/ledsim/internal/transport"
)

var log = logging.MustGetLogger("ledsend")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	envErr := config.LoadDotEnv(".env")
	cfg, err := config.ParseSenderArgs(args)
	if err != nil {
		return 2
	}
	applog.Configure(os.Getenv(config.EnvLogLevel))
	if envErr != nil {
		log.Warningf("ignoring .env: %v", envErr)
	}

	dim := cfg.Dimension()
	log.Infof("LED sender starting")
	log.Infof("  Grid:     %v", dim)
	log.Infof("  Pattern:  %s", cfg.Pattern)
	log.Infof("  FPS:      %d", cfg.FPS)

	gen, err := capture.NewGenerator(dim, capture.Pattern(cfg.Pattern), cfg.FPS)
	if err != nil {
		applog.LogError(log, "pattern init", err)
		return 1
	}

	enc := encoder.NewRGBEncoder(dim)

	var snd transport.FrameSender
	if cfg.WSURL != "" {
		log.Infof("  Target:   %s", cfg.WSURL)
		snd, err = transport.DialWebSocket(cfg.WSURL)
	} else {
		log.Infof("  Target:   udp://%s", cfg.Addr)
		snd, err = transport.DialUDP(cfg.Addr)
	}
	if err != nil {
		applog.LogError(log, "connect", err)
		return 1
	}
	defer snd.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := gen.Start(); err != nil {
		applog.LogError(log, "pattern start", err)
		return 1
	}
	defer gen.Stop()

	sent := streamFrames(ctx, gen.Frames(), enc, snd, cfg.Count)
	log.Infof("Sent %d frames, shutting down...", sent)
	return 0
}

func streamFrames(ctx context.Context, frames <-chan *capture.Frame, enc encoder.Encoder, snd transport.FrameSender, count int) int {
	sent := 0
	for {
		select {
		case <-ctx.Done():
			return sent
		case f, ok := <-frames:
			if !ok {
				return sent
			}
			data, err := enc.Encode(f.Grid)
			if err != nil {
				log.Warningf("encode frame %d: %v", f.Seq, err)
				continue
			}
			if err := snd.SendFrame(data); err != nil {
				log.Warningf("send frame %d: %v", f.Seq, err)
				continue
			}
			sent++
			if count > 0 && sent >= count {
				return sent
			}
		}
	}
}

package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"camview/pkg/archive"
	"camview/pkg/camera"
	"camview/pkg/capture"
	"camview/pkg/config"
	"camview/pkg/frame"
	"camview/pkg/server"
	"camview/pkg/stream"
	"camview/pkg/utils"
	"camview/pkg/webdav"
)

var (
	host       = flag.String("host", "", "bind address, empty for all interfaces")
	port       = flag.Int("port", config.DefaultPort, "ui port")
	device     = flag.String("device", "", "video device path to connect at startup (e.g., /dev/video0)")
	fourcc     = flag.String("fourcc", "", "fourcc code (e.g., BGR3, YV12)")
	width      = flag.Uint("width", 0, "desired frame width")
	height     = flag.Uint("height", 0, "desired frame height")
	quality    = flag.Int("quality", config.DefaultQuality, "jpeg quality for streams and snapshots")
	dataDir    = flag.String("dir", config.DefaultDataDir, "snapshot and clip directory")
	webdavPort = flag.Int("webdav-port", config.DefaultWebDAVPort, "webdav port")
	ntpServer  = flag.String("ntp-server", config.DefaultNTPServer, "ntp server for the clock check, empty to skip")
	debug      = flag.Bool("debug", false, "log at debug level")

	logger *zap.SugaredLogger
)

func init() {
	logger = utils.GetLogger()
	flag.Parse()
}

func main() {
	defer logger.Sync()

	if *debug {
		utils.SetDebug()
	}

	cfg := config.Default()
	cfg.Host = *host
	cfg.Port = *port
	if *device != "" {
		cfg.Device = *device
	}
	cfg.FourCC = *fourcc
	cfg.Width = uint32(*width)
	cfg.Height = uint32(*height)
	cfg.Quality = *quality
	cfg.DataDir = *dataDir
	cfg.WebDAVPort = *webdavPort
	cfg.NTPServer = *ntpServer
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}

	store, err := archive.New(cfg.DataDir)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cam := camera.New()
	defer cam.Close()
	buf := frame.NewBuffer()
	svc := capture.New(cam, buf)

	// The camera stays optional at startup; the UI can connect one later.
	if *device != "" {
		initCfg := camera.Config{
			Device: cfg.Device,
			FourCC: cfg.FourCC,
			Width:  cfg.Width,
			Height: cfg.Height,
		}
		if err := svc.Connect(initCfg); err != nil {
			logger.Warnf("initial camera connect: %s", err)
		}
	}
	go svc.Run(ctx)

	str := stream.New(buf, stream.WithQuality(cfg.Quality))
	dav := webdav.New(ctx, cfg.WebDAVAddr(), store.Dir())

	srv := server.New(cfg, svc, str, store, dav)
	if cfg.NTPServer != "" {
		go checkClock(cfg.NTPServer, srv)
	}

	logger.Infof("starting server at http://%s:%d", utils.OutboundIP(), cfg.Port)
	utils.ListenAndServe(srv.Router(), cfg.Addr())
}

func checkClock(ntpServer string, srv *server.Server) {
	offset, err := utils.ClockOffset(ntpServer)
	if err != nil {
		logger.Warnf("ntp clock check: %s", err)
		return
	}
	if offset > time.Second || offset < -time.Second {
		logger.Warnf("system clock is off by %s, snapshot names may mislead", offset)
	}
	srv.SetClockOffset(offset)
}

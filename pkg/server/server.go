// Package server exposes the camera over HTTP: the control page, the
// MJPEG stream, snapshots, and the JSON API.
package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"
	"go.uber.org/zap"

	"camview/pkg/archive"
	"camview/pkg/capture"
	"camview/pkg/config"
	"camview/pkg/stream"
	"camview/pkg/utils"
	"camview/pkg/webdav"
)

var logger *zap.SugaredLogger

func init() {
	logger = utils.GetLogger()
}

type Server struct {
	cfg   *config.Config
	svc   *capture.Service
	str   *stream.Streamer
	store *archive.Store
	dav   *webdav.Server

	recording     atomic.Bool
	clockOffsetMS atomic.Int64
	clockChecked  atomic.Bool
}

func New(cfg *config.Config, svc *capture.Service, str *stream.Streamer, store *archive.Store, dav *webdav.Server) *Server {
	return &Server{
		cfg:   cfg,
		svc:   svc,
		str:   str,
		store: store,
		dav:   dav,
	}
}

// SetClockOffset records the NTP offset for the status endpoint. Called
// from the background clock check.
func (s *Server) SetClockOffset(offset time.Duration) {
	s.clockOffsetMS.Store(offset.Milliseconds())
	s.clockChecked.Store(true)
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(utils.Cors())

	r.SetHTMLTemplate(indexTemplate)
	r.GET("/", s.index)
	r.GET("/stream", s.streamVideo)
	r.POST("/connect", s.connect)
	r.GET("/snapshot", s.snapshot)

	apiRouter := r.Group("/api")
	apiRouter.GET("/status", s.status)
	apiRouter.GET("/devices", s.devices)
	apiRouter.GET("/system", s.system)
	apiRouter.GET("/stream/ws", s.streamWS)
	apiRouter.GET("/webdav", s.webdavStatus)
	apiRouter.PUT("/webdav", s.ctlWebdav)

	ctrlRouter := apiRouter.Group("/controls")
	ctrlRouter.GET("", s.listControls)
	ctrlRouter.PUT("", s.updateControl)

	snapRouter := apiRouter.Group("/snapshots")
	snapRouter.GET("", s.listSnapshots)
	snapRouter.POST("", s.saveSnapshot)
	snapRouter.GET("/:name", s.getSnapshot)
	snapRouter.DELETE("/:name", s.deleteSnapshot)

	clipRouter := apiRouter.Group("/clips")
	clipRouter.GET("", s.listClips)
	clipRouter.POST("", s.recordClip)
	clipRouter.GET("/:name", s.getClip)
	clipRouter.DELETE("/:name", s.deleteClip)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("page not found"))
	})

	return r
}

func internalErr(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, jsend.SimpleErr(err.Error()))
}

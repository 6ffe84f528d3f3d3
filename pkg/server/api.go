package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"

	"camview/pkg/camera"
	"camview/pkg/ov"
	"camview/pkg/utils/image"
	"camview/pkg/utils/ps"
	"camview/pkg/video"
)

const (
	webDavStart    = "start"
	webDavShutdown = "shutdown"
)

const (
	defaultClipSeconds = 5
	defaultClipFPS     = 10
	maxClipSeconds     = 60
	maxClipFPS         = 30
)

func (s *Server) status(c *gin.Context) {
	st := s.svc.Status()
	if s.clockChecked.Load() {
		ms := s.clockOffsetMS.Load()
		st.ClockOffsetMS = &ms
	}

	c.JSON(http.StatusOK, jsend.Success(st))
	return
}

func (s *Server) devices(c *gin.Context) {
	c.JSON(http.StatusOK, jsend.Success(camera.ListDevices()))
	return
}

func (s *Server) system(c *gin.Context) {
	cpuPct, err := ps.CPUPercent()
	if err != nil {
		internalErr(c, err)
		return
	}
	memory, err := ps.MemoryStatus()
	if err != nil {
		internalErr(c, err)
		return
	}
	disk, err := ps.DiskStatus(s.store.Dir())
	if err != nil {
		internalErr(c, err)
		return
	}
	archiveSize, err := ps.DirDiskUsage(s.store.Dir())
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(ov.SystemStatus{
		CPUPercent: cpuPct,

		MemoryUsed:    humanize.Bytes(memory.Used),
		MemoryTotal:   humanize.Bytes(memory.Total),
		MemoryPercent: memory.UsedPercent,

		DiskUsed:    humanize.Bytes(disk.Used),
		DiskTotal:   humanize.Bytes(disk.Total),
		DiskPercent: disk.UsedPercent,

		ArchiveSize: humanize.Bytes(uint64(archiveSize)),
	}))
}

func (s *Server) listControls(c *gin.Context) {
	configs, err := s.svc.Camera().Controls()
	if err != nil {
		if errors.Is(err, camera.ErrNotOpen) {
			c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
			return
		}
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(configs))
}

func (s *Server) updateControl(c *gin.Context) {
	var cfg ov.UpdateConfig
	if err := c.Bind(&cfg); err != nil {
		return
	}
	if err := s.svc.Camera().SetControl(cfg.ID, cfg.Value); err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(nil))
}

func (s *Server) listSnapshots(c *gin.Context) {
	files, err := s.store.ListSnapshots()
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(files))
}

func (s *Server) saveSnapshot(c *gin.Context) {
	f, ok := s.svc.Buffer().Peek()
	if !ok {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("no frame available"))
		return
	}
	data, err := image.EncodeJPEG(f.Image, s.cfg.Quality)
	if err != nil {
		internalErr(c, err)
		return
	}
	name, err := s.store.SaveSnapshot(data)
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(name))
}

func (s *Server) getSnapshot(c *gin.Context) {
	data, err := s.store.Snapshot(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("snapshot not found"))
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}

func (s *Server) deleteSnapshot(c *gin.Context) {
	name := c.Param("name")
	if err := s.store.DeleteSnapshot(name); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(fmt.Sprintf("delete snapshot %s success", name)))
}

func (s *Server) listClips(c *gin.Context) {
	files, err := s.store.ListClips()
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(files))
}

func (s *Server) recordClip(c *gin.Context) {
	req := ov.ClipRequest{Seconds: defaultClipSeconds, FPS: defaultClipFPS}
	if c.Request.ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return
		}
	}
	if req.Seconds < 1 || req.Seconds > maxClipSeconds {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(fmt.Sprintf("seconds must be between 1 and %d", maxClipSeconds)))
		return
	}
	if req.FPS < 1 || req.FPS > maxClipFPS {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(fmt.Sprintf("fps must be between 1 and %d", maxClipFPS)))
		return
	}

	if !s.recording.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, jsend.SimpleErr("a clip is already being recorded"))
		return
	}
	defer s.recording.Store(false)

	name := fmt.Sprintf("clip_%s", time.Now().Format("20060102-150405"))
	path, err := s.store.ClipPath(name)
	if err != nil {
		internalErr(c, err)
		return
	}
	n, err := video.Record(c.Request.Context(), s.svc.Buffer(), path, req.Seconds, req.FPS, s.cfg.Quality)
	if err != nil {
		if errors.Is(err, video.ErrNoFrame) {
			c.JSON(http.StatusBadRequest, jsend.SimpleErr("no frame available"))
			return
		}
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(ov.ClipResult{Name: name + ".avi", Frames: n}))
}

func (s *Server) getClip(c *gin.Context) {
	name := c.Param("name")
	path, err := s.store.Clip(name)
	if err != nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("clip not found"))
		return
	}

	c.FileAttachment(path, name)
}

func (s *Server) deleteClip(c *gin.Context) {
	name := c.Param("name")
	if err := s.store.DeleteClip(name); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(fmt.Sprintf("delete clip %s success", name)))
}

func (s *Server) webdavStatus(c *gin.Context) {
	c.JSON(http.StatusOK, jsend.Success(s.dav.Running()))
	return
}

func (s *Server) ctlWebdav(c *gin.Context) {
	switch c.Query("op") {
	case webDavStart:
		s.dav.Start()
		c.JSON(http.StatusOK, jsend.Success(c.Request.Host))
	case webDavShutdown:
		s.dav.Stop()
		c.JSON(http.StatusOK, jsend.Success(nil))
	default:
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("unknown operation"))
	}
}

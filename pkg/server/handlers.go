package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"camview/pkg/camera"
	"camview/pkg/config"
	"camview/pkg/ov"
	"camview/pkg/utils/image"
)

type indexData struct {
	StatusText string
	Status     ov.CameraStatus
	Devices    []string
}

func (s *Server) index(c *gin.Context) {
	st := s.svc.Status()
	text := "Not connected"
	if st.Connected {
		text = "Connected"
	}

	c.HTML(http.StatusOK, "index", indexData{
		StatusText: text,
		Status:     st.CameraStatus,
		Devices:    camera.ListDevices(),
	})
}

func (s *Server) streamVideo(c *gin.Context) {
	s.str.Stream(c.Request.Context(), c.Writer)
}

func (s *Server) connect(c *gin.Context) {
	cfg := camera.Config{
		Device: c.DefaultPostForm("device", config.DefaultDevice),
		FourCC: c.PostForm("fourcc"),
		Width:  parseDimension(c.PostForm("width")),
		Height: parseDimension(c.PostForm("height")),
	}
	if err := s.svc.Connect(cfg); err != nil {
		logger.Errorf("Failed to open camera: %s", err)
		c.String(http.StatusBadRequest, "Failed to connect to camera")
		return
	}

	c.String(http.StatusOK, "Camera connected successfully")
}

func (s *Server) snapshot(c *gin.Context) {
	f, ok := s.svc.Buffer().Peek()
	if !ok {
		c.String(http.StatusBadRequest, "No frame available")
		return
	}
	data, err := image.EncodeJPEG(f.Image, s.cfg.Quality)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to encode image")
		return
	}

	timestamp := time.Now().Format("20060102-150405")
	c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=snapshot_%s.jpg", timestamp))
	c.Data(http.StatusOK, "image/jpeg", data)
}

// parseDimension accepts digits only; anything else means unspecified.
func parseDimension(s string) uint32 {
	if s == "" {
		return 0
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}

	return uint32(n)
}

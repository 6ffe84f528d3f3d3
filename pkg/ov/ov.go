// Package ov holds the object-view types exchanged with API clients.
package ov

import (
	"time"

	"github.com/vladimirvivien/go4vl/v4l2"
)

// CameraStatus is the negotiated device state, not the requested one.
type CameraStatus struct {
	Connected bool   `json:"connected"`
	Device    string `json:"device,omitempty"`
	Width     uint32 `json:"width,omitempty"`
	Height    uint32 `json:"height,omitempty"`
	FPS       uint32 `json:"fps,omitempty"`
	Format    string `json:"format,omitempty"`
}

type Status struct {
	CameraStatus

	Frames        uint64     `json:"frames"`
	LastFrameAt   *time.Time `json:"lastFrameAt,omitempty"`
	ClockOffsetMS *int64     `json:"clockOffsetMs,omitempty"`
}

type SystemStatus struct {
	CPUPercent float64 `json:"cpuPercent"`

	MemoryUsed    string  `json:"memoryUsed"`
	MemoryTotal   string  `json:"memoryTotal"`
	MemoryPercent float64 `json:"memoryPercent"`

	DiskUsed    string  `json:"diskUsed"`
	DiskTotal   string  `json:"diskTotal"`
	DiskPercent float64 `json:"diskPercent"`

	ArchiveSize string `json:"archiveSize"`
}

type Config struct {
	ID    v4l2.CtrlID
	Value v4l2.CtrlValue
	Name  string

	IsMenu bool

	MenuItems []string

	Minimum int32
	Maximum int32
	Step    int32
}

type UpdateConfig struct {
	ID    v4l2.CtrlID    `json:"id" binding:"required"`
	Value v4l2.CtrlValue `json:"value"`
}

type ClipRequest struct {
	Seconds int `json:"seconds"`
	FPS     int `json:"fps"`
}

type ClipResult struct {
	Name   string `json:"name"`
	Frames int    `json:"frames"`
}

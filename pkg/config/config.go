// Package config collects the process configuration in one validated
// struct so the rest of the program never reads flags or globals.
package config

import (
	"fmt"
	"net"
	"strconv"
)

const (
	DefaultPort       = 8080
	DefaultDevice     = "/dev/video0"
	DefaultQuality    = 90
	DefaultDataDir    = "./camview-data"
	DefaultWebDAVPort = 8081
	DefaultNTPServer  = "pool.ntp.org"
)

type Config struct {
	// Host is the bind address; empty means all interfaces.
	Host string
	Port int

	// Device and the format fields seed the initial connection attempt.
	// Zero Width/Height and an empty FourCC leave the driver's choice.
	Device string
	FourCC string
	Width  uint32
	Height uint32

	// Quality is the JPEG encode quality for streams and snapshots.
	Quality int

	// DataDir holds saved snapshots and clips, also exported over WebDAV.
	DataDir    string
	WebDAVPort int

	NTPServer string
	Debug     bool
}

func Default() *Config {
	return &Config{
		Port:       DefaultPort,
		Device:     DefaultDevice,
		Quality:    DefaultQuality,
		DataDir:    DefaultDataDir,
		WebDAVPort: DefaultWebDAVPort,
		NTPServer:  DefaultNTPServer,
	}
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.WebDAVPort < 1 || c.WebDAVPort > 65535 {
		return fmt.Errorf("webdav port %d out of range", c.WebDAVPort)
	}
	if c.WebDAVPort == c.Port {
		return fmt.Errorf("webdav port %d collides with the http port", c.WebDAVPort)
	}
	if c.Device == "" {
		return fmt.Errorf("device path is empty")
	}
	if c.FourCC != "" && len(c.FourCC) != 4 {
		return fmt.Errorf("fourcc %q: want exactly 4 characters", c.FourCC)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("jpeg quality %d out of range", c.Quality)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory is empty")
	}

	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) WebDAVAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.WebDAVPort))
}

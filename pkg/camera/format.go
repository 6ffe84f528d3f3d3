package camera

import (
	"fmt"

	"github.com/vladimirvivien/go4vl/v4l2"
)

// ParseFourCC converts a four character code like "MJPG" or "YUYV" to
// its V4L2 representation. Codes are passed to the driver as-is; whether
// the device supports one is the driver's call.
func ParseFourCC(s string) (v4l2.FourCCType, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("fourcc %q: want exactly 4 characters", s)
	}
	for i := 0; i < 4; i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return 0, fmt.Errorf("fourcc %q: non-printable character", s)
		}
	}

	return v4l2.FourCCType(uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24), nil
}

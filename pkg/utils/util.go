package utils

import (
	"encoding/binary"
	"net"
)

// Str2int64 packs a short name into an int64, the encoding V4L2 uses for
// integer menu items.
func Str2int64(in string) int64 {
	b := []byte(in)
	for i := len(b); i <= 8; i++ {
		b = append(b, 0)
	}
	return int64(binary.LittleEndian.Uint64(b))
}

// OutboundIP reports the local address an outbound packet would use.
// No traffic is sent.
func OutboundIP() string {
	conn, err := net.Dial("udp", "10.255.255.255:1")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

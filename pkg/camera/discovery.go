package camera

import (
	"path/filepath"
	"sort"
	"strconv"
)

// ListDevices returns the V4L2 device nodes present on the host, in
// device-number order so video10 lands after video2. No devices yields
// an empty list, not an error.
func ListDevices() []string {
	return globDevices("/dev/video*")
}

func globDevices(pattern string) []string {
	paths, err := filepath.Glob(pattern)
	if err != nil || len(paths) == 0 {
		return []string{}
	}
	sort.Slice(paths, func(i, j int) bool {
		ni, nj := deviceNumber(paths[i]), deviceNumber(paths[j])
		if ni != nj {
			return ni < nj
		}
		return paths[i] < paths[j]
	})

	return paths
}

// deviceNumber extracts the trailing number of a device node; paths
// without one sort first.
func deviceNumber(path string) int {
	base := filepath.Base(path)
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(base[i:])
	if err != nil {
		return -1
	}

	return n
}

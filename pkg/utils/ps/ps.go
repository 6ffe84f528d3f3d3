// Package ps reads host resource usage for the status API.
package ps

import (
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// cpuSample is long enough for a stable reading without making the
// status endpoint feel slow.
const cpuSample = 50 * time.Millisecond

// Usage is one consumed-versus-available reading, shared by the memory
// and disk reports.
type Usage struct {
	Total       uint64
	Used        uint64
	UsedPercent float64
}

func CPUPercent() (float64, error) {
	list, err := cpu.Percent(cpuSample, false)
	if err != nil {
		return 0, err
	}

	return list[0], nil
}

func MemoryStatus() (Usage, error) {
	m, err := mem.VirtualMemory()
	if err != nil {
		return Usage{}, err
	}

	return Usage{
		Total:       m.Total,
		Used:        m.Used,
		UsedPercent: m.UsedPercent,
	}, nil
}

func DiskStatus(path string) (Usage, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return Usage{}, err
	}

	return Usage{
		Total:       u.Total,
		Used:        u.Used,
		UsedPercent: u.UsedPercent,
	}, nil
}

// DirDiskUsage sums the sizes of the regular files under path.
func DirDiskUsage(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}

package utils

import (
	"errors"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
)

// CheckCPUUsage reports whether current CPU usage is at or below maxCPUUsage.
// A non-positive limit disables the check.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64, error) {
	if maxCPUUsage <= 0 {
		return true, 0, nil
	}
	usage, err := cpu.Percent(0, false)
	if err != nil {
		return false, 0, err
	}
	if len(usage) == 0 {
		return false, 0, errors.New("cpu usage unavailable")
	}
	return usage[0] <= maxCPUUsage, usage[0], nil
}

// FreeDiskBytes returns the bytes available to unprivileged users on the filesystem holding path.
func FreeDiskBytes(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

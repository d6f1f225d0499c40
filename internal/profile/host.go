package profile

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
)

// HostInfo describes the machine a report was produced on.
type HostInfo struct {
	Hostname string
	OS       string
	Platform string
	CPUModel string
	CPUs     int
}

// String returns a one-line description, e.g. "box (linux/ubuntu) Intel Xeon x8".
func (h HostInfo) String() string {
	if h == (HostInfo{}) {
		return "unknown host"
	}
	return fmt.Sprintf("%s (%s/%s) %s x%d", h.Hostname, h.OS, h.Platform, h.CPUModel, h.CPUs)
}

// CollectHostInfo queries the running machine.
//
// Postcondition: Returns whatever could be collected; the error reports the
// first query that failed.
func CollectHostInfo(ctx context.Context) (HostInfo, error) {
	var h HostInfo
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return h, fmt.Errorf("querying host info: %w", err)
	}
	h.Hostname = hi.Hostname
	h.OS = hi.OS
	h.Platform = hi.Platform

	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return h, fmt.Errorf("counting cpus: %w", err)
	}
	h.CPUs = n

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return h, fmt.Errorf("querying cpu info: %w", err)
	}
	if len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	return h, nil
}

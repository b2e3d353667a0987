package agents

import (
	"context"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Probe reports facts about the host the agent runs on.
type Probe interface {
	OSInfo(ctx context.Context) string
	Usage(ctx context.Context) Resources
}

// HostProbe reads the local machine through gopsutil.
type HostProbe struct {
	// DiskPath is the mount whose usage is reported. Defaults to "/".
	DiskPath string
	// CPUSample is how long CPU usage is sampled. Defaults to one second.
	CPUSample time.Duration
}

// OSInfo returns e.g. "Linux 6.8.0-45-generic".
func (p HostProbe) OSInfo(ctx context.Context) string {
	name := runtime.GOOS
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return osName(name)
	}
	if info.OS != "" {
		name = info.OS
	}
	return strings.TrimSpace(osName(name) + " " + info.KernelVersion)
}

// Usage samples CPU, memory and disk utilisation. Metrics that cannot be
// read are reported as zero.
func (p HostProbe) Usage(ctx context.Context) Resources {
	sample := p.CPUSample
	if sample <= 0 {
		sample = time.Second
	}
	path := p.DiskPath
	if path == "" {
		path = "/"
	}

	var r Resources
	if pct, err := cpu.PercentWithContext(ctx, sample, false); err == nil && len(pct) > 0 {
		r.CPUUsage = round2(pct[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		r.MemoryUsage = round2(vm.UsedPercent)
	}
	if du, err := disk.UsageWithContext(ctx, path); err == nil {
		r.DiskUsage = round2(du.UsedPercent)
	}
	return r
}

func osName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return goos
	}
}

// The platform stores usage with two decimal places and rejects more.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

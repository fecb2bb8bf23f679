package monitoring

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStatus is a point-in-time snapshot of the machine running the
// service, shown on the admin status screen.
type HostStatus struct {
	Hostname      string    `json:"hostname"`
	UptimeSeconds uint64    `json:"uptimeSeconds"`
	CPUPercent    float64   `json:"cpuPercent"`
	MemoryPercent float64   `json:"memoryPercent"`
	MemoryUsedMB  uint64    `json:"memoryUsedMb"`
	MemoryTotalMB uint64    `json:"memoryTotalMb"`
	DiskPercent   float64   `json:"diskPercent"`
	DiskFreeGB    float64   `json:"diskFreeGb"`
	SampledAt     time.Time `json:"sampledAt"`
}

// SampleHost collects the current host metrics. Individual probe failures
// leave their fields zeroed instead of failing the whole snapshot.
func SampleHost() HostStatus {
	status := HostStatus{SampledAt: time.Now().UTC()}

	if info, err := host.Info(); err == nil {
		status.Hostname = info.Hostname
		status.UptimeSeconds = info.Uptime
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryPercent = vm.UsedPercent
		status.MemoryUsedMB = vm.Used / 1024 / 1024
		status.MemoryTotalMB = vm.Total / 1024 / 1024
	}
	if du, err := disk.Usage("/"); err == nil {
		status.DiskPercent = du.UsedPercent
		status.DiskFreeGB = float64(du.Free) / (1024 * 1024 * 1024)
	}
	return status
}

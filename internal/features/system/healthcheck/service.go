package system_healthcheck

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

const (
	memoryDegradedPercent = 95.0
	diskDegradedPercent   = 95.0
)

type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
)

type ResourceUsage struct {
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	MemoryUsedMB      uint64  `json:"memoryUsedMb"`
	MemoryTotalMB     uint64  `json:"memoryTotalMb"`
	CPUPercent        float64 `json:"cpuPercent"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
	DiskFreeGB        float64 `json:"diskFreeGb"`
	Goroutines        int     `json:"goroutines"`
}

type HealthStatusResponse struct {
	Status    HealthStatus  `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Resources ResourceUsage `json:"resources"`
}

type HealthcheckService struct{}

// GetStatus samples host resources. Readings that fail are reported as
// zero instead of failing the whole check.
func (s *HealthcheckService) GetStatus() *HealthStatusResponse {
	resources := ResourceUsage{
		Goroutines: runtime.NumGoroutine(),
	}

	if memory, err := mem.VirtualMemory(); err == nil {
		resources.MemoryUsedPercent = memory.UsedPercent
		resources.MemoryUsedMB = memory.Used / 1024 / 1024
		resources.MemoryTotalMB = memory.Total / 1024 / 1024
	}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		resources.CPUPercent = percentages[0]
	}

	if usage, err := disk.Usage("/"); err == nil {
		resources.DiskUsedPercent = usage.UsedPercent
		resources.DiskFreeGB = float64(usage.Free) / 1024 / 1024 / 1024
	}

	status := HealthStatusOK
	if resources.MemoryUsedPercent > memoryDegradedPercent || resources.DiskUsedPercent > diskDegradedPercent {
		status = HealthStatusDegraded
	}

	return &HealthStatusResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Resources: resources,
	}
}

package stats

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type SystemInfo struct {
	OS           string
	Hostname     string
	SystemUptime time.Duration

	CPUCores int
	CPUUsage float64

	MemUsed    uint64
	MemTotal   uint64
	MemPercent float64

	ProcessPID    int
	ProcessUptime time.Duration
	ProcessMem    uint64

	GoVersion  string
	Goroutines int
	HeapAlloc  uint64
}

// GetSystemInfo snapshots host and process health for the /stats command.
func GetSystemInfo(startedAt time.Time) (*SystemInfo, error) {
	info := &SystemInfo{
		ProcessPID:    os.Getpid(),
		ProcessUptime: time.Since(startedAt),
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
		CPUCores:      runtime.NumCPU(),
	}

	if hostInfo, err := host.Info(); err == nil {
		info.OS = hostInfo.Platform
		info.Hostname = hostInfo.Hostname
		info.SystemUptime = time.Duration(hostInfo.Uptime) * time.Second
	}

	if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 {
		info.CPUUsage = usage[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemUsed = vm.Used
		info.MemTotal = vm.Total
		info.MemPercent = vm.UsedPercent
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if pm, err := proc.MemoryInfo(); err == nil && pm != nil {
			info.ProcessMem = pm.RSS
		}
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	info.HeapAlloc = ms.HeapAlloc

	return info, nil
}

// Counters tracks delivery totals for the lifetime of the process.
type Counters struct {
	mu sync.Mutex

	TotalDownloads  int64
	FailedDownloads int64
	TotalBytes      int64
	AudioDownloads  int64
	VideoDownloads  int64
	uniqueUsers     map[int64]bool
}

func NewCounters() *Counters {
	return &Counters{uniqueUsers: make(map[int64]bool)}
}

func (c *Counters) Record(userID int64, audio bool, bytes int64, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.TotalDownloads++
	if !success {
		c.FailedDownloads++
		return
	}
	c.TotalBytes += bytes
	if audio {
		c.AudioDownloads++
	} else {
		c.VideoDownloads++
	}
	c.uniqueUsers[userID] = true
}

type Snapshot struct {
	TotalDownloads  int64
	FailedDownloads int64
	TotalBytes      int64
	AudioDownloads  int64
	VideoDownloads  int64
	UniqueUsers     int
}

func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		TotalDownloads:  c.TotalDownloads,
		FailedDownloads: c.FailedDownloads,
		TotalBytes:      c.TotalBytes,
		AudioDownloads:  c.AudioDownloads,
		VideoDownloads:  c.VideoDownloads,
		UniqueUsers:     len(c.uniqueUsers),
	}
}

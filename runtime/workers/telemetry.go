package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// MemberCounter reports current room membership. Satisfied by runtime.Hub.
type MemberCounter interface {
	Len() int
}

// TelemetryWorker periodically logs process self-stats (RSS, CPU, status)
// together with room membership. Observability only, no side effects on
// room state.
type TelemetryWorker struct {
	log      *slog.Logger
	interval time.Duration
	members  MemberCounter
}

func NewTelemetryWorker(log *slog.Logger, interval time.Duration, members MemberCounter) *TelemetryWorker {
	return &TelemetryWorker{
		log:      log,
		interval: interval,
		members:  members,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.log.Info("Hub self stats",
				"rss_mb", rss/1024/1024,
				"cpu_percent", cpu,
				"status", status,
				"connections", w.members.Len())
		}
	}
}

// selfStats retrieves memory, CPU and OS status for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}

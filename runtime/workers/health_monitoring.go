package workers

import (
	"context"
	"line-chat/contract"
	"line-chat/domain"
	"line-chat/observability"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthReport is one sample taken by the HealthMonitor.
type HealthReport struct {
	Stats  observability.Stats
	PID    int32
	RSS    uint64
	CPU    float64
	Status domain.PidStatus
	Queues []ChannelUsage
}

// HealthMonitor periodically logs the server counters together with the
// resource usage of the current process.
type HealthMonitor struct {
	log      *slog.Logger
	registry contract.IRegistry
	monitor  *observability.Monitor
	interval time.Duration
	pid      int32
	channels []NamedChannel
}

func NewHealthMonitor(log *slog.Logger, registry contract.IRegistry,
	monitor *observability.Monitor, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{
		log:      log,
		registry: registry,
		monitor:  monitor,
		interval: interval,
		pid:      int32(os.Getpid()),
	}
}

// WithChannels adds buffered channels whose backlog is sampled on each tick.
func (w *HealthMonitor) WithChannels(channels ...NamedChannel) *HealthMonitor {
	w.channels = append(w.channels, channels...)
	return w
}

func (w *HealthMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			r := w.Report()
			w.log.Info("Health",
				"connected", r.Stats.Connected,
				"accepted", r.Stats.ClientsAccepted,
				"disconnected", r.Stats.ClientsDisconnected,
				"messages", r.Stats.MessagesReceived,
				"deliveries", r.Stats.Deliveries,
				"delivery_failures", r.Stats.DeliveryFailures,
				"accept_errors", r.Stats.AcceptErrors,
				"censored", r.Stats.CensoredMessages,
				"uptime", r.Stats.Uptime.Round(time.Second).String(),
				"pid", r.PID,
				"rss", r.RSS,
				"cpu", r.CPU,
				"status", r.Status,
			)
			for _, q := range r.Queues {
				if q.Congested() {
					w.log.Warn("Channel backlog", "name", q.Name, "length", q.Length, "capacity", q.Capacity)
				}
			}
		}
	}
}

// Report samples the counters and the process. Process metrics that cannot
// be read are left to their zero value.
func (w *HealthMonitor) Report() HealthReport {
	report := HealthReport{
		Stats:  w.monitor.Snapshot(w.registry.Len()),
		PID:    w.pid,
		Status: domain.UNKNOWN,
	}
	for _, nc := range w.channels {
		usage, ok := channelUsage(nc)
		if !ok {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		report.Queues = append(report.Queues, usage)
	}

	p, err := process.NewProcess(w.pid)
	if err != nil {
		w.log.Debug("Error while retrieving process", "pid", w.pid, "err", err)
		return report
	}
	if mem, err := p.MemoryInfo(); err != nil {
		w.log.Debug("Error while finding process memory", "err", err)
	} else {
		report.RSS = mem.RSS
	}
	if cpu, err := p.CPUPercent(); err != nil {
		w.log.Debug("Error while finding process cpu usage", "err", err)
	} else {
		report.CPU = cpu
	}
	if status, err := p.Status(); err != nil {
		w.log.Debug("Error while finding process status", "err", err)
	} else {
		report.Status = domain.ToStatus(status)
	}
	return report
}

package monitor

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wincluster-go/validate"
)

// Monitor 校验运行指标收集器，写入 node_exporter textfile。
type Monitor struct {
	registry *prometheus.Registry

	runs       prometheus.Counter
	errors     prometheus.Gauge
	success    prometheus.Gauge
	hosts      prometheus.Gauge
	lastRunSec prometheus.Gauge

	now func() time.Time
}

// Config 监控配置
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Namespace: "wincluster",
		Subsystem: "",
	}
}

// New 创建新的Monitor实例
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Monitor{
		registry: reg,
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validation_runs_total",
			Help:      "校验运行次数",
		}),
		errors: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validation_errors",
			Help:      "最近一次校验发现的问题数",
		}),
		success: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validation_success",
			Help:      "最近一次校验是否通过(1=通过)",
		}),
		hosts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "inventory_hosts",
			Help:      "目标 inventory 分组中的主机数",
		}),
		lastRunSec: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validation_last_run_timestamp_seconds",
			Help:      "最近一次校验的 Unix 时间",
		}),
		now: time.Now,
	}
}

// RecordRun implements validate.Recorder.
func (m *Monitor) RecordRun(res validate.Result) {
	m.runs.Inc()
	m.errors.Set(float64(len(res.Errors)))
	if res.OK() {
		m.success.Set(1)
	} else {
		m.success.Set(0)
	}
	m.hosts.Set(float64(len(res.Hosts)))
	m.lastRunSec.Set(float64(m.now().Unix()))
}

// WriteTextfile 原子写入 textfile collector 文件。
func (m *Monitor) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

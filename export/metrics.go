package export

import (
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/ports"
	"github.com/activecm/asa-elephant/util"
	"github.com/prometheus/client_golang/prometheus"
)

// FlowMetrics holds the Prometheus gauges describing one classification run.
//
// Flows sharing a label set are aggregated: bytes and rates are summed and
// the longest uptime is kept. Protocols without ports get dport="0" and
// service="na".
type FlowMetrics struct {
	flowBytes  *prometheus.GaugeVec
	flowUptime *prometheus.GaugeVec
	flowMbps   *prometheus.GaugeVec

	totalConnections prometheus.Gauge
	totalFlows       prometheus.Gauge
	totalBytes       prometheus.Gauge
}

var flowLabelNames = []string{"src", "dst", "protocol", "dport", "service", "flow_type"}

type flowKey struct {
	Src, Dst string
	Protocol string
	DPort    string
	Service  string
	FlowType string
}

type flowValues struct {
	Bytes         float64
	UptimeSeconds float64
	Mbps          float64
}

// NewFlowMetrics creates the gauges
func NewFlowMetrics() *FlowMetrics {
	m := &FlowMetrics{}

	m.flowBytes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "elephant_flow_bytes",
		Help: "Bytes transferred by elephant flows sharing the label set.",
	}, flowLabelNames)
	m.flowUptime = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "elephant_flow_uptime_seconds",
		Help: "Longest uptime of the elephant flows sharing the label set.",
	}, flowLabelNames)
	m.flowMbps = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "elephant_flow_mbps",
		Help: "Combined rate in megabits per second of elephant flows sharing the label set.",
	}, flowLabelNames)

	m.totalConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "elephant_total_connections",
		Help: "Number of connections in the analyzed connection table.",
	})
	m.totalFlows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "elephant_total_flows",
		Help: "Number of connections classified as elephant flows.",
	})
	m.totalBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "elephant_total_bytes",
		Help: "Bytes transferred by all elephant flows.",
	})

	return m
}

// MustRegister registers all metrics into the provided registry.
func (m *FlowMetrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		m.flowBytes,
		m.flowUptime,
		m.flowMbps,
		m.totalConnections,
		m.totalFlows,
		m.totalBytes,
	)
}

// Apply replaces the gauge values with the given run
func (m *FlowMetrics) Apply(flows []elephant.Result, totalConnections int) {
	m.flowBytes.Reset()
	m.flowUptime.Reset()
	m.flowMbps.Reset()

	snapshot := aggregateFlows(flows)
	var totalBytes float64
	for k, v := range snapshot {
		labels := prometheus.Labels{
			"src":       k.Src,
			"dst":       k.Dst,
			"protocol":  k.Protocol,
			"dport":     k.DPort,
			"service":   k.Service,
			"flow_type": k.FlowType,
		}
		m.flowBytes.With(labels).Set(v.Bytes)
		m.flowUptime.With(labels).Set(v.UptimeSeconds)
		m.flowMbps.With(labels).Set(v.Mbps)
		totalBytes += v.Bytes
	}

	m.totalConnections.Set(float64(totalConnections))
	m.totalFlows.Set(float64(len(flows)))
	m.totalBytes.Set(totalBytes)
}

func aggregateFlows(flows []elephant.Result) map[flowKey]flowValues {
	out := map[flowKey]flowValues{}
	for _, flow := range flows {
		k := flowKey{
			Src:      flow.SrcIP,
			Dst:      flow.DstIP,
			Protocol: flow.Protocol,
			DPort:    flow.DstPort,
			Service:  ports.Service(flow.DstPort),
			FlowType: flow.ElephantFlowType,
		}
		if k.DPort == "" {
			k.DPort = "0"
			k.Service = "na"
		}

		v := out[k]
		v.Bytes += float64(flow.BytesInt)
		v.Mbps += flow.Mbps
		if uptime := float64(flow.UptimeSeconds); uptime > v.UptimeSeconds {
			v.UptimeSeconds = uptime
		}
		out[k] = v
	}
	return out
}

// WriteMetrics writes the flows in the Prometheus text format to path,
// ready for a node exporter textfile collector
func WriteMetrics(path string, flows []elephant.Result, totalConnections int) error {
	reg := prometheus.NewRegistry()
	m := NewFlowMetrics()
	m.MustRegister(reg)
	m.Apply(flows, totalConnections)

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return util.NewIOError("write metrics", path, err)
	}
	return nil
}

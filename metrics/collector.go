// Package metrics exports framer counters to Prometheus.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/go-msgframe/framer"
)

const subsystem = "framer"

type counter struct {
	desc  *prometheus.Desc
	value *atomic.Uint64
}

// Collector is a prometheus.Collector reading a framer.Metrics.
type Collector struct {
	counters []counter
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector exposing m under namespace.
// constLabels are attached to every series, e.g. the port name.
func NewCollector(namespace string, m *framer.Metrics, constLabels prometheus.Labels) *Collector {
	newCounter := func(name, help string, v *atomic.Uint64) counter {
		return counter{
			desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, nil, constLabels),
			value: v,
		}
	}

	return &Collector{counters: []counter{
		newCounter("frames_sent_total", "Number of frames written to the transport.", &m.FrameSendCount),
		newCounter("frames_received_total", "Number of inbound frames that passed the checksum.", &m.FrameRecvCount),
		newCounter("checksum_errors_total", "Number of inbound frames dropped on checksum mismatch.", &m.ChecksumErrCount),
		newCounter("desync_total", "Number of unexpected bytes found where a start byte was expected.", &m.DesyncCount),
		newCounter("unknown_id_total", "Number of inbound frames with an unregistered message id.", &m.UnknownIDCount),
		newCounter("timeouts_total", "Number of inbound frames aborted by the inter-byte timeout.", &m.TimeoutCount),
		newCounter("flushed_bytes_total", "Number of inbound bytes discarded while resynchronizing.", &m.FlushedByteCount),
		newCounter("encode_errors_total", "Number of sends aborted by an encoder error.", &m.EncodeErrCount),
		newCounter("decode_errors_total", "Number of validated payloads rejected by a decoder.", &m.DecodeErrCount),
	}}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, ctr := range c.counters {
		ch <- ctr.desc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, ctr := range c.counters {
		ch <- prometheus.MustNewConstMetric(ctr.desc, prometheus.CounterValue, float64(ctr.value.Load()))
	}
}

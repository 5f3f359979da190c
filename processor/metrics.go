package processor

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "texec"

// processorMetrics is the execution metrics of a block processor.
type processorMetrics struct {
	blocks       prometheus.Counter
	transactions *prometheus.CounterVec
	gasUsed      prometheus.Counter
	refunded     prometheus.Counter
	blockTime    prometheus.Histogram
}

// newProcessorMetrics creates the metrics and registers them.
func newProcessorMetrics(registerer prometheus.Registerer) (*processorMetrics, error) {
	m := &processorMetrics{
		blocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blocks_processed",
			Help:      "Number of blocks processed",
		}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transactions_executed",
			Help:      "Number of transactions executed, by status",
		}, []string{"status"}),
		gasUsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gas_used",
			Help:      "Gas used by executed transactions",
		}),
		refunded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gas_refunded",
			Help:      "Gas refunded to senders",
		}),
		blockTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "block_process_seconds",
			Help:      "Time spent processing a block",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{m.blocks, m.transactions, m.gasUsed, m.refunded, m.blockTime} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

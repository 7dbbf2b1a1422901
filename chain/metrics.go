// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type chainMetrics struct {
	callsExecuted prometheus.Counter
	callsFailed   prometheus.Counter
	relayAccepted prometheus.Counter
	relayRejected prometheus.Counter
	feesCharged   prometheus.Counter
	feeUnpayable  prometheus.Counter
	stateChanges  prometheus.Counter

	executeLatency metric.Averager
}

func newMetrics(r prometheus.Registerer) (*chainMetrics, error) {
	executeLatency, err := metric.NewAverager(
		"chain_execute_latency",
		"time spent executing and committing a call",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &chainMetrics{
		callsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_executed",
			Help:      "number of calls committed",
		}),
		callsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_failed",
			Help:      "number of committed calls whose action failed",
		}),
		relayAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "relay_accepted",
			Help:      "number of relayed calls accepted by the pre-check",
		}),
		relayRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "relay_rejected",
			Help:      "number of relayed calls rejected by the pre-check",
		}),
		feesCharged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "fees_charged",
			Help:      "number of relay fees charged",
		}),
		feeUnpayable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "fee_unpayable",
			Help:      "number of relayed calls reverted because the fee could not be paid",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		executeLatency: executeLatency,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.callsExecuted),
		r.Register(m.callsFailed),
		r.Register(m.relayAccepted),
		r.Register(m.relayRejected),
		r.Register(m.feesCharged),
		r.Register(m.feeUnpayable),
		r.Register(m.stateChanges),
	)
	return m, errs.Err
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/event"
	"github.com/ava-labs/stormxvm/relay"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
	"github.com/ava-labs/stormxvm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Processor executes actions one at a time against [db]. Every call either
// commits all of its writes (plus a call record) or none of them.
type Processor struct {
	db      state.Database
	rt      Runtime
	clock   *mockable.Clock
	tracer  trace.Tracer
	log     logging.Logger
	metrics *chainMetrics
	subs    []event.Subscription[*Result]

	l       sync.Mutex
	notifyL sync.Mutex
}

func NewProcessor(
	db state.Database,
	rt Runtime,
	clock *mockable.Clock,
	tracer trace.Tracer,
	log logging.Logger,
	registerer prometheus.Registerer,
	subs ...event.Subscription[*Result],
) (*Processor, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Processor{
		db:      db,
		rt:      rt,
		clock:   clock,
		tracer:  tracer,
		log:     log,
		metrics: m,
		subs:    subs,
	}, nil
}

func (p *Processor) Runtime() Runtime {
	return p.rt
}

// State returns a read-only handle on committed state.
func (p *Processor) State() state.Immutable {
	return p.db
}

// Call returns the record persisted for [id].
func (p *Processor) Call(ctx context.Context, id ids.ID) (*storage.CallRecord, bool, error) {
	return storage.GetCall(ctx, p.db, id)
}

// Execute runs [action] as a direct call from [actor].
//
// A failed action is still recorded: the returned Result carries the action
// error and no state other than the call record changes. A non-nil error is
// only returned when nothing was committed.
func (p *Processor) Execute(ctx context.Context, actor codec.Address, action Action) (*Result, error) {
	return p.process(ctx, actor, action, false)
}

// ExecuteRelayed runs [action] on behalf of [caller] through the fee relay.
//
// If the pre-check rejects the call, the rejection is returned and nothing is
// committed. Otherwise the fee is charged whether or not the action succeeds.
func (p *Processor) ExecuteRelayed(ctx context.Context, caller codec.Address, action Action) (*Result, error) {
	return p.process(ctx, caller, action, true)
}

func (p *Processor) process(ctx context.Context, actor codec.Address, action Action, relayed bool) (*Result, error) {
	if action == nil {
		return nil, ErrNilAction
	}
	ctx, span := p.tracer.Start(ctx, "Processor.Execute", oteltrace.WithAttributes(
		attribute.Int("type", int(action.GetTypeID())),
		attribute.String("actor", actor.String()),
		attribute.String("target", action.Target().String()),
		attribute.Bool("relayed", relayed),
	))
	defer span.End()

	res, err := p.commit(ctx, actor, action, relayed)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("success", res.Success))

	// commit hands over [notifyL] so subscribers see calls in commit order
	// while the next call is already committing.
	defer p.notifyL.Unlock()
	if err := event.NotifyAll(ctx, res, p.subs...); err != nil {
		p.log.Warn("unable to notify subscribers", zap.Error(err))
	}
	return res, nil
}

// commit executes and persists a single call under [l]. On success it
// returns with [notifyL] held.
func (p *Processor) commit(ctx context.Context, actor codec.Address, action Action, relayed bool) (*Result, error) {
	p.l.Lock()
	defer p.l.Unlock()

	start := time.Now()
	var (
		ts   = p.clock.Time().UnixMilli()
		view = tstate.New(p.db)
		res  = &Result{
			TypeID:    action.GetTypeID(),
			Actor:     actor,
			Target:    action.Target(),
			Relayed:   relayed,
			Fee:       new(uint256.Int),
			Timestamp: ts,
		}
		charge *relay.Charge
	)
	if relayed {
		c, err := p.rt.Relay().PreCheck(ctx, view, actor, action.Target())
		if err != nil {
			p.metrics.relayRejected.Inc()
			p.log.Debug("relayed call rejected",
				zap.Stringer("caller", actor),
				zap.Stringer("target", action.Target()),
				zap.Error(err),
			)
			return nil, err
		}
		p.metrics.relayAccepted.Inc()
		charge = c
	}

	restore := view.OpIndex()
	actionErr := action.Execute(ctx, p.rt, view, ts, actor)
	if actionErr != nil {
		view.Rollback(ctx, restore)
	}
	if charge != nil {
		if err := p.charge(ctx, view, charge, restore, &actionErr); err != nil {
			return nil, err
		}
		res.Fee = charge.Fee
	}
	res.Success = actionErr == nil
	res.Err = actionErr

	id, err := storage.NextCallID(ctx, view)
	if err != nil {
		return nil, err
	}
	res.CallID = id
	if err := storage.StoreCall(ctx, view, id, res.record()); err != nil {
		return nil, err
	}
	changes := view.Changes()
	if err := p.db.Apply(ctx, changes); err != nil {
		return nil, fmt.Errorf("%w: unable to commit call", err)
	}

	p.metrics.callsExecuted.Inc()
	if !res.Success {
		p.metrics.callsFailed.Inc()
	}
	p.metrics.stateChanges.Add(float64(len(changes)))
	p.metrics.executeLatency.Observe(float64(time.Since(start)))
	p.log.Debug("call committed",
		zap.Stringer("callID", id),
		zap.Uint8("type", res.TypeID),
		zap.Stringer("actor", actor),
		zap.Bool("relayed", relayed),
		zap.Bool("success", res.Success),
		zap.Error(actionErr),
	)
	p.notifyL.Lock()
	return res, nil
}

// charge applies [c] to [view]. If the fee can no longer be paid after a
// successful action, the action is reverted to [restore], [actionErr] is set
// to ErrFeeUnpayable, and the fee is charged against the pre-call state.
func (p *Processor) charge(
	ctx context.Context,
	view *tstate.View,
	c *relay.Charge,
	restore int,
	actionErr *error,
) error {
	afterAction := view.OpIndex()
	err := p.rt.Relay().Charge(ctx, view, c)
	if err == nil {
		if !c.Fee.IsZero() {
			p.metrics.feesCharged.Inc()
		}
		return nil
	}
	view.Rollback(ctx, afterAction)
	if *actionErr != nil {
		return err
	}
	p.metrics.feeUnpayable.Inc()
	view.Rollback(ctx, restore)
	*actionErr = fmt.Errorf("%w: %w", relay.ErrFeeUnpayable, err)
	if err := p.rt.Relay().Charge(ctx, view, c); err != nil {
		return err
	}
	p.metrics.feesCharged.Inc()
	return nil
}

// Close releases every subscription.
func (p *Processor) Close() error {
	var errs []error
	for _, sub := range p.subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/config"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/event"
	"github.com/ava-labs/stormxvm/genesis"
	"github.com/ava-labs/stormxvm/pebble"
	"github.com/ava-labs/stormxvm/rpc"
	"github.com/ava-labs/stormxvm/server"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
	"github.com/ava-labs/stormxvm/version"

	htrace "github.com/ava-labs/stormxvm/trace"
)

const MetricsEndpoint = "/metrics"

var _ rpc.Node = (*Controller)(nil)

// Controller owns the database, the processor and the API of a node.
type Controller struct {
	config *config.Config

	logFactory *logFactory
	log        logging.Logger
	tracer     trace.Tracer
	db         *pebble.Database
	processor  *chain.Processor
	gatherer   prometheus.Gatherers
}

// New opens the database under the configured data directory and applies
// [g] if the database is empty.
func New(ctx context.Context, cfg *config.Config, g *genesis.Genesis) (*Controller, error) {
	c := &Controller{config: cfg}
	c.logFactory = newLogFactory(logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   cfg.LogMaxSize,
			MaxFiles:  cfg.LogMaxFiles,
			MaxAge:    cfg.LogMaxAge,
			Directory: cfg.LogDir,
			Compress:  cfg.LogCompress,
		},
		LogLevel:     cfg.LogLevel,
		DisplayLevel: cfg.LogDisplayLevel,
		LogFormat:    logging.Plain,
	})
	log, err := c.logFactory.Make(consts.Name)
	if err != nil {
		return nil, err
	}
	c.log = log
	c.log.Info("initializing controller",
		zap.Stringer("version", version.Version),
		zap.String("dataDir", cfg.DataDir),
	)

	if err := c.init(ctx, g); err != nil {
		c.log.Error("unable to initialize controller", zap.Error(err))
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Controller) init(ctx context.Context, g *genesis.Genesis) error {
	tracer, err := htrace.New(c.config.GetTraceConfig())
	if err != nil {
		return err
	}
	c.tracer = tracer

	db, dbGatherer, err := storage.New(c.config.GetPebbleConfig(), c.config.DataDir)
	if err != nil {
		return err
	}
	c.db = db

	rt := chain.NewComponents(g.Window())
	err = g.InitializeState(ctx, c.tracer, c.db, rt)
	switch {
	case errors.Is(err, genesis.ErrAlreadyApplied):
		c.log.Info("database already initialized")
	case err != nil:
		return fmt.Errorf("%w: unable to apply genesis", err)
	default:
		c.log.Info("genesis applied", zap.Stringer("owner", g.Owner))
	}

	var factories []event.SubscriptionFactory[*chain.Result]
	if c.config.PublishCalls() {
		factories = append(factories, event.KafkaFactory[*chain.Result]{
			Brokers: c.config.KafkaBrokers,
			Topic:   c.config.KafkaTopic,
			Key:     func(r *chain.Result) []byte { return r.CallID[:] },
		})
		c.log.Info("publishing calls",
			zap.Strings("brokers", c.config.KafkaBrokers),
			zap.String("topic", c.config.KafkaTopic),
		)
	}
	subs, err := event.NewSubscriptions(factories...)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	processor, err := chain.NewProcessor(c.db, rt, &mockable.Clock{}, c.tracer, c.log, registry, subs...)
	if err != nil {
		return err
	}
	c.processor = processor
	c.gatherer = prometheus.Gatherers{registry, dbGatherer}
	return nil
}

func (c *Controller) Logger() logging.Logger        { return c.log }
func (c *Controller) Tracer() trace.Tracer          { return c.tracer }
func (c *Controller) State() state.Immutable        { return c.processor.State() }
func (c *Controller) Runtime() chain.Runtime        { return c.processor.Runtime() }
func (c *Controller) Processor() *chain.Processor   { return c.processor }
func (c *Controller) Gatherer() prometheus.Gatherer { return c.gatherer }

// Run serves the API (and the continuous profiler, when enabled) until [ctx]
// is cancelled or one of them fails.
func (c *Controller) Run(ctx context.Context) error {
	handler, err := rpc.NewJSONRPCHandler(c)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", c.config.RPCAddress)
	if err != nil {
		return err
	}
	srv := server.New(c.log, listener, c.config.GetServerConfig())
	if err := srv.AddRoute(handler, "", rpc.JSONRPCEndpoint); err != nil {
		return err
	}
	if err := srv.AddRoute(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{}), "", MetricsEndpoint); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.log.Info("serving API", zap.Stringer("address", srv.Addr()))
		return srv.Dispatch()
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown()
	})

	pcfg := c.config.GetContinuousProfilerConfig()
	if pcfg.Enabled {
		p := profiler.NewContinuous(pcfg.Dir, pcfg.Freq, pcfg.MaxNumFiles)
		g.Go(p.Dispatch)
		g.Go(func() error {
			<-gctx.Done()
			p.Shutdown()
			return nil
		})
	}

	err = g.Wait()
	c.log.Info("stopped serving", zap.Error(err))
	return err
}

// Close releases every resource of the controller. It is safe to call on a
// partially initialized controller.
func (c *Controller) Close() error {
	var errs []error
	if c.processor != nil {
		errs = append(errs, c.processor.Close())
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	if c.tracer != nil {
		errs = append(errs, c.tracer.Close())
	}
	c.logFactory.Close()
	return errors.Join(errs...)
}

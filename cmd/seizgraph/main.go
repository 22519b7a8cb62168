// Command seizgraph runs a rumor-diffusion scenario from a YAML file and
// writes the results to the configured sinks.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfalcone/seizgraph/pkg/config"
	"github.com/mfalcone/seizgraph/pkg/export"
	"github.com/mfalcone/seizgraph/pkg/graph"
	"github.com/mfalcone/seizgraph/pkg/logging"
	"github.com/mfalcone/seizgraph/pkg/metrics"
	"github.com/mfalcone/seizgraph/pkg/persist"
	"github.com/mfalcone/seizgraph/pkg/pubsub"
	"github.com/mfalcone/seizgraph/pkg/seiz"
	"github.com/mfalcone/seizgraph/pkg/stream"
	"github.com/mfalcone/seizgraph/pkg/visualization"
)

func main() {
	scenarioPath := flag.String("scenario", "", "Path to scenario YAML file (required)")
	outPath := flag.String("out", "", "Output path override (JSON run record)")
	compress := flag.Bool("compress", false, "Write a snappy-compressed archive instead of plain JSON")
	postgresURL := flag.String("postgres", "", "PostgreSQL URL for run persistence (overrides scenario)")
	metricsAddr := flag.String("metrics", "", "Address for the Prometheus metrics endpoint, e.g. :9100")
	streamAddr := flag.String("stream", "", "Address for the snapshot PUB socket, e.g. tcp://*:9400")
	framePath := flag.String("frame", "", "Path for a positioned final-state frame (JSON)")
	flag.Parse()

	var logger logging.Logger = logging.NewDefaultLogger()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: seizgraph -scenario <file.yaml> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	scenario, err := config.Load(*scenarioPath)
	if err != nil {
		logger.Error("failed to load scenario", logging.Error(err))
		os.Exit(1)
	}

	// Flags override the scenario's output section.
	if *outPath != "" {
		scenario.Output.Path = *outPath
	}
	if *compress {
		scenario.Output.Compress = true
	}
	if *postgresURL != "" {
		scenario.Output.PostgresURL = *postgresURL
	}
	if *metricsAddr != "" {
		scenario.Output.MetricsAddr = *metricsAddr
	}
	if *streamAddr != "" {
		scenario.Output.StreamAddr = *streamAddr
	}

	logger = logger.With(logging.Scenario(scenario.Name))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, scenario, *framePath); err != nil {
		logger.Error("run failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logging.Logger, scenario *config.Scenario, framePath string) error {
	registry := metrics.DefaultRegistry()

	if scenario.Output.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: scenario.Output.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics server stopped", logging.Error(err))
			}
		}()
		defer srv.Close()
		logger.Info("metrics endpoint listening", logging.String("addr", scenario.Output.MetricsAddr))
	}

	g, err := scenario.BuildNetwork()
	if err != nil {
		return fmt.Errorf("failed to build network: %w", err)
	}
	registry.UpdateNetwork(g.NumNodes(), g.NumEdges())
	logger.Info("network built",
		logging.String("generator", scenario.Network.Generator),
		logging.Nodes(g.NumNodes()),
		logging.Edges(g.NumEdges()),
	)

	model, err := scenario.BuildModel(g)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	model.InitializeStates(scenario.Run.InfectedFrac, scenario.Run.SkepticFrac, scenario.Run.Seed)
	logger.Info("model initialized",
		logging.Model(model.ModelType()),
		logging.Step(scenario.Run.Steps),
	)

	// The step loop publishes onto an in-process bus; the stream bridge
	// subscribes and forwards to the PUB socket.
	var bus *pubsub.Bus
	if scenario.Output.StreamAddr != "" {
		publisher, err := stream.NewPublisher(scenario.Output.StreamAddr, scenario.Name)
		if err != nil {
			return fmt.Errorf("failed to open stream publisher: %w", err)
		}
		defer publisher.Close()

		bus = pubsub.NewBus()
		sub, err := bus.Subscribe(ctx, scenario.Name)
		if err != nil {
			return fmt.Errorf("failed to subscribe stream bridge: %w", err)
		}

		bridgeDone := make(chan struct{})
		go func() {
			defer close(bridgeDone)
			for event := range sub.Channel() {
				if err := publisher.Publish(event); err != nil {
					logger.Warn("failed to publish snapshot",
						logging.Step(event.Snapshot.Step), logging.Error(err))
					continue
				}
				registry.RecordSnapshotStreamed()
			}
		}()
		defer func() {
			bus.Shutdown()
			<-bridgeDone
		}()

		logger.Info("snapshot stream open", logging.String("addr", scenario.Output.StreamAddr))
	}

	record, err := execute(ctx, registry, scenario, model, bus)
	if err != nil {
		registry.RecordRun(model.ModelType(), "error", 0)
		return err
	}

	final := record.History[len(record.History)-1]
	logger.Info("run finished",
		logging.Model(record.ModelType),
		logging.Int("S", final.S),
		logging.Int("E", final.E),
		logging.Int("I", final.I),
		logging.Int("Z", final.Z),
	)

	if err := writeSinks(ctx, logger, registry, scenario, record); err != nil {
		return err
	}

	if framePath != "" {
		if err := writeFrame(framePath, scenario, g, model); err != nil {
			return fmt.Errorf("frame export failed: %w", err)
		}
		logger.Info("frame written", logging.Sink("frame"), logging.String("path", framePath))
	}

	return nil
}

// writeFrame lays out the network and captures the final node states as a
// positioned JSON frame for external renderers.
func writeFrame(path string, scenario *config.Scenario, g *graph.Graph, model seiz.Model) error {
	layout := visualization.NewForceDirectedLayout(&visualization.LayoutConfig{
		Width:  1200,
		Height: 800,
		Seed:   scenario.Network.Seed,
	})
	positions, err := layout.ComputeLayout(g)
	if err != nil {
		return err
	}
	frame := visualization.BuildFrame(g, positions, model.GetStates(), scenario.Run.Steps)
	return visualization.WriteFrame(path, frame)
}

// execute drives the model step by step so snapshots can be streamed
// live, then assembles the same record Export would produce.
func execute(ctx context.Context, registry *metrics.Registry, scenario *config.Scenario, model seiz.Model, bus *pubsub.Bus) (*seiz.RunRecord, error) {
	if bus == nil {
		start := time.Now()
		model.Run(scenario.Run.Steps)
		registry.RecordRun(model.ModelType(), "success", time.Since(start))
		updatePopulation(registry, model)
		return model.Export()
	}

	g := model.Graph()
	history := make([]seiz.Snapshot, 0, scenario.Run.Steps+1)
	start := time.Now()

	for step := 0; step <= scenario.Run.Steps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		snap := currentSnapshot(model, step)
		history = append(history, snap)

		bus.Publish(scenario.Name, pubsub.Event{
			Scenario: scenario.Name,
			Model:    model.ModelType(),
			Snapshot: snap,
		})

		if step < scenario.Run.Steps {
			stepStart := time.Now()
			model.Step()
			registry.RecordStep(model.ModelType(), time.Since(stepStart))
		}
	}

	registry.RecordRun(model.ModelType(), "success", time.Since(start))
	updatePopulation(registry, model)

	return &seiz.RunRecord{
		ModelType:  model.ModelType(),
		Parameters: model.Params(),
		NetworkInfo: seiz.NetworkInfo{
			NumNodes: g.NumNodes(),
			NumEdges: g.NumEdges(),
		},
		History: history,
	}, nil
}

func currentSnapshot(model seiz.Model, step int) seiz.Snapshot {
	counts := model.CountStates()
	return seiz.Snapshot{
		Step: step,
		S:    counts[seiz.Susceptible],
		E:    counts[seiz.Exposed],
		I:    counts[seiz.Infected],
		Z:    counts[seiz.Skeptic],
	}
}

func updatePopulation(registry *metrics.Registry, model seiz.Model) {
	counts := model.CountStates()
	byName := make(map[string]int, len(counts))
	for state, n := range counts {
		byName[string(state)] = n
	}
	registry.UpdateStatePopulation(model.ModelType(), byName)
}

func writeSinks(ctx context.Context, logger logging.Logger, registry *metrics.Registry, scenario *config.Scenario, record *seiz.RunRecord) error {
	if scenario.Output.Path != "" {
		if scenario.Output.Compress {
			stats, err := export.WriteCompressed(scenario.Output.Path, record)
			if err != nil {
				registry.RecordExport("compressed", "error", 0)
				return fmt.Errorf("compressed export failed: %w", err)
			}
			registry.RecordExport("compressed", "success", int(stats.BytesCompressed))
			logger.Info("archive written",
				logging.Sink("compressed"),
				logging.String("path", scenario.Output.Path),
				logging.Float64("compression_ratio", stats.CompressionRatio),
			)
		} else {
			n, err := export.WriteJSON(scenario.Output.Path, record)
			if err != nil {
				registry.RecordExport("json", "error", 0)
				return fmt.Errorf("JSON export failed: %w", err)
			}
			registry.RecordExport("json", "success", n)
			logger.Info("run record written",
				logging.Sink("json"),
				logging.String("path", scenario.Output.Path),
				logging.Int("bytes", n),
			)
		}
	}

	if scenario.Output.PostgresURL != "" {
		store, err := persist.NewStore(ctx, scenario.Output.PostgresURL)
		if err != nil {
			registry.RecordExport("postgres", "error", 0)
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer store.Close()

		id, err := store.SaveRun(ctx, scenario.Name, record)
		if err != nil {
			registry.RecordExport("postgres", "error", 0)
			return fmt.Errorf("failed to save run: %w", err)
		}
		registry.RecordExport("postgres", "success", 0)
		logger.Info("run persisted", logging.Sink("postgres"), logging.String("run_id", id))
	}

	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fjspga/internal/config"
	"fjspga/internal/evolution"
	"fjspga/internal/fjs"
	"fjspga/internal/fjsp"
	"fjspga/internal/logging"
	"fjspga/internal/metrics"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (defaults and FJSP_* env when empty)")
	instancePath := flag.String("instance", "", "path to .fjs instance (overrides config)")
	generations := flag.Int("generations", 0, "maximum generations (overrides config)")
	mode := flag.String("mode", "", "rate mode: adaptive or fixed (overrides config)")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *instancePath != "" {
		cfg.Instance.Path = *instancePath
	}
	if *generations > 0 {
		cfg.GA.MaxGenerations = *generations
	}
	if *mode != "" {
		cfg.GA.Mode = *mode
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in flags: %v\n", err)
		os.Exit(1)
	}
	if cfg.Instance.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: no instance given (use -instance or instance.path)")
		os.Exit(1)
	}

	log, err := logging.NewZap(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Load instance
	inst, err := fjs.Load(cfg.Instance.Path)
	if err != nil {
		log.Fatal("failed to load instance", zap.Error(err))
	}

	fmt.Printf("FJSP optimizer - Mode: %s\n", cfg.GA.Mode)
	fmt.Printf("Instance: %s (%d jobs, %d machines, %d operations)\n",
		cfg.Instance.Path, inst.JobCount(), inst.MachineCount, inst.OperationCount())
	fmt.Printf("Population: %d, Generations: %d, Keep: %.2f\n",
		cfg.GA.Population, cfg.GA.MaxGenerations, cfg.GA.KeepFraction)
	fmt.Println("---")

	// 1. Build driver
	rng := rand.New(rand.NewSource(cfg.Seed))
	driver, err := evolution.New(*cfg, rng, log)
	if err != nil {
		log.Fatal("failed to create driver", zap.Error(err))
	}

	// 2. Record outputs
	recorder, err := logging.NewLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath, log)
	if err != nil {
		log.Fatal("failed to create record logger", zap.Error(err))
	}
	runID := driver.RunID()
	if err := recorder.Init(runID); err != nil {
		log.Fatal("failed to open record files", zap.Error(err))
	}
	defer recorder.Close()

	observers := []func(evolution.Record){recorder.LogGeneration}

	// 3. Optional metrics endpoint
	if cfg.Metrics.Addr != "" {
		collector := metrics.New()
		observers = append(observers, collector.Observe)

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		log.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
	}

	driver.Observe = func(rec evolution.Record) {
		for _, observe := range observers {
			observe(rec)
		}
	}

	// 4. Run until done or interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := driver.Run(ctx, inst)
	if err := checkRun(res, runErr); err != nil {
		log.Fatal("run failed", zap.Error(err))
	}
	if runErr != nil {
		log.Warn("run ended early, saving best so far", zap.Error(runErr))
	}

	// 5. Save champion and schedule
	if err := logging.SaveChampion(cfg.Logging.ChampionPath, cfg.Instance.Path, res); err != nil {
		log.Warn("failed to save champion", zap.Error(err))
	}
	sched, err := fjsp.Decode(inst, res.Best.OS, res.Best.MS)
	if err != nil {
		log.Warn("failed to decode champion", zap.Error(err))
	} else if err := logging.SaveSchedule(cfg.Logging.SchedulePath, sched); err != nil {
		log.Warn("failed to save schedule", zap.Error(err))
	}

	fmt.Println("---")
	fmt.Printf("Run %s complete (%s): %d generations in %v\n", res.RunID, res.Stopped, res.Generations, res.Elapsed)
	fmt.Printf("Best makespan: %d\n", res.BestMakespan)
	fmt.Printf("Champion: %s, Schedule: %s\n", cfg.Logging.ChampionPath, cfg.Logging.SchedulePath)
}

// checkRun fails a run that ended with an error before any solution existed
func checkRun(res evolution.Result, runErr error) error {
	if runErr != nil && len(res.Best.OS) == 0 {
		return fmt.Errorf("no solution after %d generations: %w", res.Generations, runErr)
	}
	return nil
}

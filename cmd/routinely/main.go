package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/routinely/routinely/internal/delivery"
	"github.com/routinely/routinely/internal/notify"
	"github.com/routinely/routinely/internal/store"
	"github.com/routinely/routinely/internal/temporal/workflows"
	"github.com/routinely/routinely/pkg/config"
	"github.com/routinely/routinely/pkg/models"
)

const version = "0.1.0"

// storeState adapts the persistence layer to the scheduler's snapshot
// interface and carries the injected clock.
type storeState struct {
	store *store.Store
	now   func() time.Time
}

func (s *storeState) GetCurrentTime() time.Time { return s.now() }

func (s *storeState) GetRoutines() ([]models.Routine, error) {
	return s.store.ListRoutines()
}

func (s *storeState) GetSettings() (models.NotificationSettings, error) {
	return s.store.NotificationSettings()
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	runOnce := flag.Bool("once", false, "Run a single scheduling pass and exit")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *showHelp {
		printHelp()
		return
	}

	if *showVersion {
		fmt.Printf("routinely v%s\n", version)
		return
	}

	cfg, err := config.LoadConfigFromFile(*configPath)
	if err != nil {
		log.Printf("Warning: failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}

	// Environment overrides for containerized deployments.
	if host := os.Getenv("TEMPORAL_HOST"); host != "" {
		cfg.Temporal.Host = host
	}
	if ns := os.Getenv("TEMPORAL_NAMESPACE"); ns != "" {
		cfg.Temporal.Namespace = ns
	}
	if dbPath := os.Getenv("ROUTINELY_DB"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			log.Fatalf("failed to resolve database path: %v", err)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("failed to open store at %s: %v", dbPath, err)
	}
	defer s.Close()

	scheduler := notify.NewScheduler(
		&storeState{store: s, now: time.Now},
		delivery.NewJournal(s),
	)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *runOnce {
		result, err := scheduler.Schedule(runCtx)
		if err != nil {
			log.Fatalf("scheduling pass failed: %v", err)
		}
		fmt.Printf("outcome=%s planned=%d registered=%d\n", result.Outcome, result.SlotsPlanned, result.Registered)
		return
	}

	if cfg.Temporal.Enabled {
		if err := runTemporalWorker(runCtx, cfg, scheduler); err != nil {
			log.Fatalf("temporal worker failed: %v", err)
		}
		return
	}

	runLocalLoop(runCtx, cancel, cfg, scheduler)
}

// runLocalLoop drives scheduling passes on a fixed interval without a
// Temporal server. One pass runs immediately on startup.
func runLocalLoop(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, scheduler *notify.Scheduler) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	ticker := time.NewTicker(cfg.Scheduler.Interval.Std())
	defer ticker.Stop()

	log.Printf("routinely started, rescheduling every %v", cfg.Scheduler.Interval.Std())

	if _, err := scheduler.Schedule(ctx); err != nil {
		log.Printf("scheduling pass failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("shutting down")
			return
		case <-ticker.C:
			if _, err := scheduler.Schedule(ctx); err != nil {
				log.Printf("scheduling pass failed: %v", err)
			}
		}
	}
}

// runTemporalWorker registers the reminder workflow and activity and
// starts the periodic workflow if it is not already running.
func runTemporalWorker(ctx context.Context, cfg *config.Config, scheduler *notify.Scheduler) error {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return fmt.Errorf("connect to temporal at %s: %w", cfg.Temporal.Host, err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.ReminderWorkflow)

	act := notify.NewRescheduleActivity(scheduler)
	w.RegisterActivityWithOptions(act.Reschedule, activity.RegisterOptions{
		Name: act.GetActivityName(),
	})

	// Kick off the periodic workflow; an AlreadyStarted error means a
	// previous run is still driving the schedule.
	_, err = c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "routinely-reminder-scheduler",
		TaskQueue: cfg.Temporal.TaskQueue,
	}, workflows.ReminderWorkflow, workflows.ReminderWorkflowInput{
		Interval: cfg.Scheduler.Interval.Std(),
	})
	if err != nil {
		log.Printf("Warning: could not start reminder workflow: %v", err)
	}

	log.Printf("temporal worker started on task queue %s", cfg.Temporal.TaskQueue)
	return w.Run(worker.InterruptCh())
}

func printHelp() {
	fmt.Println("routinely - habit reminder scheduling service")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  routinely [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -config string   Path to configuration file (default \"config.yaml\")")
	fmt.Println("  -once            Run a single scheduling pass and exit")
	fmt.Println("  -version         Show version information")
	fmt.Println("  -help            Show this help message")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  TEMPORAL_HOST        Temporal server address override")
	fmt.Println("  TEMPORAL_NAMESPACE   Temporal namespace override")
	fmt.Println("  ROUTINELY_DB         Database path override")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gilesshaxted/karma/internal/bot"
	"github.com/gilesshaxted/karma/internal/commands"
	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/database"
	"github.com/gilesshaxted/karma/internal/detector"
	"github.com/gilesshaxted/karma/internal/enforce"
	"github.com/gilesshaxted/karma/internal/escalate"
	"github.com/gilesshaxted/karma/internal/forensics"
	"github.com/gilesshaxted/karma/internal/history"
	"github.com/gilesshaxted/karma/internal/logging"
	"github.com/gilesshaxted/karma/internal/metrics"
	"github.com/gilesshaxted/karma/internal/notifier"
)

func main() {
	fmt.Println("Starting karma moderation bot")

	_ = godotenv.Load()
	cfg := config.LoadOrDefault("config.json")

	if cfg.Bot.Token == "" {
		fmt.Println("No bot token configured (set DISCORD_TOKEN)")
		os.Exit(1)
	}

	if err := initializeLogging(cfg); err != nil {
		panic(err)
	}

	if err := database.Initialize(cfg.Database.Path); err != nil {
		panic(err)
	}

	config.InitGuildProfiles()
	metrics.Serve(cfg.Metrics.ListenAddr)

	components := startComponents(cfg)

	if err := initializeBot(cfg, components); err != nil {
		panic(err)
	}

	logging.Info("All components started")

	waitForShutdown()

	stopComponents(components)
	bot.GetSession().Close()
	database.Close()
	logging.Info("Shutdown complete")
}

type Components struct {
	historyStore *history.Store
	detectorInst *detector.Detector
	jobQueue     *enforce.JobQueue
	tracker      *escalate.Tracker
	trail        *forensics.Trail
	workers      []*enforce.Worker
	startTime    time.Time
}

func startComponents(cfg *config.Config) *Components {
	historyStore := history.NewStore(uint32(cfg.Enforce.HistorySize))
	detectorInst := detector.New(historyStore, detector.NewRoleExemption())
	jobQueue := enforce.NewJobQueue(uint32(cfg.Enforce.QueueSize))

	httpPool := enforce.NewHTTPPool(cfg.Enforce.HTTPPoolSize)
	httpPool.Warmup(cfg.Enforce.APIBaseURL)
	rateLimiter := enforce.NewRateLimitMonitor()
	executor := enforce.NewRESTExecutor(httpPool, rateLimiter, cfg.Bot.Token, cfg.Enforce.APIBaseURL)

	store := escalationStore(cfg)
	tracker := escalate.NewTracker(store, cfg.Escalation, executor, notifier.NewStaffAlerter())

	var trail *forensics.Trail
	if cfg.Forensics.Enabled {
		t, err := forensics.NewTrail(cfg.Forensics.Path)
		if err != nil {
			logging.Warn("Forensic trail unavailable: %v", err)
		} else {
			trail = t
		}
	}

	pipeline := enforce.NewPipeline(executor, database.GetDB(), channelNotifier{}, tracker, trail, cfg.Bot.ClientID)

	workers := make([]*enforce.Worker, cfg.Enforce.WorkerCount)
	for i := range workers {
		workers[i] = enforce.NewWorker(jobQueue, pipeline, i)
		go workers[i].Start()
	}

	return &Components{
		historyStore: historyStore,
		detectorInst: detectorInst,
		jobQueue:     jobQueue,
		tracker:      tracker,
		trail:        trail,
		workers:      workers,
		startTime:    time.Now(),
	}
}

// escalationStore picks redis when configured, otherwise the in-memory store.
// In-memory counters reset on restart, which is acceptable: the durable audit
// log is the permanent record.
func escalationStore(cfg *config.Config) escalate.Store {
	if cfg.Redis.Addr == "" {
		return escalate.NewMemStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := escalate.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logging.Warn("Redis unavailable, falling back to in-memory escalation store: %v", err)
		return escalate.NewMemStore()
	}
	logging.Info("Escalation store: redis at %s", cfg.Redis.Addr)
	return store
}

func initializeBot(cfg *config.Config, components *Components) error {
	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		return err
	}

	session := bot.GetSession()
	session.SetupEventHandlers(&bot.Pipeline{
		History:  components.historyStore,
		Detector: components.detectorInst,
		Queue:    components.jobQueue,
	})

	if err := session.Connect(); err != nil {
		return err
	}

	if err := session.SyncGuildsFromDatabase(database.GetDB()); err != nil {
		logging.Warn("Guild sync failed: %v", err)
	}

	notifier.SetSession(session.GetDiscord())

	return commands.Initialize(session, commands.Deps{
		Queue:     components.jobQueue,
		Workers:   components.workers,
		Tracker:   components.tracker,
		StartTime: components.startTime,
	})
}

func initializeLogging(cfg *config.Config) error {
	return logging.InitGlobalLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Path)
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutdown signal received")
}

func stopComponents(components *Components) {
	for _, worker := range components.workers {
		worker.Stop()
	}
	if components.trail != nil {
		components.trail.Close()
	}
}

// channelNotifier adapts the notifier package functions to the pipeline's
// UserNotifier interface.
type channelNotifier struct{}

func (channelNotifier) NotifyInfraction(channelID, userID, reason string, caseNumber int64) {
	notifier.NotifyInfraction(channelID, userID, reason, caseNumber)
}

func (channelNotifier) SendModLog(channelID, actionType, userID, reason, content string, caseNumber int64) {
	notifier.SendModLog(channelID, actionType, userID, reason, content, caseNumber)
}

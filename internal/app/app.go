package app

import (
	"context"
	"sync"
	"time"

	"postpilot/internal/config"
	"postpilot/internal/notify"
	"postpilot/internal/scheduler"
	"postpilot/internal/slot"
	"postpilot/internal/store"
	logx "postpilot/pkg/logx"
)

// App wires config, logging, the slot store and the scheduler into a
// runnable daemon.
type App struct {
	cfgm *config.Manager

	logs *logx.Service
	log  logx.Logger

	sender *notify.Telegram
	st     store.Store
	sched  *scheduler.Service

	jobs *jobs

	wg sync.WaitGroup
}

func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}

	bootLog := logx.NewConsole("INFO").With(logx.String("comp", "notify"))
	sender, err := notify.NewTelegram(notify.Config{
		Token:  cfg.Telegram.Token,
		ChatID: cfg.Telegram.ChatID,
	}, bootLog)
	if err != nil {
		return nil, err
	}

	var logSender logx.Sender
	if sender != nil {
		logSender = sender
	}
	logs, log := logx.New(mapLogging(cfg), logSender)
	log = log.With(logx.String("comp", "app"))
	cfgm.SetLogger(logs.Logger().With(logx.String("comp", "config")))

	storeCfg, err := mapStore(cfg)
	if err != nil {
		logs.Close()
		return nil, err
	}
	st, err := store.Open(storeCfg, logs.Logger().With(logx.String("comp", "store")))
	if err != nil {
		logs.Close()
		return nil, err
	}
	if st != nil {
		log.Info("slot store enabled", logx.String("driver", storeCfg.Driver))
	}

	schedCfg, err := mapScheduler(cfg)
	if err != nil {
		logs.Close()
		return nil, err
	}
	sched := scheduler.New(schedCfg, st, logs.Logger().With(logx.String("comp", "scheduler")))

	a := &App{
		cfgm:   cfgm,
		logs:   logs,
		log:    log,
		sender: sender,
		st:     st,
		sched:  sched,
	}
	a.jobs = newJobs(a, cfg.Maintenance)
	return a, nil
}

// Scheduler exposes the service for embedders (the publishing orchestrator
// calls it directly; there is no network surface).
func (a *App) Scheduler() *scheduler.Service { return a.sched }

func (a *App) Start(ctx context.Context) error {
	a.sched.Init(ctx)
	a.jobs.start()

	// Config hot reload: re-apply logging on change. Store/scheduler changes
	// need a restart and are logged as such.
	sub := a.cfgm.Subscribe(1)
	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		_ = a.cfgm.Watch(ctx)
	}()
	go func() {
		defer a.wg.Done()
		for {
			select {
			case <-ctx.Done():
				a.cfgm.Unsubscribe(sub)
				return
			case cfg, ok := <-sub:
				if !ok {
					return
				}
				a.logs.Apply(mapLogging(cfg))
				a.log.Info("applied logging config; store/scheduler changes need restart")
			}
		}
	}()

	a.log.Info("postpilot started")
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	a.jobs.stop()

	// Final snapshot before shutdown.
	a.sched.SaveNow(ctx)

	a.wg.Wait()
	if a.st != nil {
		_ = a.st.Close()
	}
	_ = a.logs.Close()
	return nil
}

func mapLogging(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
		Ops: logx.OpsConfig{
			Enabled:    cfg.Logging.Ops.Enabled,
			MinLevel:   cfg.Logging.Ops.MinLevel,
			RatePerSec: cfg.Logging.Ops.RatePerSec,
		},
	}
}

func mapStore(cfg *config.Config) (store.Config, error) {
	busy, err := config.ParseDurationField("store.busy_timeout", cfg.Store.BusyTimeout)
	if err != nil {
		return store.Config{}, err
	}
	return store.Config{
		Driver:      cfg.Store.Driver,
		Path:        cfg.Store.Path,
		BusyTimeout: busy,
		DSN:         cfg.Store.DSN,
		Addr:        cfg.Store.Addr,
		Password:    cfg.Store.Password,
		DB:          cfg.Store.DB,
		KeyPrefix:   cfg.Store.KeyPrefix,
	}, nil
}

func mapScheduler(cfg *config.Config) (scheduler.Config, error) {
	saveTimeout, err := config.ParseDurationOrDefault("scheduler.save_timeout", cfg.Scheduler.SaveTimeout, 5*time.Second)
	if err != nil {
		return scheduler.Config{}, err
	}
	var defaults map[string][]slot.Key
	if len(cfg.Platforms) > 0 {
		defaults = make(map[string][]slot.Key, len(cfg.Platforms))
		for platform, keys := range cfg.Platforms {
			ks := make([]slot.Key, 0, len(keys))
			for _, k := range keys {
				ks = append(ks, slot.Key{Hour: k.Hour, Weekday: k.Weekday})
			}
			defaults[platform] = ks
		}
	}
	return scheduler.Config{
		HorizonDays:      cfg.Scheduler.HorizonDays,
		MinGapHours:      cfg.Scheduler.MinGapHours,
		SaveTimeout:      saveTimeout,
		Timezone:         cfg.Scheduler.Timezone,
		PlatformZones:    cfg.Scheduler.PlatformZones,
		PlatformDefaults: defaults,
	}, nil
}

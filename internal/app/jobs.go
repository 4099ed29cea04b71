package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"postpilot/internal/config"
	"postpilot/internal/slot"
	logx "postpilot/pkg/logx"
)

// jobs runs the background maintenance schedule: periodic grid snapshots and
// the optional analytics digest to the ops chat.
type jobs struct {
	app *App
	cfg config.MaintenanceConfig
	c   *cron.Cron
}

func newJobs(a *App, cfg config.MaintenanceConfig) *jobs {
	return &jobs{app: a, cfg: cfg}
}

func (j *jobs) start() {
	log := j.app.log.With(logx.String("comp", "maintenance"))
	j.c = cron.New()

	snapshotSpec := strings.TrimSpace(j.cfg.SnapshotSpec)
	if snapshotSpec == "" {
		snapshotSpec = "@hourly"
	}
	if _, err := j.c.AddFunc(snapshotSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		j.app.sched.SaveNow(ctx)
	}); err != nil {
		log.Warn("invalid snapshot spec; snapshots disabled", logx.String("spec", snapshotSpec), logx.Err(err))
	}

	if digestSpec := strings.TrimSpace(j.cfg.DigestSpec); digestSpec != "" && j.app.sender != nil {
		if _, err := j.c.AddFunc(digestSpec, j.sendDigest); err != nil {
			log.Warn("invalid digest spec; digest disabled", logx.String("spec", digestSpec), logx.Err(err))
		}
	}

	j.c.Start()
}

func (j *jobs) stop() {
	if j.c != nil {
		<-j.c.Stop().Done()
	}
}

func (j *jobs) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	platforms := j.cfg.DigestPlatforms
	if len(platforms) == 0 {
		platforms = slot.DefaultPlatforms()
	}

	var b strings.Builder
	b.WriteString("postpilot digest\n")
	for _, platform := range platforms {
		a := j.app.sched.PostingAnalytics(platform)
		pa, ok := a.Platforms[platform]
		if !ok || pa.SlotCount == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %d slots, avg score %.3f, avg confidence %.3f\n",
			platform, pa.SlotCount, pa.AvgScore, pa.AvgConfidence)
		for _, best := range pa.BestTimes {
			fmt.Fprintf(&b, "  %s  score=%.3f conf=%.3f n=%d\n",
				best.Label, best.Score, best.Confidence, best.Samples)
		}
	}

	stats := j.app.sched.Stats()
	fmt.Fprintf(&b, "\nrecords=%d fallbacks=%d save_failures=%d load_fallbacks=%d explorations=%d",
		stats.Records, stats.Fallbacks, stats.SaveFailures, stats.LoadFallbacks, stats.Explorations)

	if err := j.app.sender.SendText(ctx, b.String()); err != nil {
		j.app.log.Warn("digest send failed", logx.Err(err))
	}
}

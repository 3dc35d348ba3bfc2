package app

import (
	"context"
	"time"

	"github.com/folio-space/core/internal/modules/backup"
	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers the scheduled background jobs.
func (a *App) registerCronJobs(backupSvc *backup.Service, deps Deps) {
	cronLogger := a.logger.Named("CronService")
	register := func(job pkgcron.Job) {
		if err := a.sched.Register(job); err != nil {
			cronLogger.Warn("cron job not registered", zap.String("job", job.Name), zap.Error(err))
		}
	}

	if backupSvc.Uploads() {
		register(pkgcron.Job{
			Name:        "auto_backup",
			Description: "Upload a content snapshot to object storage",
			Interval:    a.cfg.Backup.Interval,
			Fn: func(ctx context.Context) error {
				res, err := backupSvc.Run(ctx)
				if err != nil {
					return err
				}
				cronLogger.Info("backup finished", zap.String("key", res.Key), zap.Int("size", res.Size))
				return nil
			},
		})
	}

	if days := a.cfg.Analytics.RetentionDays; days > 0 {
		register(pkgcron.Job{
			Name:        "cleanup_analytics",
			Description: "Drop analytics events older than the retention window",
			Interval:    24 * time.Hour,
			Fn: func(ctx context.Context) error {
				cutoff := time.Now().AddDate(0, 0, -days)
				removed, err := deps.Store.Events().Prune(ctx, cutoff)
				if err != nil {
					return err
				}
				cronLogger.Info("analytics cleanup finished",
					zap.Int64("removed", removed),
					zap.Int("retentionDays", days),
				)
				return nil
			},
		})
	}
}

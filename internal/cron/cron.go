package cron

import (
	"sync"

	cronv3 "github.com/robfig/cron/v3"

	"github.com/customeros/mailsweep/internal/logger"
)

// CronManager runs scheduled sweeps. One job entry per schedule spec; a job
// that is still running when its next tick fires is skipped, never stacked.
type CronManager struct {
	log    logger.Logger
	cron   *cronv3.Cron
	jobIDs map[string]cronv3.EntryID
	mu     sync.Mutex
}

func NewCronManager(log logger.Logger) *CronManager {
	return &CronManager{
		log:    log,
		cron:   cronv3.New(),
		jobIDs: make(map[string]cronv3.EntryID),
	}
}

// Schedule registers job under the given cron spec. The job is wrapped in a
// per-name lock so overlapping runs are dropped with a log line.
func (cm *CronManager) Schedule(name, spec string, job func()) error {
	var running sync.Mutex

	id, err := cm.cron.AddFunc(spec, func() {
		if !running.TryLock() {
			cm.log.Warnf("job %s still running, skipping this tick", name)
			return
		}
		defer running.Unlock()
		job()
	})
	if err != nil {
		return err
	}

	cm.mu.Lock()
	cm.jobIDs[name] = id
	cm.mu.Unlock()

	cm.log.Infof("scheduled job %s with spec %q", name, spec)
	return nil
}

func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
	cm.log.Info("cron manager stopped")
}

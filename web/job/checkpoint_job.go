// Package job holds the background tasks the web server schedules on its cron.
package job

import (
	"github.com/healthai/riskpanel/database"
	"github.com/healthai/riskpanel/logger"

	"go.uber.org/atomic"
	"gorm.io/gorm"
)

// CheckpointJob folds the sqlite write-ahead log back into the database file.
// A run that starts while the previous one is still going is skipped.
type CheckpointJob struct {
	db      *gorm.DB
	running atomic.Bool
	runs    atomic.Int64
}

func NewCheckpointJob(db *gorm.DB) *CheckpointJob {
	return &CheckpointJob{db: db}
}

func (j *CheckpointJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		logger.Debug("checkpoint job still running, skipping")
		return
	}
	defer j.running.Store(false)

	if err := database.Checkpoint(j.db); err != nil {
		logger.Warning("checkpoint job err:", err)
		return
	}
	j.runs.Inc()
}

// Runs returns how many checkpoints completed.
func (j *CheckpointJob) Runs() int64 {
	return j.runs.Load()
}

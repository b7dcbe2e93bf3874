// Package job holds the cron jobs scheduled by the web server.
package job

import (
	"github.com/ifsp/cadastro/database"
	"github.com/ifsp/cadastro/logger"
)

// CheckpointJob folds the SQLite write-ahead log back into the database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
		return
	}
	logger.Debug("database checkpoint done")
}

package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Env    *config.Env
	Store  db.ScheduleStore
	Logger *zap.Logger
	Ctx    context.Context
}

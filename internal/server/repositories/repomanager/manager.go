package repomanager

import (
	"context"
	"database/sql"

	"github.com/akshatj27/signspeak/internal/dbx"
	"github.com/akshatj27/signspeak/internal/server/repositories/users"
	"github.com/akshatj27/signspeak/internal/server/repositories/videos"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Videos(db dbx.DBTX) videos.Repository
}

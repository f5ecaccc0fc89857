package sessions

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// PostgresStore keeps sessions in the sessions table.
type PostgresStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostgresStore(db *sql.DB, m repomanager.RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, repomanager: m, now: time.Now}
}

// Save purges the subject's expired sessions and inserts s in one transaction.
func (p *PostgresStore) Save(ctx context.Context, s *models.Session) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := p.repomanager.Sessions(tx)
		if err := repo.DeleteExpired(ctx, s.Email, p.now()); err != nil {
			return err
		}
		return repo.Create(ctx, s)
	})
}

func (p *PostgresStore) Find(ctx context.Context, id string) (*models.Session, error) {
	return p.repomanager.Sessions(p.db).Find(ctx, id)
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	return p.repomanager.Sessions(p.db).Delete(ctx, id)
}

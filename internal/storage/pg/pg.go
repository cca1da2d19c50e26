package pg

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/postline-dev/postline/internal/config"
	"github.com/postline-dev/postline/internal/logger"
)

// Storage is the relational gateway for groups, posts, comments and
// users. Each create/update runs in its own transaction; there is no
// cross-request locking, concurrent edits are last-write-wins.
type Storage struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Public.Pg.Host, "dbname", cfg.Public.Pg.Dbname)
	db, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	s := &Storage{db}
	if cfg.Public.Pg.InitPath != "" {
		if err := s.applyInit(cfg.Public.Pg.InitPath); err != nil {
			db.Close()
			return nil, err
		}
	}
	logger.Log.Info("connected to db")
	return s, nil
}

func connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Public.Pg.Host, cfg.Public.Pg.Port, cfg.Public.Pg.User, cfg.Private.PgPassword, cfg.Public.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func (s *Storage) applyInit(initPath string) error {
	script, err := os.ReadFile(initPath)
	if err != nil {
		return fmt.Errorf("reading init script: %w", err)
	}
	if _, err := s.db.Exec(string(script)); err != nil {
		return fmt.Errorf("applying init script: %w", err)
	}
	return nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultSlowThreshold = 500 * time.Millisecond
)

var errNotInitialized = errors.New("mysql store is not initialized")

// Store — реализация domain.Store поверх gorm и драйвера MySQL.
type Store struct {
	db *gorm.DB
}

// Open подключается к MySQL по DSN вида user:pass@tcp(host:port)/db?parseTime=true.
// Логи gorm направляются в logrus, чтобы не смешиваться с выводом оболочки.
func Open(ctx context.Context, dsn string, entry *log.Entry) (*Store, error) {
	if entry == nil {
		entry = log.WithField("component", "mysql-store")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.New(entry, logger.Config{
			SlowThreshold:             defaultSlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}

	store := &Store{db: db}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return store, nil
}

// EnsureSchema создаёт недостающие таблицы и индексы.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errNotInitialized
	}
	if err := s.db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// InTx выполняет fn в транзакции gorm: nil фиксирует изменения, ошибка откатывает.
func (s *Store) InTx(ctx context.Context, fn func(repos domain.Repositories) error) error {
	if s == nil || s.db == nil {
		return errNotInitialized
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repositoriesFor(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errNotInitialized
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

func repositoriesFor(tx *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Customers: &customerRepository{db: tx},
		Products:  &productRepository{db: tx},
		Orders:    &orderRepository{db: tx},
		Summaries: &summaryRepository{db: tx},
	}
}

var _ domain.Store = (*Store)(nil)

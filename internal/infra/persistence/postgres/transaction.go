package postgres

import (
	"context"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds one GORM transaction and hands out repository instances bound to
// it, so every queue mutation in an Execute callback shares the hub row lock.
type gormRepositoryFactory struct {
	tx *gorm.DB // a GORM transaction is itself a *gorm.DB
}

// NewHubRepository creates a hub repository bound to the transaction.
func (f *gormRepositoryFactory) NewHubRepository() repository.HubRepository {
	return NewHubRepository(f.tx)
}

// NewBindingRepository creates a binding repository bound to the transaction.
func (f *gormRepositoryFactory) NewBindingRepository() repository.BindingRepository {
	return NewBindingRepository(f.tx)
}

// NewQueueRepository creates a queue repository bound to the transaction.
func (f *gormRepositoryFactory) NewQueueRepository() repository.QueueRepository {
	return NewQueueRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// A panic inside the callback must not leave the transaction, and with it
	// the hub queue lock, dangling.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

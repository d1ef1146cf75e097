package repository

import "context"

// TransactionManager lets the use case layer run work transactionally
// without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs fn inside one database transaction: committed when fn
	// returns nil, rolled back otherwise. Repositories obtained from the
	// factory all operate on that same transaction, which is what makes
	// the per-hub queue lock effective.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to the
// transaction an Execute callback is running in.
type RepositoryFactory interface {
	// NewHubRepository returns a HubRepository instance bound to the current transaction.
	NewHubRepository() HubRepository

	// NewBindingRepository returns a BindingRepository instance bound to the current transaction.
	NewBindingRepository() BindingRepository

	// NewQueueRepository returns a QueueRepository instance bound to the current transaction.
	NewQueueRepository() QueueRepository
}

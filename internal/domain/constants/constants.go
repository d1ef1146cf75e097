// Package constants holds shared domain constants.
package constants

// Pub/Sub provider names accepted by configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Audit categories.
const (
	AuditCategoryQueue   = "queue"
	AuditCategoryHub     = "hub"
	AuditCategoryBinding = "binding"
)

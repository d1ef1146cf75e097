package service

import "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"

// Action names an operation subject to the authorization policy.
type Action string

const (
	ActionManageHubs       Action = "manage_hubs"
	ActionManageBindings   Action = "manage_bindings"
	ActionListQueue        Action = "list_queue"
	ActionDispatch         Action = "dispatch"
	ActionDispatchPriority Action = "dispatch_priority"
	ActionMoveToBack       Action = "move_to_back"
	ActionRemove           Action = "remove"
)

// Authorize is the single policy decision point consulted by every
// admin-only operation. Role checks live here rather than scattered across
// handlers.
func Authorize(role entity.Role, action Action) bool {
	switch action {
	case ActionManageHubs, ActionManageBindings, ActionListQueue,
		ActionDispatch, ActionDispatchPriority, ActionMoveToBack, ActionRemove:
		return role == entity.RoleAdmin
	default:
		return false
	}
}

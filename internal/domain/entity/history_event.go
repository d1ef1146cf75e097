package entity

import (
	"time"

	"github.com/google/uuid"
)

// HistoryAction identifies the queue transition that produced a history event.
// The values are kept in the operational vocabulary used by the dispatch team.
type HistoryAction string

const (
	HistoryActionEntrance       HistoryAction = "entrada"
	HistoryActionReturn         HistoryAction = "retorno"
	HistoryActionPriorityReturn HistoryAction = "retorno_prioridade"
	HistoryActionDispatched     HistoryAction = "enviado_rota"
	HistoryActionDispatchedOnce HistoryAction = "enviado_rota_unica"
	HistoryActionMovedToBack    HistoryAction = "movido_ultimo"
	HistoryActionRemoved        HistoryAction = "removido"
	HistoryActionVoluntaryExit  HistoryAction = "saida_voluntaria"
)

// HistoryEvent is one append-only ledger record of a queue transition.
// Hub and professional names are snapshotted so reports survive renames
// and unbinds.
type HistoryEvent struct {
	ID             uuid.UUID     `json:"id"`
	HubID          uuid.UUID     `json:"hub_id"`
	HubName        string        `json:"hub_name"`
	ProfessionalID uuid.UUID     `json:"professional_id"`
	DisplayName    string        `json:"display_name"`
	Action         HistoryAction `json:"action"`
	WaitMinutes    *int          `json:"wait_minutes,omitempty"`     // minutes between entering waiting and dispatch
	EnRouteMinutes *int          `json:"en_route_minutes,omitempty"` // minutes between dispatch and return/removal
	Note           string        `json:"note,omitempty"`
	AdminID        *uuid.UUID    `json:"admin_id,omitempty"` // acting admin, nil for self-service transitions
	CreatedAt      time.Time     `json:"created_at"`
}

package dto

import "github.com/noah-isme/audit-mgmt-api/internal/models"

// IDsRequest replaces a many-to-many set with the listed identifiers.
type IDsRequest struct {
	IDs []string `json:"ids" validate:"omitempty,dive,uuid"`
}

// PairsRequest replaces a set of process/control pairs.
type PairsRequest struct {
	Pairs []PairRequest `json:"pairs" validate:"omitempty,dive"`
}

// PairRequest identifies one process/control pair.
type PairRequest struct {
	ProcessID string `json:"process_id" validate:"required,uuid"`
	ControlID string `json:"control_id" validate:"required,uuid"`
}

// ToModels converts the payload into model pairs.
func (r PairsRequest) ToModels() []models.ProcessControl {
	pairs := make([]models.ProcessControl, len(r.Pairs))
	for i, p := range r.Pairs {
		pairs[i] = models.ProcessControl{ProcessID: p.ProcessID, ControlID: p.ControlID}
	}
	return pairs
}

// ParticipantsRequest replaces the participants of an audit program.
type ParticipantsRequest struct {
	Participants []ParticipantRequest `json:"participants" validate:"omitempty,dive"`
}

// ParticipantRequest assigns a user to a program with an hour budget.
type ParticipantRequest struct {
	UserID       string  `json:"user_id" validate:"required,uuid"`
	Role         string  `json:"role" validate:"omitempty,max=100"`
	PlannedHours float64 `json:"planned_hours" validate:"gte=0"`
}

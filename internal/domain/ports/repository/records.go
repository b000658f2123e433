package repository

import (
	"context"

	"vaultvpn-bot/internal/domain/model"
)

// PlanRecordRepository keeps the issued-plan record per chat. Save overwrites
// any previous record for the same chat; there is no purchase history.
type PlanRecordRepository interface {
	Save(ctx context.Context, r *model.UserPlanRecord) error
	// Find returns domain.ErrNotFound when the chat has never been approved.
	Find(ctx context.Context, chatID int64) (*model.UserPlanRecord, error)
	All(ctx context.Context) ([]*model.UserPlanRecord, error)
}

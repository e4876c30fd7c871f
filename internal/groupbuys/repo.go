package groupbuys

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// ErrStaleCounters signals that the guarded counter update matched zero
// rows: the campaign changed between read and write, or left the active
// status.
var ErrStaleCounters = errors.New("group buy counters changed")

// Repository handles group buy persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to group buy operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new campaign row.
func (r *Repository) Create(ctx context.Context, dto CreateGroupBuyDTO) (*models.GroupBuy, error) {
	groupBuy := dto.ToModel()
	groupBuy.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(groupBuy).Error; err != nil {
		return nil, err
	}
	return groupBuy, nil
}

// FindByID loads a campaign by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GroupBuy, error) {
	var groupBuy models.GroupBuy
	if err := r.db.WithContext(ctx).First(&groupBuy, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &groupBuy, nil
}

// FindByIDs loads the campaigns matching the provided ID set.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GroupBuy, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.GroupBuy
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListActive returns campaigns that are active and still ahead of their
// deadline, newest first.
func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]models.GroupBuy, error) {
	var list []models.GroupBuy
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline > ?", enums.GroupBuyStatusActive, now).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByCreator returns the campaigns a vendor started, newest first.
func (r *Repository) ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]models.GroupBuy, error) {
	var list []models.GroupBuy
	err := r.db.WithContext(ctx).
		Where("created_by = ?", createdBy).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindParticipant loads a vendor's participation row for one campaign.
func (r *Repository) FindParticipant(ctx context.Context, groupBuyID, vendorID uuid.UUID) (*models.GroupParticipant, error) {
	var participant models.GroupParticipant
	err := r.db.WithContext(ctx).
		First(&participant, "group_buy_id = ? AND vendor_id = ?", groupBuyID, vendorID).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListParticipations returns every participation row a vendor holds.
func (r *Repository) ListParticipations(ctx context.Context, vendorID uuid.UUID) ([]models.GroupParticipant, error) {
	var list []models.GroupParticipant
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("joined_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CountActiveByCreator counts a vendor's currently active campaigns.
func (r *Repository) CountActiveByCreator(ctx context.Context, createdBy uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GroupBuy{}).
		Where("created_by = ? AND status = ?", createdBy, enums.GroupBuyStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Join inserts the participant row and bumps the campaign counters in one
// transaction. The counter update is guarded on the participant count and
// the active status observed by the caller; a concurrent join, a status
// change or a vanished row all surface as ErrStaleCounters.
func (r *Repository) Join(ctx context.Context, groupBuyID, vendorID uuid.UUID, quantity, expectedParticipants int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participant := &models.GroupParticipant{
			ID:         uuid.New(),
			GroupBuyID: groupBuyID,
			VendorID:   vendorID,
			Quantity:   quantity,
			JoinedAt:   time.Now().UTC(),
		}
		if err := tx.Create(participant).Error; err != nil {
			return err
		}

		result := tx.Model(&models.GroupBuy{}).
			Where("id = ? AND current_participants = ? AND status = ?",
				groupBuyID, expectedParticipants, enums.GroupBuyStatusActive).
			Updates(map[string]any{
				"current_quantity":     gorm.Expr("current_quantity + ?", quantity),
				"current_participants": gorm.Expr("current_participants + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleCounters
		}
		return nil
	})
}

package userrepo

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserDirectory implements ports.UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Profiles loads the users with the given ids in one query.
func (d *GormUserDirectory) Profiles(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.UserProfile, error) {
	profiles := make(map[kernel.UUID]ports.UserProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []UserDTO
	if err := d.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		profiles[id] = ports.UserProfile{ID: id, Name: dto.Name, Email: dto.Email}
	}
	return profiles, nil
}

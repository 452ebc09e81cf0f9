// Package branchrepo reads the branch directory. Branches are maintained outside the
// tracking core; this package only resolves them and seeds a fresh database.
package branchrepo

import (
	"context"
	"errors"

	"tracking/internal/pkg/pgerr"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BranchDTO struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false"`
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

// GormBranchDirectory implements ports.BranchDirectory using GORM.
type GormBranchDirectory struct {
	db *gorm.DB
}

func NewGormBranchDirectory(db *gorm.DB) *GormBranchDirectory {
	return &GormBranchDirectory{db: db}
}

func (d *GormBranchDirectory) Get(ctx context.Context, id parcel.BranchID) (ports.Branch, error) {
	if err := id.Validate(); err != nil {
		return ports.Branch{}, err
	}

	var dto BranchDTO
	if err := d.db.WithContext(ctx).Take(&dto, "id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Branch{}, errs.NewObjectNotFoundError("branch", int64(id))
		}
		return ports.Branch{}, pgerr.Translate("get branch", err)
	}

	return ports.Branch{ID: parcel.BranchID(dto.ID), Name: dto.Name, Active: dto.Active}, nil
}

// Seed inserts the branches that do not exist yet and leaves existing rows untouched.
func Seed(ctx context.Context, db *gorm.DB, branches []BranchDTO) error {
	if len(branches) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&branches).Error
}

// DefaultBranches is the directory a fresh installation starts with.
func DefaultBranches() []BranchDTO {
	return []BranchDTO{
		{ID: 1, Name: "Central Branch", Active: true},
		{ID: 2, Name: "North Branch", Active: true},
		{ID: 3, Name: "South Branch", Active: true},
		{ID: 4, Name: "Airport Cargo Desk", Active: false},
	}
}

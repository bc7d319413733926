package core

import (
	"context"
	"fmt"
	"time"

	db "github.com/agrisurvey/portal/internal/database"
)

// FarmerRecord is the JSON-facing view of a farmer profile.
type FarmerRecord struct {
	FarmerID               string    `json:"farmerId"`
	Name                   string    `json:"name"`
	Address                string    `json:"address,omitempty"`
	Village                string    `json:"village,omitempty"`
	TalukaBlock            string    `json:"talukaBlock,omitempty"`
	District               string    `json:"district,omitempty"`
	ContactNo              string    `json:"contactNo,omitempty"`
	Education              string    `json:"education,omitempty"`
	CasteReligion          string    `json:"casteReligion,omitempty"`
	FarmingExperienceYears int       `json:"farmingExperienceYears,omitempty"`
	Latitude               float64   `json:"latitude,omitempty"`
	Longitude              float64   `json:"longitude,omitempty"`
	Altitude               float64   `json:"altitude,omitempty"`
	FamilyMales            int       `json:"familyMales,omitempty"`
	FamilyFemales          int       `json:"familyFemales,omitempty"`
	FamilyChildren         int       `json:"familyChildren,omitempty"`
	FamilyAdult            int       `json:"familyAdult,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
}

// FarmerInput carries fields for creating a farmer through the API. All
// values arrive as strings, the same shape a bulk-import row has, so the
// same coercion rules apply.
type FarmerInput struct {
	FarmerID               string `json:"farmerId"`
	Name                   string `json:"name" validate:"required"`
	Address                string `json:"address"`
	Village                string `json:"village"`
	TalukaBlock            string `json:"talukaBlock"`
	District               string `json:"district"`
	ContactNo              string `json:"contactNo"`
	Education              string `json:"education"`
	CasteReligion          string `json:"casteReligion"`
	FarmingExperienceYears string `json:"farmingExperienceYears"`
	Latitude               string `json:"latitude"`
	Longitude              string `json:"longitude"`
	Altitude               string `json:"altitude"`
	FamilyMales            string `json:"familyMales"`
	FamilyFemales          string `json:"familyFemales"`
	FamilyChildren         string `json:"familyChildren"`
	FamilyAdult            string `json:"familyAdult"`
}

// CreateFarmer inserts a single farmer. An empty FarmerID gets a fresh
// UUID; a supplied one that already exists is reported as a conflict.
func (s *Service) CreateFarmer(ctx context.Context, input FarmerInput) (*FarmerRecord, error) {
	id := ToPgUUID(input.FarmerID)
	if input.FarmerID == "" {
		id = NewPgUUID()
	} else if !id.Valid {
		return nil, fmt.Errorf("invalid farmer id: %q", input.FarmerID)
	}

	inserted, err := db.New(s.pool).InsertFarmer(ctx, db.InsertFarmerParams{
		FarmerID:               id,
		Name:                   ToPgText(input.Name),
		Address:                ToPgText(input.Address),
		Village:                ToPgText(input.Village),
		TalukaBlock:            ToPgText(input.TalukaBlock),
		District:               ToPgText(input.District),
		ContactNo:              ToPgText(input.ContactNo),
		Education:              ToPgText(input.Education),
		CasteReligion:          ToPgText(input.CasteReligion),
		FarmingExperienceYears: ToPgInt4(input.FarmingExperienceYears),
		Latitude:               ToPgFloat8(input.Latitude),
		Longitude:              ToPgFloat8(input.Longitude),
		Altitude:               ToPgFloat8(input.Altitude),
		FamilyMales:            ToPgInt4(input.FamilyMales),
		FamilyFemales:          ToPgInt4(input.FamilyFemales),
		FamilyChildren:         ToPgInt4(input.FamilyChildren),
		FamilyAdult:            ToPgInt4(input.FamilyAdult),
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("farmer already exists: %s", PgUUIDToString(id))
	}

	return s.GetFarmer(ctx, PgUUIDToString(id))
}

// GetFarmer looks up one farmer by id.
func (s *Service) GetFarmer(ctx context.Context, farmerID string) (*FarmerRecord, error) {
	id := ToPgUUID(farmerID)
	if !id.Valid {
		return nil, fmt.Errorf("invalid farmer id: %q", farmerID)
	}

	row, err := db.New(s.pool).GetFarmer(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := farmerToRecord(row)
	return &rec, nil
}

// ListFarmers returns a page of farmers ordered by name.
func (s *Service) ListFarmers(ctx context.Context, limit, offset int) ([]FarmerRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := db.New(s.pool).ListFarmers(ctx, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}

	records := make([]FarmerRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, farmerToRecord(row))
	}
	return records, nil
}

// CountFarmers returns the total number of farmer profiles.
func (s *Service) CountFarmers(ctx context.Context) (int64, error) {
	return db.New(s.pool).CountFarmers(ctx)
}

// DeleteFarmer removes a farmer profile. Child rows across every survey
// table go with it, so callers should treat this as destructive.
func (s *Service) DeleteFarmer(ctx context.Context, farmerID string) error {
	id := ToPgUUID(farmerID)
	if !id.Valid {
		return fmt.Errorf("invalid farmer id: %q", farmerID)
	}

	deleted, err := db.New(s.pool).DeleteFarmer(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("farmer not found: %s", farmerID)
	}

	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionFarmerDelete,
		TableKey:     "farmers",
		Detail:       farmerID,
		RowsAffected: int(deleted),
		IPAddress:    GetIPAddressFromContext(ctx),
		UserAgent:    GetUserAgentFromContext(ctx),
	})

	s.logger.Info("farmer deleted", "farmerId", farmerID)
	return nil
}

func farmerToRecord(f db.Farmer) FarmerRecord {
	return FarmerRecord{
		FarmerID:               PgUUIDToString(f.FarmerID),
		Name:                   f.Name.String,
		Address:                f.Address.String,
		Village:                f.Village.String,
		TalukaBlock:            f.TalukaBlock.String,
		District:               f.District.String,
		ContactNo:              f.ContactNo.String,
		Education:              f.Education.String,
		CasteReligion:          f.CasteReligion.String,
		FarmingExperienceYears: int(f.FarmingExperienceYears.Int32),
		Latitude:               f.Latitude.Float64,
		Longitude:              f.Longitude.Float64,
		Altitude:               f.Altitude.Float64,
		FamilyMales:            int(f.FamilyMales.Int32),
		FamilyFemales:          int(f.FamilyFemales.Int32),
		FamilyChildren:         int(f.FamilyChildren.Int32),
		FamilyAdult:            int(f.FamilyAdult.Int32),
		CreatedAt:              f.CreatedAt.Time,
	}
}

package tables

import (
	"context"

	"github.com/agrisurvey/portal/internal/core"
	db "github.com/agrisurvey/portal/internal/database"
)

func init() {
	registerFarmers()
}

func registerFarmers() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "farmers",
			Label:       "Farmers (Basic Profile)",
			Description: "Farmer records with demographic and household level attributes.",
			IDColumn:    "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "farmer_id", Type: core.FieldText},
			{Name: "name", Type: core.FieldText, Required: true},
			{Name: "address", Type: core.FieldText},
			{Name: "village", Type: core.FieldText},
			{Name: "taluka_block", Type: core.FieldText},
			{Name: "district", Type: core.FieldText},
			{Name: "contact_no", Type: core.FieldText},
			{Name: "education", Type: core.FieldText},
			{Name: "caste_religion", Type: core.FieldText},
			{Name: "farming_experience_years", Type: core.FieldInteger},
			{Name: "latitude", Type: core.FieldFloat},
			{Name: "longitude", Type: core.FieldFloat},
			{Name: "altitude", Type: core.FieldFloat},
			{Name: "family_males", Type: core.FieldInteger},
			{Name: "family_females", Type: core.FieldInteger},
			{Name: "family_children", Type: core.FieldInteger},
			{Name: "family_adult", Type: core.FieldInteger},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "farmer_id")
			if err != nil {
				return nil, err
			}
			return db.InsertFarmerParams{
				FarmerID:               id,
				Name:                   core.ToPgText(getCell(row, idx, "name")),
				Address:                core.ToPgText(getCell(row, idx, "address")),
				Village:                core.ToPgText(getCell(row, idx, "village")),
				TalukaBlock:            core.ToPgText(getCell(row, idx, "taluka_block")),
				District:               core.ToPgText(getCell(row, idx, "district")),
				ContactNo:              core.ToPgText(getCell(row, idx, "contact_no")),
				Education:              core.ToPgText(getCell(row, idx, "education")),
				CasteReligion:          core.ToPgText(getCell(row, idx, "caste_religion")),
				FarmingExperienceYears: core.ToPgInt4(getCell(row, idx, "farming_experience_years")),
				Latitude:               core.ToPgFloat8(getCell(row, idx, "latitude")),
				Longitude:              core.ToPgFloat8(getCell(row, idx, "longitude")),
				Altitude:               core.ToPgFloat8(getCell(row, idx, "altitude")),
				FamilyMales:            core.ToPgInt4(getCell(row, idx, "family_males")),
				FamilyFemales:          core.ToPgInt4(getCell(row, idx, "family_females")),
				FamilyChildren:         core.ToPgInt4(getCell(row, idx, "family_children")),
				FamilyAdult:            core.ToPgInt4(getCell(row, idx, "family_adult")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertFarmer(ctx, params.(db.InsertFarmerParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetFarmers(ctx)
		},
	})
}

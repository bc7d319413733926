package tables

import (
	"context"

	"github.com/agrisurvey/portal/internal/core"
	db "github.com/agrisurvey/portal/internal/database"
)

func init() {
	registerLandHoldings()
	registerAssets()
}

func registerLandHoldings() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "land_holdings",
			Label:       "Land Holdings",
			Description: "Land parcel information attached to an existing farmer.",
			IDColumn:    "land_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "land_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "category", Type: core.FieldText},
			{Name: "total_area_ha", Type: core.FieldDecimal},
			{Name: "irrigated_area_ha", Type: core.FieldDecimal},
			{Name: "irrigation_source", Type: core.FieldText},
			{Name: "irrigation_no", Type: core.FieldText},
			{Name: "irrigation_latitude", Type: core.FieldFloat},
			{Name: "irrigation_longitude", Type: core.FieldFloat},
			{Name: "soil_details", Type: core.FieldText},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "land_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertLandHoldingParams{
				LandID:              id,
				FarmerID:            farmer,
				Category:            core.ToPgText(getCell(row, idx, "category")),
				TotalAreaHa:         core.ToPgNumeric(getCell(row, idx, "total_area_ha")),
				IrrigatedAreaHa:     core.ToPgNumeric(getCell(row, idx, "irrigated_area_ha")),
				IrrigationSource:    core.ToPgText(getCell(row, idx, "irrigation_source")),
				IrrigationNo:        core.ToPgText(getCell(row, idx, "irrigation_no")),
				IrrigationLatitude:  core.ToPgFloat8(getCell(row, idx, "irrigation_latitude")),
				IrrigationLongitude: core.ToPgFloat8(getCell(row, idx, "irrigation_longitude")),
				SoilDetails:         core.ToPgText(getCell(row, idx, "soil_details")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertLandHolding(ctx, params.(db.InsertLandHoldingParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetLandHoldings(ctx)
		},
	})
}

func registerAssets() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "assets",
			Label:       "Assets",
			Description: "Asset ownership for farmer households.",
			IDColumn:    "asset_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "asset_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "item_name", Type: core.FieldText, Required: true},
			{Name: "quantity", Type: core.FieldInteger},
			{Name: "years_owned", Type: core.FieldInteger},
			{Name: "current_value", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "asset_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertAssetParams{
				AssetID:      id,
				FarmerID:     farmer,
				ItemName:     core.ToPgText(getCell(row, idx, "item_name")),
				Quantity:     core.ToPgInt4(getCell(row, idx, "quantity")),
				YearsOwned:   core.ToPgInt4(getCell(row, idx, "years_owned")),
				CurrentValue: core.ToPgNumeric(getCell(row, idx, "current_value")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertAsset(ctx, params.(db.InsertAssetParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetAssets(ctx)
		},
	})
}

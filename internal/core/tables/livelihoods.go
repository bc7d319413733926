package tables

import (
	"context"

	"github.com/agrisurvey/portal/internal/core"
	db "github.com/agrisurvey/portal/internal/database"
)

func init() {
	registerEnterprises()
	registerAnnualFamilyIncome()
	registerConsumptionPatterns()
	registerMarketPrices()
}

func registerEnterprises() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "enterprises",
			Label:       "Enterprises",
			Description: "Allied enterprises and diversification activities.",
			IDColumn:    "enterprise_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "enterprise_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "enterprise_type", Type: core.FieldText, Required: true},
			{Name: "number", Type: core.FieldInteger},
			{Name: "production", Type: core.FieldDecimal},
			{Name: "home_consumption", Type: core.FieldDecimal},
			{Name: "sold_market", Type: core.FieldDecimal},
			{Name: "market_price", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "enterprise_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertEnterpriseParams{
				EnterpriseID:    id,
				FarmerID:        farmer,
				EnterpriseType:  core.ToPgText(getCell(row, idx, "enterprise_type")),
				Number:          core.ToPgInt4(getCell(row, idx, "number")),
				Production:      core.ToPgNumeric(getCell(row, idx, "production")),
				HomeConsumption: core.ToPgNumeric(getCell(row, idx, "home_consumption")),
				SoldMarket:      core.ToPgNumeric(getCell(row, idx, "sold_market")),
				MarketPrice:     core.ToPgNumeric(getCell(row, idx, "market_price")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertEnterprise(ctx, params.(db.InsertEnterpriseParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetEnterprises(ctx)
		},
	})
}

func registerAnnualFamilyIncome() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "annual_family_income",
			Label:       "Annual Family Income",
			Description: "Annual income from different livelihood sources.",
			IDColumn:    "afi_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "afi_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "source", Type: core.FieldText, Required: true},
			{Name: "income_rs", Type: core.FieldDecimal},
			{Name: "employment_days", Type: core.FieldInteger},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "afi_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertAnnualFamilyIncomeParams{
				AfiID:          id,
				FarmerID:       farmer,
				Source:         core.ToPgText(getCell(row, idx, "source")),
				IncomeRs:       core.ToPgNumeric(getCell(row, idx, "income_rs")),
				EmploymentDays: core.ToPgInt4(getCell(row, idx, "employment_days")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertAnnualFamilyIncome(ctx, params.(db.InsertAnnualFamilyIncomeParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetAnnualFamilyIncome(ctx)
		},
	})
}

func registerConsumptionPatterns() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "consumption_patterns",
			Label:       "Consumption Pattern",
			Description: "Monthly consumption of agricultural produce.",
			IDColumn:    "cp_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "cp_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "crop", Type: core.FieldText, Required: true},
			{Name: "crop_product", Type: core.FieldText},
			{Name: "consumption_kg_month", Type: core.FieldDecimal},
			{Name: "purchased", Type: core.FieldBool},
			{Name: "pds", Type: core.FieldBool},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "cp_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertConsumptionPatternParams{
				CpID:               id,
				FarmerID:           farmer,
				Crop:               core.ToPgText(getCell(row, idx, "crop")),
				CropProduct:        core.ToPgText(getCell(row, idx, "crop_product")),
				ConsumptionKgMonth: core.ToPgNumeric(getCell(row, idx, "consumption_kg_month")),
				Purchased:          core.ToPgBool(getCell(row, idx, "purchased")),
				Pds:                core.ToPgBool(getCell(row, idx, "pds")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertConsumptionPattern(ctx, params.(db.InsertConsumptionPatternParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetConsumptionPatterns(ctx)
		},
	})
}

func registerMarketPrices() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "market_prices",
			Label:       "Market Price",
			Description: "Market price realisation for crops.",
			IDColumn:    "price_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "price_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "crop", Type: core.FieldText, Required: true},
			{Name: "season", Type: core.FieldText, Normalizer: NormalizeSeason},
			{Name: "area_ha", Type: core.FieldDecimal},
			{Name: "production_tons", Type: core.FieldDecimal},
			{Name: "price_rs_qntl", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "price_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertMarketPriceParams{
				PriceID:        id,
				FarmerID:       farmer,
				Crop:           core.ToPgText(getCell(row, idx, "crop")),
				Season:         core.ToPgText(NormalizeSeason(getCell(row, idx, "season"))),
				AreaHa:         core.ToPgNumeric(getCell(row, idx, "area_ha")),
				ProductionTons: core.ToPgNumeric(getCell(row, idx, "production_tons")),
				PriceRsQntl:    core.ToPgNumeric(getCell(row, idx, "price_rs_qntl")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertMarketPrice(ctx, params.(db.InsertMarketPriceParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetMarketPrices(ctx)
		},
	})
}

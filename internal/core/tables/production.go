package tables

import (
	"context"

	"github.com/agrisurvey/portal/internal/core"
	db "github.com/agrisurvey/portal/internal/database"
)

func init() {
	registerCropHistory()
	registerCostOfCultivation()
	registerWeedRecords()
	registerWaterManagement()
	registerPestDiseaseRecords()
	registerNutrientManagement()
	registerIncomeFromCrops()
	registerIrrigatedRainfed()
}

func registerCropHistory() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "crop_history",
			Label:       "Crop History",
			Description: "Historical crop production information.",
			IDColumn:    "crop_hist_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "crop_hist_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "crop_name", Type: core.FieldText, Required: true},
			{Name: "variety", Type: core.FieldText},
			{Name: "season", Type: core.FieldText, Normalizer: NormalizeSeason},
			{Name: "area_ha", Type: core.FieldDecimal},
			{Name: "production_kg", Type: core.FieldDecimal},
			{Name: "sold_market_kg", Type: core.FieldDecimal},
			{Name: "retained_seed_kg", Type: core.FieldDecimal},
			{Name: "home_consumption_kg", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "crop_hist_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertCropHistoryParams{
				CropHistID:        id,
				FarmerID:          farmer,
				CropName:          core.ToPgText(getCell(row, idx, "crop_name")),
				Variety:           core.ToPgText(getCell(row, idx, "variety")),
				Season:            core.ToPgText(NormalizeSeason(getCell(row, idx, "season"))),
				AreaHa:            core.ToPgNumeric(getCell(row, idx, "area_ha")),
				ProductionKg:      core.ToPgNumeric(getCell(row, idx, "production_kg")),
				SoldMarketKg:      core.ToPgNumeric(getCell(row, idx, "sold_market_kg")),
				RetainedSeedKg:    core.ToPgNumeric(getCell(row, idx, "retained_seed_kg")),
				HomeConsumptionKg: core.ToPgNumeric(getCell(row, idx, "home_consumption_kg")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertCropHistory(ctx, params.(db.InsertCropHistoryParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetCropHistory(ctx)
		},
	})
}

func registerCostOfCultivation() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "cost_of_cultivation",
			Label:       "Cost of Cultivation",
			Description: "Cost inputs for crop cultivation.",
			IDColumn:    "cost_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "cost_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "crop_name", Type: core.FieldText, Required: true},
			{Name: "particular", Type: core.FieldText, Required: true},
			{Name: "quantity", Type: core.FieldDecimal},
			{Name: "cost_rs", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "cost_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertCostOfCultivationParams{
				CostID:     id,
				FarmerID:   farmer,
				CropName:   core.ToPgText(getCell(row, idx, "crop_name")),
				Particular: core.ToPgText(getCell(row, idx, "particular")),
				Quantity:   core.ToPgNumeric(getCell(row, idx, "quantity")),
				CostRs:     core.ToPgNumeric(getCell(row, idx, "cost_rs")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertCostOfCultivation(ctx, params.(db.InsertCostOfCultivationParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetCostOfCultivation(ctx)
		},
	})
}

func registerWeedRecords() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "weed_records",
			Label:       "Weeds",
			Description: "Weed management records, linked to an existing farmer.",
			IDColumn:    "weed_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "weed_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "season", Type: core.FieldText, Normalizer: NormalizeSeason},
			{Name: "weed_type", Type: core.FieldText},
			{Name: "weeding_time", Type: core.FieldText},
			{Name: "herbicide", Type: core.FieldText},
			{Name: "chemical_cost", Type: core.FieldDecimal},
			{Name: "labour_days", Type: core.FieldDecimal},
			{Name: "labour_charge", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "weed_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertWeedRecordParams{
				WeedID:       id,
				FarmerID:     farmer,
				Season:       core.ToPgText(NormalizeSeason(getCell(row, idx, "season"))),
				WeedType:     core.ToPgText(getCell(row, idx, "weed_type")),
				WeedingTime:  core.ToPgText(getCell(row, idx, "weeding_time")),
				Herbicide:    core.ToPgText(getCell(row, idx, "herbicide")),
				ChemicalCost: core.ToPgNumeric(getCell(row, idx, "chemical_cost")),
				LabourDays:   core.ToPgNumeric(getCell(row, idx, "labour_days")),
				LabourCharge: core.ToPgNumeric(getCell(row, idx, "labour_charge")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertWeedRecord(ctx, params.(db.InsertWeedRecordParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetWeedRecords(ctx)
		},
	})
}

func registerWaterManagement() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "water_management",
			Label:       "Water Management",
			Description: "Water management practices including irrigation counts and costs.",
			IDColumn:    "wm_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "wm_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "season", Type: core.FieldText, Normalizer: NormalizeSeason},
			{Name: "irrigation_source", Type: core.FieldText},
			{Name: "irrigation_count", Type: core.FieldInteger},
			{Name: "depth", Type: core.FieldDecimal},
			{Name: "energy_cost", Type: core.FieldDecimal},
			{Name: "labour_charge", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "wm_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertWaterManagementParams{
				WmID:             id,
				FarmerID:         farmer,
				Season:           core.ToPgText(NormalizeSeason(getCell(row, idx, "season"))),
				IrrigationSource: core.ToPgText(getCell(row, idx, "irrigation_source")),
				IrrigationCount:  core.ToPgInt4(getCell(row, idx, "irrigation_count")),
				Depth:            core.ToPgNumeric(getCell(row, idx, "depth")),
				EnergyCost:       core.ToPgNumeric(getCell(row, idx, "energy_cost")),
				LabourCharge:     core.ToPgNumeric(getCell(row, idx, "labour_charge")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertWaterManagement(ctx, params.(db.InsertWaterManagementParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetWaterManagement(ctx)
		},
	})
}

func registerPestDiseaseRecords() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "pest_disease_records",
			Label:       "Pest & Disease",
			Description: "Pest and disease management entries for a farmer.",
			IDColumn:    "pest_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "pest_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "season", Type: core.FieldText, Normalizer: NormalizeSeason},
			{Name: "pest_disease", Type: core.FieldText, Required: true},
			{Name: "chemical_used", Type: core.FieldText},
			{Name: "chemical_qty", Type: core.FieldDecimal},
			{Name: "chemical_cost", Type: core.FieldDecimal},
			{Name: "labour_days", Type: core.FieldDecimal},
			{Name: "labour_charge", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "pest_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertPestDiseaseRecordParams{
				PestID:       id,
				FarmerID:     farmer,
				Season:       core.ToPgText(NormalizeSeason(getCell(row, idx, "season"))),
				PestDisease:  core.ToPgText(getCell(row, idx, "pest_disease")),
				ChemicalUsed: core.ToPgText(getCell(row, idx, "chemical_used")),
				ChemicalQty:  core.ToPgNumeric(getCell(row, idx, "chemical_qty")),
				ChemicalCost: core.ToPgNumeric(getCell(row, idx, "chemical_cost")),
				LabourDays:   core.ToPgNumeric(getCell(row, idx, "labour_days")),
				LabourCharge: core.ToPgNumeric(getCell(row, idx, "labour_charge")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertPestDiseaseRecord(ctx, params.(db.InsertPestDiseaseRecordParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetPestDiseaseRecords(ctx)
		},
	})
}

func registerNutrientManagement() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "nutrient_management",
			Label:       "Nutrient Management",
			Description: "Fertiliser and nutrient application by crop and season.",
			IDColumn:    "nutrient_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "nutrient_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "season", Type: core.FieldText, Normalizer: NormalizeSeason},
			{Name: "crop_name", Type: core.FieldText, Required: true},
			{Name: "fym_kg", Type: core.FieldDecimal},
			{Name: "nitrogen_kg", Type: core.FieldDecimal},
			{Name: "phosphate_kg", Type: core.FieldDecimal},
			{Name: "gromer_kg", Type: core.FieldDecimal},
			{Name: "other_fertilizer", Type: core.FieldText},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "nutrient_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertNutrientManagementParams{
				NutrientID:      id,
				FarmerID:        farmer,
				Season:          core.ToPgText(NormalizeSeason(getCell(row, idx, "season"))),
				CropName:        core.ToPgText(getCell(row, idx, "crop_name")),
				FymKg:           core.ToPgNumeric(getCell(row, idx, "fym_kg")),
				NitrogenKg:      core.ToPgNumeric(getCell(row, idx, "nitrogen_kg")),
				PhosphateKg:     core.ToPgNumeric(getCell(row, idx, "phosphate_kg")),
				GromerKg:        core.ToPgNumeric(getCell(row, idx, "gromer_kg")),
				OtherFertilizer: core.ToPgText(getCell(row, idx, "other_fertilizer")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertNutrientManagement(ctx, params.(db.InsertNutrientManagementParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetNutrientManagement(ctx)
		},
	})
}

func registerIncomeFromCrops() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "income_from_crops",
			Label:       "Income from Crops",
			Description: "Income realisation per crop and season.",
			IDColumn:    "income_crop_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "income_crop_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "season", Type: core.FieldText, Normalizer: NormalizeSeason},
			{Name: "crop_name", Type: core.FieldText, Required: true},
			{Name: "production_qntl", Type: core.FieldDecimal},
			{Name: "yield_qntl_ha", Type: core.FieldDecimal},
			{Name: "price_rs_qntl", Type: core.FieldDecimal},
			{Name: "gross_income_rs", Type: core.FieldDecimal},
			{Name: "byproduct_income_rs", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "income_crop_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertIncomeFromCropsParams{
				IncomeCropID:      id,
				FarmerID:          farmer,
				Season:            core.ToPgText(NormalizeSeason(getCell(row, idx, "season"))),
				CropName:          core.ToPgText(getCell(row, idx, "crop_name")),
				ProductionQntl:    core.ToPgNumeric(getCell(row, idx, "production_qntl")),
				YieldQntlHa:       core.ToPgNumeric(getCell(row, idx, "yield_qntl_ha")),
				PriceRsQntl:       core.ToPgNumeric(getCell(row, idx, "price_rs_qntl")),
				GrossIncomeRs:     core.ToPgNumeric(getCell(row, idx, "gross_income_rs")),
				ByproductIncomeRs: core.ToPgNumeric(getCell(row, idx, "byproduct_income_rs")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertIncomeFromCrops(ctx, params.(db.InsertIncomeFromCropsParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetIncomeFromCrops(ctx)
		},
	})
}

func registerIrrigatedRainfed() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "irrigated_rainfed",
			Label:       "Irrigated & Rainfed",
			Description: "Split irrigated versus rainfed crop areas.",
			IDColumn:    "ir_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "ir_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "crop", Type: core.FieldText, Required: true},
			{Name: "sowing_date", Type: core.FieldDate},
			{Name: "harvesting_date", Type: core.FieldDate},
			{Name: "rainfed_area", Type: core.FieldDecimal},
			{Name: "irrigated_area", Type: core.FieldDecimal},
			{Name: "fertilizer_rate", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "ir_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertIrrigatedRainfedParams{
				IrID:           id,
				FarmerID:       farmer,
				Crop:           core.ToPgText(getCell(row, idx, "crop")),
				SowingDate:     core.ToPgDate(getCell(row, idx, "sowing_date")),
				HarvestingDate: core.ToPgDate(getCell(row, idx, "harvesting_date")),
				RainfedArea:    core.ToPgNumeric(getCell(row, idx, "rainfed_area")),
				IrrigatedArea:  core.ToPgNumeric(getCell(row, idx, "irrigated_area")),
				FertilizerRate: core.ToPgNumeric(getCell(row, idx, "fertilizer_rate")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertIrrigatedRainfed(ctx, params.(db.InsertIrrigatedRainfedParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetIrrigatedRainfed(ctx)
		},
	})
}

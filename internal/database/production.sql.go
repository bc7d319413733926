package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type InsertCropHistoryParams struct {
	CropHistID        pgtype.UUID
	FarmerID          pgtype.UUID
	CropName          pgtype.Text
	Variety           pgtype.Text
	Season            pgtype.Text
	AreaHa            pgtype.Numeric
	ProductionKg      pgtype.Numeric
	SoldMarketKg      pgtype.Numeric
	RetainedSeedKg    pgtype.Numeric
	HomeConsumptionKg pgtype.Numeric
}

const insertCropHistory = `
INSERT INTO crop_history (
    crop_hist_id, farmer_id, crop_name, variety, season, area_ha,
    production_kg, sold_market_kg, retained_seed_kg, home_consumption_kg
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (crop_hist_id) DO NOTHING
`

func (q *Queries) InsertCropHistory(ctx context.Context, arg InsertCropHistoryParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertCropHistory,
		arg.CropHistID, arg.FarmerID, arg.CropName, arg.Variety, arg.Season,
		arg.AreaHa, arg.ProductionKg, arg.SoldMarketKg, arg.RetainedSeedKg,
		arg.HomeConsumptionKg,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetCropHistory(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM crop_history`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertCostOfCultivationParams struct {
	CostID     pgtype.UUID
	FarmerID   pgtype.UUID
	CropName   pgtype.Text
	Particular pgtype.Text
	Quantity   pgtype.Numeric
	CostRs     pgtype.Numeric
}

const insertCostOfCultivation = `
INSERT INTO cost_of_cultivation (
    cost_id, farmer_id, crop_name, particular, quantity, cost_rs
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (cost_id) DO NOTHING
`

func (q *Queries) InsertCostOfCultivation(ctx context.Context, arg InsertCostOfCultivationParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertCostOfCultivation,
		arg.CostID, arg.FarmerID, arg.CropName, arg.Particular,
		arg.Quantity, arg.CostRs,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetCostOfCultivation(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM cost_of_cultivation`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertWeedRecordParams struct {
	WeedID       pgtype.UUID
	FarmerID     pgtype.UUID
	Season       pgtype.Text
	WeedType     pgtype.Text
	WeedingTime  pgtype.Text
	Herbicide    pgtype.Text
	ChemicalCost pgtype.Numeric
	LabourDays   pgtype.Numeric
	LabourCharge pgtype.Numeric
}

const insertWeedRecord = `
INSERT INTO weed_records (
    weed_id, farmer_id, season, weed_type, weeding_time, herbicide,
    chemical_cost, labour_days, labour_charge
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (weed_id) DO NOTHING
`

func (q *Queries) InsertWeedRecord(ctx context.Context, arg InsertWeedRecordParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertWeedRecord,
		arg.WeedID, arg.FarmerID, arg.Season, arg.WeedType, arg.WeedingTime,
		arg.Herbicide, arg.ChemicalCost, arg.LabourDays, arg.LabourCharge,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetWeedRecords(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM weed_records`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertWaterManagementParams struct {
	WmID             pgtype.UUID
	FarmerID         pgtype.UUID
	Season           pgtype.Text
	IrrigationSource pgtype.Text
	IrrigationCount  pgtype.Int4
	Depth            pgtype.Numeric
	EnergyCost       pgtype.Numeric
	LabourCharge     pgtype.Numeric
}

const insertWaterManagement = `
INSERT INTO water_management (
    wm_id, farmer_id, season, irrigation_source, irrigation_count,
    depth, energy_cost, labour_charge
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (wm_id) DO NOTHING
`

func (q *Queries) InsertWaterManagement(ctx context.Context, arg InsertWaterManagementParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertWaterManagement,
		arg.WmID, arg.FarmerID, arg.Season, arg.IrrigationSource,
		arg.IrrigationCount, arg.Depth, arg.EnergyCost, arg.LabourCharge,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetWaterManagement(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM water_management`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertPestDiseaseRecordParams struct {
	PestID       pgtype.UUID
	FarmerID     pgtype.UUID
	Season       pgtype.Text
	PestDisease  pgtype.Text
	ChemicalUsed pgtype.Text
	ChemicalQty  pgtype.Numeric
	ChemicalCost pgtype.Numeric
	LabourDays   pgtype.Numeric
	LabourCharge pgtype.Numeric
}

const insertPestDiseaseRecord = `
INSERT INTO pest_disease_records (
    pest_id, farmer_id, season, pest_disease, chemical_used, chemical_qty,
    chemical_cost, labour_days, labour_charge
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (pest_id) DO NOTHING
`

func (q *Queries) InsertPestDiseaseRecord(ctx context.Context, arg InsertPestDiseaseRecordParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertPestDiseaseRecord,
		arg.PestID, arg.FarmerID, arg.Season, arg.PestDisease,
		arg.ChemicalUsed, arg.ChemicalQty, arg.ChemicalCost,
		arg.LabourDays, arg.LabourCharge,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetPestDiseaseRecords(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM pest_disease_records`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertNutrientManagementParams struct {
	NutrientID      pgtype.UUID
	FarmerID        pgtype.UUID
	Season          pgtype.Text
	CropName        pgtype.Text
	FymKg           pgtype.Numeric
	NitrogenKg      pgtype.Numeric
	PhosphateKg     pgtype.Numeric
	GromerKg        pgtype.Numeric
	OtherFertilizer pgtype.Text
}

const insertNutrientManagement = `
INSERT INTO nutrient_management (
    nutrient_id, farmer_id, season, crop_name, fym_kg, nitrogen_kg,
    phosphate_kg, gromer_kg, other_fertilizer
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (nutrient_id) DO NOTHING
`

func (q *Queries) InsertNutrientManagement(ctx context.Context, arg InsertNutrientManagementParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertNutrientManagement,
		arg.NutrientID, arg.FarmerID, arg.Season, arg.CropName, arg.FymKg,
		arg.NitrogenKg, arg.PhosphateKg, arg.GromerKg, arg.OtherFertilizer,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetNutrientManagement(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM nutrient_management`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertIncomeFromCropsParams struct {
	IncomeCropID      pgtype.UUID
	FarmerID          pgtype.UUID
	Season            pgtype.Text
	CropName          pgtype.Text
	ProductionQntl    pgtype.Numeric
	YieldQntlHa       pgtype.Numeric
	PriceRsQntl       pgtype.Numeric
	GrossIncomeRs     pgtype.Numeric
	ByproductIncomeRs pgtype.Numeric
}

const insertIncomeFromCrops = `
INSERT INTO income_from_crops (
    income_crop_id, farmer_id, season, crop_name, production_qntl,
    yield_qntl_ha, price_rs_qntl, gross_income_rs, byproduct_income_rs
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (income_crop_id) DO NOTHING
`

func (q *Queries) InsertIncomeFromCrops(ctx context.Context, arg InsertIncomeFromCropsParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertIncomeFromCrops,
		arg.IncomeCropID, arg.FarmerID, arg.Season, arg.CropName,
		arg.ProductionQntl, arg.YieldQntlHa, arg.PriceRsQntl,
		arg.GrossIncomeRs, arg.ByproductIncomeRs,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetIncomeFromCrops(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM income_from_crops`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertIrrigatedRainfedParams struct {
	IrID           pgtype.UUID
	FarmerID       pgtype.UUID
	Crop           pgtype.Text
	SowingDate     pgtype.Date
	HarvestingDate pgtype.Date
	RainfedArea    pgtype.Numeric
	IrrigatedArea  pgtype.Numeric
	FertilizerRate pgtype.Numeric
}

const insertIrrigatedRainfed = `
INSERT INTO irrigated_rainfed (
    ir_id, farmer_id, crop, sowing_date, harvesting_date, rainfed_area,
    irrigated_area, fertilizer_rate
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (ir_id) DO NOTHING
`

func (q *Queries) InsertIrrigatedRainfed(ctx context.Context, arg InsertIrrigatedRainfedParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertIrrigatedRainfed,
		arg.IrID, arg.FarmerID, arg.Crop, arg.SowingDate, arg.HarvestingDate,
		arg.RainfedArea, arg.IrrigatedArea, arg.FertilizerRate,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetIrrigatedRainfed(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM irrigated_rainfed`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type InsertEnterpriseParams struct {
	EnterpriseID    pgtype.UUID
	FarmerID        pgtype.UUID
	EnterpriseType  pgtype.Text
	Number          pgtype.Int4
	Production      pgtype.Numeric
	HomeConsumption pgtype.Numeric
	SoldMarket      pgtype.Numeric
	MarketPrice     pgtype.Numeric
}

const insertEnterprise = `
INSERT INTO enterprises (
    enterprise_id, farmer_id, enterprise_type, number, production,
    home_consumption, sold_market, market_price
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (enterprise_id) DO NOTHING
`

func (q *Queries) InsertEnterprise(ctx context.Context, arg InsertEnterpriseParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertEnterprise,
		arg.EnterpriseID, arg.FarmerID, arg.EnterpriseType, arg.Number,
		arg.Production, arg.HomeConsumption, arg.SoldMarket, arg.MarketPrice,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetEnterprises(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM enterprises`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertAnnualFamilyIncomeParams struct {
	AfiID          pgtype.UUID
	FarmerID       pgtype.UUID
	Source         pgtype.Text
	IncomeRs       pgtype.Numeric
	EmploymentDays pgtype.Int4
}

const insertAnnualFamilyIncome = `
INSERT INTO annual_family_income (
    afi_id, farmer_id, source, income_rs, employment_days
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (afi_id) DO NOTHING
`

func (q *Queries) InsertAnnualFamilyIncome(ctx context.Context, arg InsertAnnualFamilyIncomeParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertAnnualFamilyIncome,
		arg.AfiID, arg.FarmerID, arg.Source, arg.IncomeRs, arg.EmploymentDays,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetAnnualFamilyIncome(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM annual_family_income`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertConsumptionPatternParams struct {
	CpID               pgtype.UUID
	FarmerID           pgtype.UUID
	Crop               pgtype.Text
	CropProduct        pgtype.Text
	ConsumptionKgMonth pgtype.Numeric
	Purchased          pgtype.Bool
	Pds                pgtype.Bool
}

const insertConsumptionPattern = `
INSERT INTO consumption_patterns (
    cp_id, farmer_id, crop, crop_product, consumption_kg_month, purchased, pds
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (cp_id) DO NOTHING
`

func (q *Queries) InsertConsumptionPattern(ctx context.Context, arg InsertConsumptionPatternParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertConsumptionPattern,
		arg.CpID, arg.FarmerID, arg.Crop, arg.CropProduct,
		arg.ConsumptionKgMonth, arg.Purchased, arg.Pds,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetConsumptionPatterns(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM consumption_patterns`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertMarketPriceParams struct {
	PriceID        pgtype.UUID
	FarmerID       pgtype.UUID
	Crop           pgtype.Text
	Season         pgtype.Text
	AreaHa         pgtype.Numeric
	ProductionTons pgtype.Numeric
	PriceRsQntl    pgtype.Numeric
}

const insertMarketPrice = `
INSERT INTO market_prices (
    price_id, farmer_id, crop, season, area_ha, production_tons, price_rs_qntl
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (price_id) DO NOTHING
`

func (q *Queries) InsertMarketPrice(ctx context.Context, arg InsertMarketPriceParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertMarketPrice,
		arg.PriceID, arg.FarmerID, arg.Crop, arg.Season, arg.AreaHa,
		arg.ProductionTons, arg.PriceRsQntl,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetMarketPrices(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM market_prices`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

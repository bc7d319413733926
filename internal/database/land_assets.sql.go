package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type InsertLandHoldingParams struct {
	LandID              pgtype.UUID
	FarmerID            pgtype.UUID
	Category            pgtype.Text
	TotalAreaHa         pgtype.Numeric
	IrrigatedAreaHa     pgtype.Numeric
	IrrigationSource    pgtype.Text
	IrrigationNo        pgtype.Text
	IrrigationLatitude  pgtype.Float8
	IrrigationLongitude pgtype.Float8
	SoilDetails         pgtype.Text
}

const insertLandHolding = `
INSERT INTO land_holdings (
    land_id, farmer_id, category, total_area_ha, irrigated_area_ha,
    irrigation_source, irrigation_no, irrigation_latitude,
    irrigation_longitude, soil_details
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (land_id) DO NOTHING
`

func (q *Queries) InsertLandHolding(ctx context.Context, arg InsertLandHoldingParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertLandHolding,
		arg.LandID, arg.FarmerID, arg.Category, arg.TotalAreaHa,
		arg.IrrigatedAreaHa, arg.IrrigationSource, arg.IrrigationNo,
		arg.IrrigationLatitude, arg.IrrigationLongitude, arg.SoilDetails,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetLandHoldings(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM land_holdings`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertAssetParams struct {
	AssetID      pgtype.UUID
	FarmerID     pgtype.UUID
	ItemName     pgtype.Text
	Quantity     pgtype.Int4
	YearsOwned   pgtype.Int4
	CurrentValue pgtype.Numeric
}

const insertAsset = `
INSERT INTO assets (
    asset_id, farmer_id, item_name, quantity, years_owned, current_value
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (asset_id) DO NOTHING
`

func (q *Queries) InsertAsset(ctx context.Context, arg InsertAssetParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertAsset,
		arg.AssetID, arg.FarmerID, arg.ItemName, arg.Quantity,
		arg.YearsOwned, arg.CurrentValue,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetAssets(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM assets`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

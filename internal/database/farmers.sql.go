package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Farmer is the root survey subject. Every other table references it.
type Farmer struct {
	FarmerID               pgtype.UUID
	Name                   pgtype.Text
	Address                pgtype.Text
	Village                pgtype.Text
	TalukaBlock            pgtype.Text
	District               pgtype.Text
	ContactNo              pgtype.Text
	Education              pgtype.Text
	CasteReligion          pgtype.Text
	FarmingExperienceYears pgtype.Int4
	Latitude               pgtype.Float8
	Longitude              pgtype.Float8
	Altitude               pgtype.Float8
	FamilyMales            pgtype.Int4
	FamilyFemales          pgtype.Int4
	FamilyChildren         pgtype.Int4
	FamilyAdult            pgtype.Int4
	CreatedAt              pgtype.Timestamptz
}

type InsertFarmerParams struct {
	FarmerID               pgtype.UUID
	Name                   pgtype.Text
	Address                pgtype.Text
	Village                pgtype.Text
	TalukaBlock            pgtype.Text
	District               pgtype.Text
	ContactNo              pgtype.Text
	Education              pgtype.Text
	CasteReligion          pgtype.Text
	FarmingExperienceYears pgtype.Int4
	Latitude               pgtype.Float8
	Longitude              pgtype.Float8
	Altitude               pgtype.Float8
	FamilyMales            pgtype.Int4
	FamilyFemales          pgtype.Int4
	FamilyChildren         pgtype.Int4
	FamilyAdult            pgtype.Int4
}

const insertFarmer = `
INSERT INTO farmers (
    farmer_id, name, address, village, taluka_block, district, contact_no,
    education, caste_religion, farming_experience_years, latitude, longitude,
    altitude, family_males, family_females, family_children, family_adult
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT (farmer_id) DO NOTHING
`

// InsertFarmer inserts a farmer row. Returns false when a row with the same
// farmer_id already exists (the insert is skipped, keeping re-imports of the
// same file idempotent).
func (q *Queries) InsertFarmer(ctx context.Context, arg InsertFarmerParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertFarmer,
		arg.FarmerID, arg.Name, arg.Address, arg.Village, arg.TalukaBlock,
		arg.District, arg.ContactNo, arg.Education, arg.CasteReligion,
		arg.FarmingExperienceYears, arg.Latitude, arg.Longitude, arg.Altitude,
		arg.FamilyMales, arg.FamilyFemales, arg.FamilyChildren, arg.FamilyAdult,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const getFarmer = `
SELECT farmer_id, name, address, village, taluka_block, district, contact_no,
       education, caste_religion, farming_experience_years, latitude, longitude,
       altitude, family_males, family_females, family_children, family_adult,
       created_at
FROM farmers
WHERE farmer_id = $1
`

func (q *Queries) GetFarmer(ctx context.Context, farmerID pgtype.UUID) (Farmer, error) {
	row := q.db.QueryRow(ctx, getFarmer, farmerID)
	var f Farmer
	err := row.Scan(
		&f.FarmerID, &f.Name, &f.Address, &f.Village, &f.TalukaBlock,
		&f.District, &f.ContactNo, &f.Education, &f.CasteReligion,
		&f.FarmingExperienceYears, &f.Latitude, &f.Longitude, &f.Altitude,
		&f.FamilyMales, &f.FamilyFemales, &f.FamilyChildren, &f.FamilyAdult,
		&f.CreatedAt,
	)
	return f, err
}

const listFarmers = `
SELECT farmer_id, name, address, village, taluka_block, district, contact_no,
       education, caste_religion, farming_experience_years, latitude, longitude,
       altitude, family_males, family_females, family_children, family_adult,
       created_at
FROM farmers
ORDER BY name
LIMIT $1 OFFSET $2
`

func (q *Queries) ListFarmers(ctx context.Context, limit, offset int32) ([]Farmer, error) {
	rows, err := q.db.Query(ctx, listFarmers, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var farmers []Farmer
	for rows.Next() {
		var f Farmer
		if err := rows.Scan(
			&f.FarmerID, &f.Name, &f.Address, &f.Village, &f.TalukaBlock,
			&f.District, &f.ContactNo, &f.Education, &f.CasteReligion,
			&f.FarmingExperienceYears, &f.Latitude, &f.Longitude, &f.Altitude,
			&f.FamilyMales, &f.FamilyFemales, &f.FamilyChildren, &f.FamilyAdult,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		farmers = append(farmers, f)
	}
	return farmers, rows.Err()
}

const filterExistingFarmers = `
SELECT farmer_id FROM farmers WHERE farmer_id = ANY($1)
`

// FilterExistingFarmers returns the subset of the given identifiers that
// exist in the farmers table. Used to batch foreign-key resolution during
// import validation.
func (q *Queries) FilterExistingFarmers(ctx context.Context, ids []pgtype.UUID) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, filterExistingFarmers, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []pgtype.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found = append(found, id)
	}
	return found, rows.Err()
}

const deleteFarmer = `
DELETE FROM farmers WHERE farmer_id = $1
`

// DeleteFarmer removes a farmer. Child rows are removed by the schema's
// ON DELETE CASCADE constraints.
func (q *Queries) DeleteFarmer(ctx context.Context, farmerID pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteFarmer, farmerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countFarmers = `
SELECT count(*) FROM farmers
`

func (q *Queries) CountFarmers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countFarmers).Scan(&n)
	return n, err
}

const resetFarmers = `
DELETE FROM farmers
`

func (q *Queries) ResetFarmers(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, resetFarmers)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

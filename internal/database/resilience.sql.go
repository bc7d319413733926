package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type InsertMigrationRecordParams struct {
	MigrationID   pgtype.UUID
	FarmerID      pgtype.UUID
	AgeGender     pgtype.Text
	Reason        pgtype.Text
	MigrationType pgtype.Text
	Remittance    pgtype.Numeric
}

const insertMigrationRecord = `
INSERT INTO migration_records (
    migration_id, farmer_id, age_gender, reason, migration_type, remittance
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (migration_id) DO NOTHING
`

func (q *Queries) InsertMigrationRecord(ctx context.Context, arg InsertMigrationRecordParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertMigrationRecord,
		arg.MigrationID, arg.FarmerID, arg.AgeGender, arg.Reason,
		arg.MigrationType, arg.Remittance,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetMigrationRecords(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM migration_records`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertAdaptationStrategyParams struct {
	StrategyID pgtype.UUID
	FarmerID   pgtype.UUID
	Strategy   pgtype.Text
	Aware      pgtype.Bool
	Adopted    pgtype.Bool
}

const insertAdaptationStrategy = `
INSERT INTO adaptation_strategies (
    strategy_id, farmer_id, strategy, aware, adopted
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (strategy_id) DO NOTHING
`

func (q *Queries) InsertAdaptationStrategy(ctx context.Context, arg InsertAdaptationStrategyParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertAdaptationStrategy,
		arg.StrategyID, arg.FarmerID, arg.Strategy, arg.Aware, arg.Adopted,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetAdaptationStrategies(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM adaptation_strategies`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertFinancialRecordParams struct {
	FinID          pgtype.UUID
	FarmerID       pgtype.UUID
	Loan           pgtype.Bool
	LoanPurpose    pgtype.Text
	CreditReturned pgtype.Bool
	Kcc            pgtype.Bool
	KccUsed        pgtype.Bool
	Memberships    pgtype.Text
	Benefits       pgtype.Text
	SoilTesting    pgtype.Bool
	Training       pgtype.Text
	InfoSources    pgtype.Text
	Constraints    pgtype.Text
}

const insertFinancialRecord = `
INSERT INTO financial_records (
    fin_id, farmer_id, loan, loan_purpose, credit_returned, kcc, kcc_used,
    memberships, benefits, soil_testing, training, info_sources, constraints
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (fin_id) DO NOTHING
`

func (q *Queries) InsertFinancialRecord(ctx context.Context, arg InsertFinancialRecordParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertFinancialRecord,
		arg.FinID, arg.FarmerID, arg.Loan, arg.LoanPurpose, arg.CreditReturned,
		arg.Kcc, arg.KccUsed, arg.Memberships, arg.Benefits, arg.SoilTesting,
		arg.Training, arg.InfoSources, arg.Constraints,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) ResetFinancialRecords(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM financial_records`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

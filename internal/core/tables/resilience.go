package tables

import (
	"context"

	"github.com/agrisurvey/portal/internal/core"
	db "github.com/agrisurvey/portal/internal/database"
)

func init() {
	registerMigrationRecords()
	registerAdaptationStrategies()
	registerFinancialRecords()
}

func registerMigrationRecords() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "migration_records",
			Label:       "Migration",
			Description: "Migration details for household members.",
			IDColumn:    "migration_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "migration_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "age_gender", Type: core.FieldText, Required: true},
			{Name: "reason", Type: core.FieldText},
			{Name: "migration_type", Type: core.FieldText},
			{Name: "remittance", Type: core.FieldDecimal},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "migration_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertMigrationRecordParams{
				MigrationID:   id,
				FarmerID:      farmer,
				AgeGender:     core.ToPgText(getCell(row, idx, "age_gender")),
				Reason:        core.ToPgText(getCell(row, idx, "reason")),
				MigrationType: core.ToPgText(getCell(row, idx, "migration_type")),
				Remittance:    core.ToPgNumeric(getCell(row, idx, "remittance")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertMigrationRecord(ctx, params.(db.InsertMigrationRecordParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetMigrationRecords(ctx)
		},
	})
}

func registerAdaptationStrategies() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "adaptation_strategies",
			Label:       "Adaptation Strategies",
			Description: "Climate adaptation strategies known or adopted.",
			IDColumn:    "strategy_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "strategy_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "strategy", Type: core.FieldText, Required: true},
			{Name: "aware", Type: core.FieldBool},
			{Name: "adopted", Type: core.FieldBool},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "strategy_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertAdaptationStrategyParams{
				StrategyID: id,
				FarmerID:   farmer,
				Strategy:   core.ToPgText(getCell(row, idx, "strategy")),
				Aware:      core.ToPgBool(getCell(row, idx, "aware")),
				Adopted:    core.ToPgBool(getCell(row, idx, "adopted")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertAdaptationStrategy(ctx, params.(db.InsertAdaptationStrategyParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetAdaptationStrategies(ctx)
		},
	})
}

func registerFinancialRecords() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:         "financial_records",
			Label:       "Financial Records",
			Description: "Financial inclusion, credit and benefit utilisation.",
			IDColumn:    "fin_id",
			ParentRef:   "farmer_id",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "fin_id", Type: core.FieldText},
			{Name: "farmer_id", Type: core.FieldText, Required: true},
			{Name: "loan", Type: core.FieldBool},
			{Name: "loan_purpose", Type: core.FieldText},
			{Name: "credit_returned", Type: core.FieldBool},
			{Name: "kcc", Type: core.FieldBool},
			{Name: "kcc_used", Type: core.FieldBool},
			{Name: "memberships", Type: core.FieldText},
			{Name: "benefits", Type: core.FieldText},
			{Name: "soil_testing", Type: core.FieldBool},
			{Name: "training", Type: core.FieldText},
			{Name: "info_sources", Type: core.FieldText},
			{Name: "constraints", Type: core.FieldText},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			id, err := idOrNew(row, idx, "fin_id")
			if err != nil {
				return nil, err
			}
			farmer, err := farmerRef(row, idx)
			if err != nil {
				return nil, err
			}
			return db.InsertFinancialRecordParams{
				FinID:          id,
				FarmerID:       farmer,
				Loan:           core.ToPgBool(getCell(row, idx, "loan")),
				LoanPurpose:    core.ToPgText(getCell(row, idx, "loan_purpose")),
				CreditReturned: core.ToPgBool(getCell(row, idx, "credit_returned")),
				Kcc:            core.ToPgBool(getCell(row, idx, "kcc")),
				KccUsed:        core.ToPgBool(getCell(row, idx, "kcc_used")),
				Memberships:    core.ToPgText(getCell(row, idx, "memberships")),
				Benefits:       core.ToPgText(getCell(row, idx, "benefits")),
				SoilTesting:    core.ToPgBool(getCell(row, idx, "soil_testing")),
				Training:       core.ToPgText(getCell(row, idx, "training")),
				InfoSources:    core.ToPgText(getCell(row, idx, "info_sources")),
				Constraints:    core.ToPgText(getCell(row, idx, "constraints")),
			}, nil
		},
		Insert: func(ctx context.Context, dbtx core.DBTX, params any) (bool, error) {
			return db.New(dbtx).InsertFinancialRecord(ctx, params.(db.InsertFinancialRecordParams))
		},
		Reset: func(ctx context.Context, dbtx core.DBTX) (int64, error) {
			return db.New(dbtx).ResetFinancialRecords(ctx)
		},
	})
}

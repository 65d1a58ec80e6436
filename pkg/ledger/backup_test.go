package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/envelope-zero/ledger/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExport() {
	suite.spendingScenario()

	b, err := suite.ledger.Export(suite.ctx)
	suite.Require().Nil(err)

	suite.Assert().Equal(ledger.BackupVersion, b.Version)
	suite.Assert().Equal(now, b.ExportDate)
	suite.Assert().Len(b.Envelopes, 1)
	suite.Assert().Len(b.Categories, 2)
	suite.Assert().Len(b.Budgets, 2)
	suite.Assert().Len(b.Incomes, 1)
	suite.Assert().Len(b.Allocations, 0)
	suite.Assert().Len(b.Expenses, 2)
	suite.Assert().Len(b.Subsidies, 1)
	suite.Assert().Len(b.Carryovers, 0)
	suite.Assert().Len(b.MonthlySnapshots, 0)

	// Empty collections are exported as empty lists
	out, err := json.Marshal(b)
	suite.Require().Nil(err)
	suite.Assert().Contains(string(out), `"carryovers":[]`)
}

func (suite *TestSuiteStandard) TestBackupRoundTrip() {
	meals, _ := suite.scenario()
	income := suite.createIncome("2025-02-01", 8500000)
	_, err := suite.ledger.AllocateIncomeToBudgets(suite.ctx, &income.ID, []ledger.AllocationRequest{
		{CategoryID: meals.ID, Period: "2025-02", Amount: d(250)},
	}, models.AllocationTypeIncome)
	suite.Require().Nil(err)
	_, err = suite.ledger.ProcessCarryOver(suite.ctx, meals.ID, "2025-02", models.CarryoverActionCarry, nil)
	suite.Require().Nil(err)
	_, err = suite.ledger.SaveMonthlySnapshot(suite.ctx, "2025-02")
	suite.Require().Nil(err)

	exported, err := suite.ledger.Export(suite.ctx)
	suite.Require().Nil(err)

	// Restore into a second, empty ledger
	restored := ledger.New(store.NewGorm(test.Connect(suite.T())), ledger.WithClock(func() time.Time { return now.Add(time.Hour) }))
	suite.Require().Nil(restored.Import(suite.ctx, exported))

	reexported, err := restored.Export(suite.ctx)
	suite.Require().Nil(err)
	reexported.ExportDate = exported.ExportDate

	want, err := json.Marshal(exported)
	suite.Require().Nil(err)
	got, err := json.Marshal(reexported)
	suite.Require().Nil(err)
	suite.Assert().JSONEq(string(want), string(got))

	// Derived values are the same after the restore
	r, err := restored.BudgetRemaining(suite.ctx, meals.ID, "2025-03")
	suite.Require().Nil(err)
	suite.assertDecimal(3000250, r)
}

func (suite *TestSuiteStandard) TestImportReplacesData() {
	suite.spendingScenario()

	backup := ledger.Backup{Version: ledger.BackupVersion, Envelopes: []models.Envelope{}}
	suite.Require().Nil(suite.ledger.Import(suite.ctx, backup))

	exported, err := suite.ledger.Export(suite.ctx)
	suite.Require().Nil(err)
	suite.Assert().Len(exported.Envelopes, 0)
	suite.Assert().Len(exported.Categories, 0)
	suite.Assert().Len(exported.Budgets, 0)
	suite.Assert().Len(exported.Incomes, 0)
	suite.Assert().Len(exported.Expenses, 0)
	suite.Assert().Len(exported.Subsidies, 0)
}

func (suite *TestSuiteStandard) TestImportInvalidFormat() {
	suite.spendingScenario()

	tests := []struct {
		name   string
		backup ledger.Backup
	}{
		{"No version", ledger.Backup{Envelopes: []models.Envelope{}}},
		{"No envelopes", ledger.Backup{Version: ledger.BackupVersion}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := suite.ledger.Import(suite.ctx, tt.backup)
			assert.ErrorIs(t, err, ledger.ErrInvalidBackupFormat)
		})
	}

	// The data is untouched
	expenses, err := suite.ledger.ListExpenses(suite.ctx, "", "")
	suite.Require().Nil(err)
	suite.Assert().Len(expenses, 2)
}

func (suite *TestSuiteStandard) TestImportConstraintViolationRollsBack() {
	suite.spendingScenario()
	envelope := models.Envelope{Name: "Twice"}
	envelope.Stamp(now)

	err := suite.ledger.Import(suite.ctx, ledger.Backup{
		Version:   ledger.BackupVersion,
		Envelopes: []models.Envelope{envelope, {Name: "Twice"}},
	})
	suite.Require().ErrorIs(err, models.ErrEnvelopeNameNotUnique)

	envelopes, err := suite.ledger.ListEnvelopes(suite.ctx)
	suite.Require().Nil(err)
	suite.Assert().Len(envelopes, 1)
	suite.Assert().Equal("Living Cost", envelopes[0].Name)
}

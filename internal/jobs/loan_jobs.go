package jobs

import (
	"context"

	"github.com/shopspring/decimal"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/logger"
	"library-lending-backend/internal/utils"
)

// OverdueEntry is one line of the overdue report. AccruedFine is what the
// member would owe if the book came back now under the current rules.
type OverdueEntry struct {
	Loan        domain.Loan
	DaysLate    int64
	AccruedFine decimal.Decimal
}

// ReportOverdueLoans logs every open loan past its due time.
func (jr *JobRunner) ReportOverdueLoans() {
	jr.runWithRecovery("ReportOverdueLoans", func() {
		entries, err := jr.BuildOverdueReport(context.Background())
		if err != nil {
			logger.Error("Failed to build overdue loan report", "error", err)
			return
		}

		total := decimal.Zero
		for _, e := range entries {
			total = total.Add(e.AccruedFine)
			logger.Info("Overdue loan",
				"loan_id", e.Loan.ID,
				"member_id", e.Loan.MemberID,
				"isbn", e.Loan.BookISBN,
				"due_at", e.Loan.DueAt,
				"days_late", e.DaysLate,
				"accrued_fine", e.AccruedFine.StringFixed(2))
		}
		logger.Info("Overdue loan report", "count", len(entries), "accrued_total", total.StringFixed(2))
	})
}

// BuildOverdueReport computes the overdue entries as of the runner's clock.
func (jr *JobRunner) BuildOverdueReport(ctx context.Context) ([]OverdueEntry, error) {
	now := jr.clock.Now()

	loans, err := jr.services.Lending.GetOverdueLoans(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := jr.services.Rules.GetRules(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]OverdueEntry, 0, len(loans))
	for _, l := range loans {
		entries = append(entries, OverdueEntry{
			Loan:        l,
			DaysLate:    utils.DaysLate(l.DueAt, now),
			AccruedFine: utils.CalculateFine(l.DueAt, now, rules.FinePerDay),
		})
	}
	return entries, nil
}

// Package aicontext renders ledger state into the plain-text context block
// the external chat/RAG collaborator consumes. The model call, embeddings and
// vector store live outside this service.
package aicontext

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/captable/internal/report"
)

const preamble = `The business is set up in India and the cap table is managed in accordance with the Indian Companies Act, 2013.
The cap table is a record of the ownership of the company's equity, including shares, options, and other securities.
All currency amounts are in INR.`

type Service struct {
	reports *report.Service
	printer *message.Printer
}

func NewService(reports *report.Service) *Service {
	return &Service{
		reports: reports,
		printer: message.NewPrinter(language.English),
	}
}

// Build assembles the context text: the latest snapshot, the stakeholder
// summaries and the round feed size, in prose a language model can quote.
func (s *Service) Build(ctx context.Context, businessID uuid.UUID) (string, error) {
	info, err := s.reports.BusinessInfo(ctx, businessID)
	if err != nil {
		return "", fmt.Errorf("reading business info: %w", err)
	}

	stakeholders, err := s.reports.Stakeholders(ctx, businessID)
	if err != nil {
		return "", fmt.Errorf("reading stakeholders: %w", err)
	}

	rounds, err := s.reports.Rounds(ctx, businessID)
	if err != nil {
		return "", fmt.Errorf("reading rounds: %w", err)
	}

	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\n")

	if info == nil {
		b.WriteString("The company has not recorded any corporate actions yet.\n")
		return b.String(), nil
	}

	s.printer.Fprintf(&b, "The company has recorded %d rounds. As of the latest snapshot (%s): %s shares outstanding, %s unissued, pre-money valuation %s, post-money valuation %s.\n\n",
		len(rounds),
		info.CreatedAt.Format("2 January 2006"),
		info.TotalShares.String(),
		info.BalanceShares.String(),
		inr(info.PreMoneyValuation),
		inr(info.PostMoneyValuation),
	)

	b.WriteString("Stakeholders:\n")

	for _, sh := range stakeholders.Stakeholders {
		ownership := "0"
		if stakeholders.TotalOwnershipShares.IsPositive() {
			ownership = sh.OwnershipShares.Div(stakeholders.TotalOwnershipShares).Mul(decimal.NewFromInt(100)).Round(2).String()
		}

		s.printer.Fprintf(&b, "- %s (%s): %s shares held (%s%% ownership), %s invested, %s shares promised under pending contracts, current stock value %s",
			sh.Name, sh.Type,
			sh.OwnedShares.String(), ownership,
			inr(sh.TotalInvestment),
			sh.PromisedShares.String(),
			inr(sh.StockValue),
		)

		if sh.HasExited && sh.ExitedAtPrice != nil {
			s.printer.Fprintf(&b, "; exited at %s", inr(*sh.ExitedAtPrice))
		}

		b.WriteString(".\n")
	}

	s.printer.Fprintf(&b, "\nTotals: %s shares held, %s invested across all stakeholders.\n",
		stakeholders.TotalOwnedShares.String(),
		inr(stakeholders.TotalInvestment),
	)

	return b.String(), nil
}

func inr(amount decimal.Decimal) string {
	return money.NewFromFloat(amount.InexactFloat64(), money.INR).Display()
}

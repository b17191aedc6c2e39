package service

import (
	"context"

	"greencommute-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ledgerService fronts the ledger repository. Atomicity and the
// non-negativity invariant live in the repository's transactions; this
// layer only adds balance reads for callers.
type ledgerService struct {
	ledgerRepo repository.LedgerRepository
	orgRepo    repository.OrganizationRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, orgRepo repository.OrganizationRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, orgRepo: orgRepo}
}

func (s *ledgerService) CreditOrganization(ctx context.Context, orgID int32, amount decimal.Decimal) error {
	return s.ledgerRepo.Credit(ctx, orgID, amount)
}

func (s *ledgerService) DebitOrganization(ctx context.Context, orgID int32, amount decimal.Decimal) error {
	return s.ledgerRepo.Debit(ctx, orgID, amount)
}

func (s *ledgerService) TransferBalance(ctx context.Context, payerOrgID, payeeOrgID int32, amount decimal.Decimal) error {
	return s.ledgerRepo.TransferBalance(ctx, payerOrgID, payeeOrgID, amount)
}

func (s *ledgerService) TransferCredits(ctx context.Context, fromOrgID, toOrgID int32, amount decimal.Decimal) error {
	return s.ledgerRepo.TransferCredits(ctx, fromOrgID, toOrgID, amount)
}

func (s *ledgerService) GetBalances(ctx context.Context, orgID int32) (decimal.Decimal, decimal.Decimal, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return org.TotalCredits, org.VirtualBalance, nil
}

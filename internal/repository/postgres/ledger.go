package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ledgerRepository mutates the balance fields of organizations. All
// multi-row operations run in one transaction and lock organization rows
// in ascending id order so two concurrent transfers cannot deadlock.
type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

type orgBalances struct {
	totalCredits   decimal.Decimal
	virtualBalance decimal.Decimal
}

// lockBalances locks the given organization rows FOR UPDATE. The query
// orders by id, which fixes the lock acquisition order globally.
func lockBalances(ctx context.Context, tx *sql.Tx, ids ...int32) (map[int32]orgBalances, error) {
	args := make([]any, len(ids))
	placeholders := ""
	for i, id := range ids {
		args[i] = id
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+1)
	}

	query := `SELECT id, total_credits, virtual_balance FROM organizations WHERE id IN (` + placeholders + `) ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[int32]orgBalances, len(ids))
	for rows.Next() {
		var id int32
		var b orgBalances
		if err := rows.Scan(&id, &b.totalCredits, &b.virtualBalance); err != nil {
			return nil, err
		}
		balances[id] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := balances[id]; !ok {
			return nil, domain.ErrNotFound
		}
	}
	return balances, nil
}

func setBalances(ctx context.Context, tx *sql.Tx, orgID int32, b orgBalances) error {
	_, err := tx.ExecContext(ctx, `UPDATE organizations SET total_credits = $2, virtual_balance = $3 WHERE id = $1`, orgID, b.totalCredits, b.virtualBalance)
	return err
}

func (r *ledgerRepository) Credit(ctx context.Context, orgID int32, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrValidation
	}
	res, err := r.db.ExecContext(ctx, `UPDATE organizations SET total_credits = total_credits + $2 WHERE id = $1`, orgID, amount)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ledgerRepository) Debit(ctx context.Context, orgID int32, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrValidation
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	balances, err := lockBalances(ctx, tx, orgID)
	if err != nil {
		return err
	}
	b := balances[orgID]
	if b.totalCredits.LessThan(amount) {
		return domain.ErrInsufficientCredits
	}
	b.totalCredits = b.totalCredits.Sub(amount)
	if err := setBalances(ctx, tx, orgID, b); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) TransferBalance(ctx context.Context, payerOrgID, payeeOrgID int32, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrValidation
	}
	if payerOrgID == payeeOrgID {
		return domain.ErrValidation
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := transferBalanceTx(ctx, tx, payerOrgID, payeeOrgID, amount); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) TransferCredits(ctx context.Context, fromOrgID, toOrgID int32, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrValidation
	}
	if fromOrgID == toOrgID {
		return domain.ErrValidation
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := transferCreditsTx(ctx, tx, fromOrgID, toOrgID, amount); err != nil {
		return err
	}
	return tx.Commit()
}

func transferBalanceTx(ctx context.Context, tx *sql.Tx, payerOrgID, payeeOrgID int32, amount decimal.Decimal) error {
	balances, err := lockBalances(ctx, tx, payerOrgID, payeeOrgID)
	if err != nil {
		return err
	}
	payer, payee := balances[payerOrgID], balances[payeeOrgID]
	if payer.virtualBalance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	payer.virtualBalance = payer.virtualBalance.Sub(amount)
	payee.virtualBalance = payee.virtualBalance.Add(amount)
	if err := setBalances(ctx, tx, payerOrgID, payer); err != nil {
		return err
	}
	return setBalances(ctx, tx, payeeOrgID, payee)
}

func transferCreditsTx(ctx context.Context, tx *sql.Tx, fromOrgID, toOrgID int32, amount decimal.Decimal) error {
	balances, err := lockBalances(ctx, tx, fromOrgID, toOrgID)
	if err != nil {
		return err
	}
	from, to := balances[fromOrgID], balances[toOrgID]
	if from.totalCredits.LessThan(amount) {
		return domain.ErrInsufficientCredits
	}
	from.totalCredits = from.totalCredits.Sub(amount)
	to.totalCredits = to.totalCredits.Add(amount)
	if err := setBalances(ctx, tx, fromOrgID, from); err != nil {
		return err
	}
	return setBalances(ctx, tx, toOrgID, to)
}

// ExecuteTrade commits a listing purchase: the status flip, the cash
// transfer and the credit transfer all land in one transaction. The flip
// is a compare-and-swap on status, so of N concurrent purchases exactly
// one proceeds past it; the rest see ErrListingNotActive.
func (r *ledgerRepository) ExecuteTrade(ctx context.Context, listingID, buyerOrgID, sellerOrgID int32, cost, credits decimal.Decimal) error {
	if cost.Sign() <= 0 || credits.Sign() <= 0 {
		return domain.ErrValidation
	}
	if buyerOrgID == sellerOrgID {
		return domain.ErrSelfTrade
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var soldSeller int32
	err = tx.QueryRowContext(ctx,
		`UPDATE listings SET status = 'sold' WHERE id = $1 AND status = 'active' RETURNING organization_id`,
		listingID).Scan(&soldSeller)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrListingNotActive
	}
	if err != nil {
		return err
	}
	if soldSeller != sellerOrgID {
		return domain.ErrValidation
	}

	balances, err := lockBalances(ctx, tx, buyerOrgID, sellerOrgID)
	if err != nil {
		return err
	}
	buyer, seller := balances[buyerOrgID], balances[sellerOrgID]
	if buyer.virtualBalance.LessThan(cost) {
		return domain.ErrInsufficientFunds
	}
	if seller.totalCredits.LessThan(credits) {
		return domain.ErrInsufficientCredits
	}

	buyer.virtualBalance = buyer.virtualBalance.Sub(cost)
	buyer.totalCredits = buyer.totalCredits.Add(credits)
	seller.virtualBalance = seller.virtualBalance.Add(cost)
	seller.totalCredits = seller.totalCredits.Sub(credits)

	if err := setBalances(ctx, tx, buyerOrgID, buyer); err != nil {
		return err
	}
	if err := setBalances(ctx, tx, sellerOrgID, seller); err != nil {
		return err
	}
	return tx.Commit()
}

package treasury

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/treasury"
)

// BalanceCache is a read-through cache over derived safe balances.
// Get returns (nil, nil) on a miss; Invalidate drops entries after any
// cash-affecting write and is best-effort.
type BalanceCache interface {
	Get(ctx context.Context, safeID uuid.UUID) (*treasury.BalanceBreakdown, error)
	Set(ctx context.Context, safeID uuid.UUID, breakdown *treasury.BalanceBreakdown) error
	InvalidateBalance(ctx context.Context, safeIDs ...uuid.UUID)
}

// SafeReferenceChecker reports whether any record of one transaction stream
// references a safe. The trade repositories implement it for invoices and
// purchases.
type SafeReferenceChecker interface {
	ExistsForSafe(ctx context.Context, safeID uuid.UUID) (bool, error)
}

// TreasuryService handles safes, vouchers, cash transfers and the derived
// balance view.
type TreasuryService struct {
	safes        treasury.SafeRepository
	vouchers     treasury.VoucherRepository
	transfers    treasury.CashTransferRepository
	invoiceRefs  SafeReferenceChecker
	purchaseRefs SafeReferenceChecker
	cache        BalanceCache
	logger       *zap.Logger
}

// NewTreasuryService creates a new TreasuryService
func NewTreasuryService(
	safes treasury.SafeRepository,
	vouchers treasury.VoucherRepository,
	transfers treasury.CashTransferRepository,
	invoiceRefs SafeReferenceChecker,
	purchaseRefs SafeReferenceChecker,
	cache BalanceCache,
	logger *zap.Logger,
) *TreasuryService {
	return &TreasuryService{
		safes:        safes,
		vouchers:     vouchers,
		transfers:    transfers,
		invoiceRefs:  invoiceRefs,
		purchaseRefs: purchaseRefs,
		cache:        cache,
		logger:       logger,
	}
}

func (s *TreasuryService) invalidate(ctx context.Context, safeIDs ...uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateBalance(ctx, safeIDs...)
	}
}

// CreateSafe creates a new treasury account
func (s *TreasuryService) CreateSafe(ctx context.Context, name string) (*treasury.Safe, error) {
	if existing, err := s.safes.FindByName(ctx, name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}
	safe, err := treasury.NewSafe(name)
	if err != nil {
		return nil, err
	}
	if err := s.safes.Save(ctx, safe); err != nil {
		return nil, err
	}
	s.logger.Info("safe created", zap.String("safe_id", safe.ID.String()), zap.String("name", safe.Name))
	return safe, nil
}

// RenameSafe changes a safe's name
func (s *TreasuryService) RenameSafe(ctx context.Context, safeID uuid.UUID, name string) (*treasury.Safe, error) {
	safe, err := s.safes.FindByID(ctx, safeID)
	if err != nil {
		return nil, err
	}
	if err := safe.Rename(name); err != nil {
		return nil, err
	}
	if err := s.safes.Save(ctx, safe); err != nil {
		return nil, err
	}
	return safe, nil
}

// DeleteSafe removes a safe. Any voucher, transfer, invoice or purchase
// referencing the account blocks the deletion, because losing the reference
// would silently change every derived balance.
func (s *TreasuryService) DeleteSafe(ctx context.Context, safeID uuid.UUID) error {
	if _, err := s.safes.FindByID(ctx, safeID); err != nil {
		return err
	}
	checks := []SafeReferenceChecker{s.vouchers, s.transfers, s.invoiceRefs, s.purchaseRefs}
	for _, check := range checks {
		if check == nil {
			continue
		}
		used, err := check.ExistsForSafe(ctx, safeID)
		if err != nil {
			return err
		}
		if used {
			return shared.ErrInUse
		}
	}
	if err := s.safes.Delete(ctx, safeID); err != nil {
		return err
	}
	s.invalidate(ctx, safeID)
	s.logger.Info("safe deleted", zap.String("safe_id", safeID.String()))
	return nil
}

// ListSafes retrieves all treasury accounts
func (s *TreasuryService) ListSafes(ctx context.Context) ([]treasury.Safe, error) {
	return s.safes.FindAll(ctx)
}

// Balance returns the derived cash position of a safe, read through the
// cache when one is configured. The underlying query aggregates the five
// transaction streams; nothing is ever stored on the safe itself.
func (s *TreasuryService) Balance(ctx context.Context, safeID uuid.UUID) (*treasury.BalanceBreakdown, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, safeID); err == nil && cached != nil {
			return cached, nil
		}
	}
	breakdown, err := s.safes.Balance(ctx, safeID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, safeID, breakdown); err != nil {
			s.logger.Warn("balance cache set failed", zap.Error(err))
		}
	}
	return breakdown, nil
}

// CreateVoucher records a manual receipt or payment against one safe
func (s *TreasuryService) CreateVoucher(ctx context.Context, voucher *treasury.Voucher) (*treasury.Voucher, error) {
	if _, err := s.safes.FindByID(ctx, voucher.SafeID); err != nil {
		return nil, err
	}
	if err := s.vouchers.Save(ctx, voucher); err != nil {
		return nil, err
	}
	s.invalidate(ctx, voucher.SafeID)
	s.logger.Info("voucher recorded",
		zap.String("voucher_id", voucher.ID.String()),
		zap.String("type", string(voucher.Type)),
		zap.String("amount", voucher.Amount.StringFixed(2)))
	return voucher, nil
}

// DeleteVoucher removes a manual cash movement
func (s *TreasuryService) DeleteVoucher(ctx context.Context, voucherID uuid.UUID) error {
	voucher, err := s.vouchers.FindByID(ctx, voucherID)
	if err != nil {
		return err
	}
	if err := s.vouchers.Delete(ctx, voucherID); err != nil {
		return err
	}
	s.invalidate(ctx, voucher.SafeID)
	return nil
}

// ListVouchers retrieves vouchers matching the filter
func (s *TreasuryService) ListVouchers(ctx context.Context, filter treasury.VoucherFilter) ([]treasury.Voucher, error) {
	return s.vouchers.FindAll(ctx, filter)
}

// CreateCashTransfer moves money between two safes. The source must hold at
// least the transferred amount per its derived balance.
func (s *TreasuryService) CreateCashTransfer(ctx context.Context, transfer *treasury.CashTransfer) (*treasury.CashTransfer, error) {
	if _, err := s.safes.FindByID(ctx, transfer.FromSafeID); err != nil {
		return nil, err
	}
	if _, err := s.safes.FindByID(ctx, transfer.ToSafeID); err != nil {
		return nil, err
	}
	source, err := s.safes.Balance(ctx, transfer.FromSafeID)
	if err != nil {
		return nil, err
	}
	enough, err := source.Balance.GreaterThanOrEqual(transfer.Amount)
	if err != nil {
		return nil, err
	}
	if !enough {
		return nil, shared.ErrInsufficientBalance
	}
	if err := s.transfers.Save(ctx, transfer); err != nil {
		return nil, err
	}
	s.invalidate(ctx, transfer.FromSafeID, transfer.ToSafeID)
	s.logger.Info("cash transfer recorded",
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("amount", transfer.Amount.StringFixed(2)))
	return transfer, nil
}

// DeleteCashTransfer removes a transfer, restoring both balances on the next read
func (s *TreasuryService) DeleteCashTransfer(ctx context.Context, transferID uuid.UUID) error {
	transfer, err := s.transfers.FindByID(ctx, transferID)
	if err != nil {
		return err
	}
	if err := s.transfers.Delete(ctx, transferID); err != nil {
		return err
	}
	s.invalidate(ctx, transfer.FromSafeID, transfer.ToSafeID)
	return nil
}

// ListCashTransfers retrieves transfers matching the filter
func (s *TreasuryService) ListCashTransfers(ctx context.Context, filter treasury.TransferFilter) ([]treasury.CashTransfer, error) {
	return s.transfers.FindAll(ctx, filter)
}

package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailcore/backend/internal/domain/catalog"
	"github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
)

// In-memory repositories backing the service tests. They satisfy the same
// interfaces the gorm implementations do, minus transactionality, which the
// services do not rely on for the invariants tested here.

type memVariantRepo struct {
	variants map[uuid.UUID]*catalog.ItemVariant
}

func newMemVariantRepo() *memVariantRepo {
	return &memVariantRepo{variants: make(map[uuid.UUID]*catalog.ItemVariant)}
}

func (r *memVariantRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.ItemVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (r *memVariantRepo) FindByBarcode(_ context.Context, barcode string) (*catalog.ItemVariant, error) {
	for _, v := range r.variants {
		if v.Barcode == barcode {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memVariantRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]catalog.ItemVariant, error) {
	var out []catalog.ItemVariant
	for _, v := range r.variants {
		if v.ItemID == itemID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memVariantRepo) Save(_ context.Context, v *catalog.ItemVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *memVariantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.variants, id)
	return nil
}

type stockKey struct {
	location uuid.UUID
	variant  uuid.UUID
}

type memStockRepo struct {
	positions map[stockKey]decimal.Decimal
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{positions: make(map[stockKey]decimal.Decimal)}
}

func (r *memStockRepo) AdjustQuantity(_ context.Context, locationID, variantID uuid.UUID, delta decimal.Decimal) error {
	key := stockKey{locationID, variantID}
	r.positions[key] = r.positions[key].Add(delta)
	return nil
}

func (r *memStockRepo) QuantityAt(_ context.Context, locationID, variantID uuid.UUID) (decimal.Decimal, error) {
	return r.positions[stockKey{locationID, variantID}], nil
}

func (r *memStockRepo) AggregateQuantity(_ context.Context, variantID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for key, qty := range r.positions {
		if key.variant == variantID {
			total = total.Add(qty)
		}
	}
	return total, nil
}

func (r *memStockRepo) FindPositions(_ context.Context, filter inventory.StockFilter) ([]inventory.StockPosition, error) {
	var out []inventory.StockPosition
	for key, qty := range r.positions {
		if filter.LocationID != nil && key.location != *filter.LocationID {
			continue
		}
		if filter.VariantID != nil && key.variant != *filter.VariantID {
			continue
		}
		if filter.OnlyNegative && !qty.IsNegative() {
			continue
		}
		if filter.OnlyNonZero && qty.IsZero() {
			continue
		}
		out = append(out, inventory.StockPosition{
			LocationID: key.location,
			VariantID:  key.variant,
			Quantity:   qty,
		})
	}
	return out, nil
}

type memInvoiceRepo struct {
	invoices map[uuid.UUID]*trade.SaleInvoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: make(map[uuid.UUID]*trade.SaleInvoice)}
}

func (r *memInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SaleInvoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return inv, nil
}

func (r *memInvoiceRepo) FindAll(_ context.Context, _ trade.InvoiceFilter) ([]trade.SaleInvoice, error) {
	var out []trade.SaleInvoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *memInvoiceRepo) Save(_ context.Context, inv *trade.SaleInvoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *memInvoiceRepo) DeleteLines(_ context.Context, invoiceID uuid.UUID) error {
	if inv, ok := r.invoices[invoiceID]; ok {
		inv.Lines = nil
	}
	return nil
}

func (r *memInvoiceRepo) ExistsForVariant(_ context.Context, variantID uuid.UUID) (bool, error) {
	for _, inv := range r.invoices {
		for _, line := range inv.Lines {
			if line.VariantID == variantID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memInvoiceRepo) ExistsForSafe(_ context.Context, safeID uuid.UUID) (bool, error) {
	for _, inv := range r.invoices {
		if inv.SafeID != nil && *inv.SafeID == safeID {
			return true, nil
		}
	}
	return false, nil
}

type memPurchaseRepo struct {
	orders map[uuid.UUID]*trade.PurchaseOrder
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{orders: make(map[uuid.UUID]*trade.PurchaseOrder)}
}

func (r *memPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return po, nil
}

func (r *memPurchaseRepo) FindChild(_ context.Context, parentID uuid.UUID) (*trade.PurchaseOrder, error) {
	for _, po := range r.orders {
		if po.ParentPurchaseID != nil && *po.ParentPurchaseID == parentID {
			return po, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseRepo) FindAll(_ context.Context, _ trade.PurchaseFilter) ([]trade.PurchaseOrder, error) {
	var out []trade.PurchaseOrder
	for _, po := range r.orders {
		out = append(out, *po)
	}
	return out, nil
}

func (r *memPurchaseRepo) Save(_ context.Context, po *trade.PurchaseOrder) error {
	r.orders[po.ID] = po
	return nil
}

func (r *memPurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *memPurchaseRepo) ExistsForVariant(_ context.Context, variantID uuid.UUID) (bool, error) {
	for _, po := range r.orders {
		for _, line := range po.Lines {
			if line.VariantID == variantID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memPurchaseRepo) ExistsForSafe(_ context.Context, safeID uuid.UUID) (bool, error) {
	for _, po := range r.orders {
		if po.SafeID != nil && *po.SafeID == safeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPurchaseRepo) FindLineByID(_ context.Context, lineID uuid.UUID) (*trade.PurchaseLine, error) {
	for _, po := range r.orders {
		if line := po.FindLine(lineID); line != nil {
			return line, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseRepo) SaveLine(_ context.Context, _ *trade.PurchaseLine) error {
	return nil
}

type memSaleReturnRepo struct {
	returns map[uuid.UUID]*trade.SaleReturn
}

func newMemSaleReturnRepo() *memSaleReturnRepo {
	return &memSaleReturnRepo{returns: make(map[uuid.UUID]*trade.SaleReturn)}
}

func (r *memSaleReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return ret, nil
}

func (r *memSaleReturnRepo) FindByInvoiceID(_ context.Context, invoiceID uuid.UUID) ([]trade.SaleReturn, error) {
	var out []trade.SaleReturn
	for _, ret := range r.returns {
		if ret.InvoiceID == invoiceID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *memSaleReturnRepo) FindAll(_ context.Context, _ trade.ReturnFilter) ([]trade.SaleReturn, error) {
	var out []trade.SaleReturn
	for _, ret := range r.returns {
		out = append(out, *ret)
	}
	return out, nil
}

func (r *memSaleReturnRepo) Save(_ context.Context, ret *trade.SaleReturn) error {
	r.returns[ret.ID] = ret
	return nil
}

func (r *memSaleReturnRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.returns, id)
	return nil
}

type memPurchaseReturnRepo struct {
	returns map[uuid.UUID]*trade.PurchaseReturn
}

func newMemPurchaseReturnRepo() *memPurchaseReturnRepo {
	return &memPurchaseReturnRepo{returns: make(map[uuid.UUID]*trade.PurchaseReturn)}
}

func (r *memPurchaseReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return ret, nil
}

func (r *memPurchaseReturnRepo) FindByPurchaseID(_ context.Context, purchaseID uuid.UUID) ([]trade.PurchaseReturn, error) {
	var out []trade.PurchaseReturn
	for _, ret := range r.returns {
		if ret.PurchaseID == purchaseID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *memPurchaseReturnRepo) FindAll(_ context.Context, _ trade.ReturnFilter) ([]trade.PurchaseReturn, error) {
	var out []trade.PurchaseReturn
	for _, ret := range r.returns {
		out = append(out, *ret)
	}
	return out, nil
}

func (r *memPurchaseReturnRepo) Save(_ context.Context, ret *trade.PurchaseReturn) error {
	r.returns[ret.ID] = ret
	return nil
}

func (r *memPurchaseReturnRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.returns, id)
	return nil
}

type memVoucherRepo struct {
	vouchers map[uuid.UUID]*treasury.Voucher
}

func newMemVoucherRepo() *memVoucherRepo {
	return &memVoucherRepo{vouchers: make(map[uuid.UUID]*treasury.Voucher)}
}

func (r *memVoucherRepo) FindByID(_ context.Context, id uuid.UUID) (*treasury.Voucher, error) {
	v, ok := r.vouchers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (r *memVoucherRepo) FindAll(_ context.Context, _ treasury.VoucherFilter) ([]treasury.Voucher, error) {
	var out []treasury.Voucher
	for _, v := range r.vouchers {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memVoucherRepo) Save(_ context.Context, v *treasury.Voucher) error {
	r.vouchers[v.ID] = v
	return nil
}

func (r *memVoucherRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.vouchers, id)
	return nil
}

func (r *memVoucherRepo) ExistsForSafe(_ context.Context, safeID uuid.UUID) (bool, error) {
	for _, v := range r.vouchers {
		if v.SafeID == safeID {
			return true, nil
		}
	}
	return false, nil
}

var (
	_ catalog.ItemVariantRepository  = (*memVariantRepo)(nil)
	_ inventory.StockRepository      = (*memStockRepo)(nil)
	_ trade.SaleInvoiceRepository    = (*memInvoiceRepo)(nil)
	_ trade.PurchaseOrderRepository  = (*memPurchaseRepo)(nil)
	_ trade.SaleReturnRepository     = (*memSaleReturnRepo)(nil)
	_ trade.PurchaseReturnRepository = (*memPurchaseReturnRepo)(nil)
	_ treasury.VoucherRepository     = (*memVoucherRepo)(nil)
)

// noOpScope runs the scoped function directly against the in-memory
// repositories, without a real transaction.
type noOpScope struct {
	invoices        trade.SaleInvoiceRepository
	purchases       trade.PurchaseOrderRepository
	saleReturns     trade.SaleReturnRepository
	purchaseReturns trade.PurchaseReturnRepository
	variants        catalog.ItemVariantRepository
	stock           inventory.StockRepository
	vouchers        treasury.VoucherRepository
}

func (s *noOpScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *noOpScope) Invoices() trade.SaleInvoiceRepository    { return s.invoices }
func (s *noOpScope) Purchases() trade.PurchaseOrderRepository { return s.purchases }
func (s *noOpScope) SaleReturns() trade.SaleReturnRepository  { return s.saleReturns }
func (s *noOpScope) PurchaseReturns() trade.PurchaseReturnRepository {
	return s.purchaseReturns
}
func (s *noOpScope) Variants() catalog.ItemVariantRepository { return s.variants }
func (s *noOpScope) Stock() inventory.StockRepository        { return s.stock }
func (s *noOpScope) Vouchers() treasury.VoucherRepository    { return s.vouchers }

var _ TransactionScope = (*noOpScope)(nil)
var _ TransactionalRepositories = (*noOpScope)(nil)

package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/application/inventory"
	tradeapp "github.com/retailcore/backend/internal/application/trade"
	"github.com/retailcore/backend/internal/domain/catalog"
	domaininventory "github.com/retailcore/backend/internal/domain/inventory"
	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared/valueobject"
	"github.com/retailcore/backend/internal/domain/trade"
	"github.com/retailcore/backend/internal/domain/treasury"
)

const dateLayout = "2006-01-02"

// SaleCreator records one sale invoice in its own transaction
type SaleCreator interface {
	CreateInvoice(ctx context.Context, req tradeapp.CreateSaleInvoiceRequest) (*trade.SaleInvoice, error)
}

// VoucherCreator records one manual cash movement
type VoucherCreator interface {
	CreateVoucher(ctx context.Context, voucher *treasury.Voucher) (*treasury.Voucher, error)
}

// StockMover executes one stock transfer in its own transaction
type StockMover interface {
	Transfer(ctx context.Context, req inventory.TransferStockRequest) error
}

// RowError describes why a single row was not imported
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result summarizes one import batch. A failing row never aborts the batch:
// it is counted, reported, and the next row proceeds in its own transaction.
type Result struct {
	TotalRows    int        `json:"total_rows"`
	ImportedRows int        `json:"imported_rows"`
	ErrorRows    int        `json:"error_rows"`
	Errors       []RowError `json:"errors,omitempty"`
}

func (r *Result) fail(row int, field, message string) {
	r.ErrorRows++
	r.Errors = append(r.Errors, RowError{Row: row, Field: field, Message: message})
}

// SaleImportLine is one barcode/quantity/price entry of an imported sale
type SaleImportLine struct {
	Barcode   string `validate:"required"`
	Quantity  string `validate:"required"`
	UnitPrice string `validate:"required"`
}

// SaleImportRow is one sale invoice expressed with names and barcodes, the
// way spreadsheet exports carry them.
type SaleImportRow struct {
	Date          string `validate:"required"`
	CustomerName  string
	LocationName  string `validate:"required"`
	SafeName      string
	PaymentMethod string `validate:"required,oneof=cash card wallet deferred"`
	Paid          string
	Discount      string
	Notes         string
	Lines         []SaleImportLine `validate:"required,min=1,dive"`
}

// VoucherImportRow is one manual receipt or payment
type VoucherImportRow struct {
	Date        string `validate:"required"`
	Type        string `validate:"required,oneof=receipt payment"`
	SafeName    string `validate:"required"`
	Amount      string `validate:"required"`
	Description string `validate:"required"`
}

// TransferImportRow is one stock movement between two named locations
type TransferImportRow struct {
	Date         string `validate:"required"`
	FromLocation string `validate:"required"`
	ToLocation   string `validate:"required"`
	Barcode      string `validate:"required"`
	Quantity     string `validate:"required"`
}

// ImportService replays exported rows through the regular application
// services, one row per transaction, resolving names and barcodes to ids.
type ImportService struct {
	sales     SaleCreator
	vouchers  VoucherCreator
	stock     StockMover
	variants  catalog.ItemVariantRepository
	locations domaininventory.LocationRepository
	safes     treasury.SafeRepository
	customers partner.CustomerRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	sales SaleCreator,
	vouchers VoucherCreator,
	stock StockMover,
	variants catalog.ItemVariantRepository,
	locations domaininventory.LocationRepository,
	safes treasury.SafeRepository,
	customers partner.CustomerRepository,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		sales:     sales,
		vouchers:  vouchers,
		stock:     stock,
		variants:  variants,
		locations: locations,
		safes:     safes,
		customers: customers,
		validate:  validator.New(),
		logger:    logger,
	}
}

// ImportSales replays sale rows through the sales service
func (s *ImportService) ImportSales(ctx context.Context, rows []SaleImportRow) (*Result, error) {
	result := &Result{TotalRows: len(rows)}
	for i, row := range rows {
		rowNum := i + 1
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.validate.Struct(row); err != nil {
			result.fail(rowNum, firstFailedField(err), err.Error())
			continue
		}
		req, field, err := s.buildSaleRequest(ctx, row)
		if err != nil {
			result.fail(rowNum, field, err.Error())
			continue
		}
		if _, err := s.sales.CreateInvoice(ctx, *req); err != nil {
			result.fail(rowNum, "", err.Error())
			continue
		}
		result.ImportedRows++
	}
	s.logger.Info("sale import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("failed", result.ErrorRows))
	return result, nil
}

func (s *ImportService) buildSaleRequest(ctx context.Context, row SaleImportRow) (*tradeapp.CreateSaleInvoiceRequest, string, error) {
	date, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		return nil, "date", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", row.Date)
	}
	location, err := s.locations.FindByName(ctx, row.LocationName)
	if err != nil {
		return nil, "location", fmt.Errorf("unknown location %q", row.LocationName)
	}

	req := tradeapp.CreateSaleInvoiceRequest{
		Date:          date,
		LocationID:    location.ID,
		PaymentMethod: trade.PaymentMethod(row.PaymentMethod),
		Notes:         row.Notes,
	}

	if row.SafeName != "" {
		safe, err := s.safes.FindByName(ctx, row.SafeName)
		if err != nil {
			return nil, "safe", fmt.Errorf("unknown treasury account %q", row.SafeName)
		}
		req.SafeID = &safe.ID
	}
	if row.CustomerName != "" {
		customer, err := s.customers.FindByName(ctx, row.CustomerName)
		if err != nil {
			return nil, "customer", fmt.Errorf("unknown customer %q", row.CustomerName)
		}
		req.CustomerID = &customer.ID
	}
	if row.Paid != "" {
		paid, err := valueobject.NewMoneyEGPFromString(row.Paid)
		if err != nil {
			return nil, "paid", err
		}
		req.Paid = paid
	}
	if row.Discount != "" {
		discount, err := valueobject.NewMoneyEGPFromString(row.Discount)
		if err != nil {
			return nil, "discount", err
		}
		req.Discount = discount
	}

	for _, line := range row.Lines {
		variant, err := s.variants.FindByBarcode(ctx, line.Barcode)
		if err != nil {
			return nil, "barcode", fmt.Errorf("unknown barcode %q", line.Barcode)
		}
		qty, err := decimal.NewFromString(line.Quantity)
		if err != nil || !qty.IsPositive() {
			return nil, "quantity", fmt.Errorf("invalid quantity %q", line.Quantity)
		}
		price, err := valueobject.NewMoneyEGPFromString(line.UnitPrice)
		if err != nil {
			return nil, "unit_price", err
		}
		req.Lines = append(req.Lines, tradeapp.SaleLineInput{
			VariantID: variant.ID,
			Quantity:  qty,
			Price:     price,
		})
	}
	return &req, "", nil
}

// ImportVouchers replays manual cash movements through the treasury service
func (s *ImportService) ImportVouchers(ctx context.Context, rows []VoucherImportRow) (*Result, error) {
	result := &Result{TotalRows: len(rows)}
	for i, row := range rows {
		rowNum := i + 1
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.validate.Struct(row); err != nil {
			result.fail(rowNum, firstFailedField(err), err.Error())
			continue
		}
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			result.fail(rowNum, "date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", row.Date))
			continue
		}
		safe, err := s.safes.FindByName(ctx, row.SafeName)
		if err != nil {
			result.fail(rowNum, "safe", fmt.Sprintf("unknown treasury account %q", row.SafeName))
			continue
		}
		amount, err := valueobject.NewMoneyEGPFromString(row.Amount)
		if err != nil {
			result.fail(rowNum, "amount", err.Error())
			continue
		}
		voucher, err := treasury.NewVoucher(date, treasury.VoucherType(row.Type), safe.ID, amount, row.Description)
		if err != nil {
			result.fail(rowNum, "", err.Error())
			continue
		}
		if _, err := s.vouchers.CreateVoucher(ctx, voucher); err != nil {
			result.fail(rowNum, "", err.Error())
			continue
		}
		result.ImportedRows++
	}
	s.logger.Info("voucher import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("failed", result.ErrorRows))
	return result, nil
}

// ImportTransfers replays stock movements through the stock service
func (s *ImportService) ImportTransfers(ctx context.Context, rows []TransferImportRow) (*Result, error) {
	result := &Result{TotalRows: len(rows)}
	for i, row := range rows {
		rowNum := i + 1
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.validate.Struct(row); err != nil {
			result.fail(rowNum, firstFailedField(err), err.Error())
			continue
		}
		from, err := s.locations.FindByName(ctx, row.FromLocation)
		if err != nil {
			result.fail(rowNum, "from_location", fmt.Sprintf("unknown location %q", row.FromLocation))
			continue
		}
		to, err := s.locations.FindByName(ctx, row.ToLocation)
		if err != nil {
			result.fail(rowNum, "to_location", fmt.Sprintf("unknown location %q", row.ToLocation))
			continue
		}
		variant, err := s.variants.FindByBarcode(ctx, row.Barcode)
		if err != nil {
			result.fail(rowNum, "barcode", fmt.Sprintf("unknown barcode %q", row.Barcode))
			continue
		}
		qty, err := decimal.NewFromString(row.Quantity)
		if err != nil || !qty.IsPositive() {
			result.fail(rowNum, "quantity", fmt.Sprintf("invalid quantity %q", row.Quantity))
			continue
		}
		if err := s.stock.Transfer(ctx, inventory.TransferStockRequest{
			FromLocationID: from.ID,
			ToLocationID:   to.ID,
			VariantID:      variant.ID,
			Quantity:       qty,
		}); err != nil {
			result.fail(rowNum, "", err.Error())
			continue
		}
		result.ImportedRows++
	}
	s.logger.Info("transfer import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("failed", result.ErrorRows))
	return result, nil
}

func firstFailedField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

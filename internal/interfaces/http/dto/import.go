package dto

import (
	"github.com/retailcore/backend/internal/application/importer"
)

// SaleImportLine is one barcode/quantity/price entry of an imported sale
type SaleImportLine struct {
	Barcode   string `json:"barcode"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// SaleImportRow is one spreadsheet-exported sale invoice. Rows carry names
// and barcodes; the import service resolves them to ids.
type SaleImportRow struct {
	Date          string           `json:"date"`
	CustomerName  string           `json:"customer_name"`
	LocationName  string           `json:"location_name"`
	SafeName      string           `json:"safe_name"`
	PaymentMethod string           `json:"payment_method"`
	Paid          string           `json:"paid"`
	Discount      string           `json:"discount"`
	Notes         string           `json:"notes"`
	Lines         []SaleImportLine `json:"lines"`
}

// VoucherImportRow is one exported manual receipt or payment
type VoucherImportRow struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	SafeName    string `json:"safe_name"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// TransferImportRow is one exported stock movement between two named locations
type TransferImportRow struct {
	Date         string `json:"date"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Barcode      string `json:"barcode"`
	Quantity     string `json:"quantity"`
}

// ImportSalesRequest carries a batch of exported sale rows
type ImportSalesRequest struct {
	Rows []SaleImportRow `json:"rows" binding:"required,min=1"`
}

// ImportVouchersRequest carries a batch of exported voucher rows
type ImportVouchersRequest struct {
	Rows []VoucherImportRow `json:"rows" binding:"required,min=1"`
}

// ImportTransfersRequest carries a batch of exported stock transfer rows
type ImportTransfersRequest struct {
	Rows []TransferImportRow `json:"rows" binding:"required,min=1"`
}

// ToImporterRows converts the transport rows to import service rows
func (r ImportSalesRequest) ToImporterRows() []importer.SaleImportRow {
	rows := make([]importer.SaleImportRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		lines := make([]importer.SaleImportLine, 0, len(row.Lines))
		for _, l := range row.Lines {
			lines = append(lines, importer.SaleImportLine{
				Barcode:   l.Barcode,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			})
		}
		rows = append(rows, importer.SaleImportRow{
			Date:          row.Date,
			CustomerName:  row.CustomerName,
			LocationName:  row.LocationName,
			SafeName:      row.SafeName,
			PaymentMethod: row.PaymentMethod,
			Paid:          row.Paid,
			Discount:      row.Discount,
			Notes:         row.Notes,
			Lines:         lines,
		})
	}
	return rows
}

// ToImporterRows converts the transport rows to import service rows
func (r ImportVouchersRequest) ToImporterRows() []importer.VoucherImportRow {
	rows := make([]importer.VoucherImportRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, importer.VoucherImportRow{
			Date:        row.Date,
			Type:        row.Type,
			SafeName:    row.SafeName,
			Amount:      row.Amount,
			Description: row.Description,
		})
	}
	return rows
}

// ToImporterRows converts the transport rows to import service rows
func (r ImportTransfersRequest) ToImporterRows() []importer.TransferImportRow {
	rows := make([]importer.TransferImportRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, importer.TransferImportRow{
			Date:         row.Date,
			FromLocation: row.FromLocation,
			ToLocation:   row.ToLocation,
			Barcode:      row.Barcode,
			Quantity:     row.Quantity,
		})
	}
	return rows
}

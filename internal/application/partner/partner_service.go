package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailcore/backend/internal/domain/partner"
	"github.com/retailcore/backend/internal/domain/shared"
)

// CustomerReferenceChecker reports whether any invoice or voucher references
// a customer.
type CustomerReferenceChecker interface {
	ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)
}

// SupplierReferenceChecker reports whether any purchase references a supplier.
type SupplierReferenceChecker interface {
	ExistsForSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error)
}

// PartnerService handles customer and supplier administration
type PartnerService struct {
	customers    partner.CustomerRepository
	suppliers    partner.SupplierRepository
	customerRefs CustomerReferenceChecker
	supplierRefs SupplierReferenceChecker
	logger       *zap.Logger
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	customers partner.CustomerRepository,
	suppliers partner.SupplierRepository,
	customerRefs CustomerReferenceChecker,
	supplierRefs SupplierReferenceChecker,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		customers:    customers,
		suppliers:    suppliers,
		customerRefs: customerRefs,
		supplierRefs: supplierRefs,
		logger:       logger,
	}
}

// CreateCustomer creates a new customer
func (s *PartnerService) CreateCustomer(ctx context.Context, name, phone string) (*partner.Customer, error) {
	if existing, err := s.customers.FindByName(ctx, name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}
	customer, err := partner.NewCustomer(name, phone)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.logger.Info("customer created", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

// UpdateCustomer changes a customer's contact details
func (s *PartnerService) UpdateCustomer(ctx context.Context, customerID uuid.UUID, name, phone, notes string) (*partner.Customer, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(name, phone, notes); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer unless sales history references them
func (s *PartnerService) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return err
	}
	if s.customerRefs != nil {
		used, err := s.customerRefs.ExistsForCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if used {
			return shared.ErrInUse
		}
	}
	return s.customers.Delete(ctx, customerID)
}

// ListCustomers retrieves customers matching the filter
func (s *PartnerService) ListCustomers(ctx context.Context, filter partner.PartnerFilter) ([]partner.Customer, error) {
	return s.customers.FindAll(ctx, filter)
}

// CreateSupplier creates a new supplier
func (s *PartnerService) CreateSupplier(ctx context.Context, name, phone string) (*partner.Supplier, error) {
	if existing, err := s.suppliers.FindByName(ctx, name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}
	supplier, err := partner.NewSupplier(name, phone)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID.String()))
	return supplier, nil
}

// UpdateSupplier changes a supplier's contact details
func (s *PartnerService) UpdateSupplier(ctx context.Context, supplierID uuid.UUID, name, phone, notes string) (*partner.Supplier, error) {
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(name, phone, notes); err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier unless purchase history references them
func (s *PartnerService) DeleteSupplier(ctx context.Context, supplierID uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return err
	}
	if s.supplierRefs != nil {
		used, err := s.supplierRefs.ExistsForSupplier(ctx, supplierID)
		if err != nil {
			return err
		}
		if used {
			return shared.ErrInUse
		}
	}
	return s.suppliers.Delete(ctx, supplierID)
}

// ListSuppliers retrieves suppliers matching the filter
func (s *PartnerService) ListSuppliers(ctx context.Context, filter partner.PartnerFilter) ([]partner.Supplier, error) {
	return s.suppliers.FindAll(ctx, filter)
}

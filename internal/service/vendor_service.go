package service

import (
	"context"
	"strings"
	"time"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
)

// VendorService manages vendor records
type VendorService struct {
	vendors VendorStore
}

// NewVendorService creates a new vendor service
func NewVendorService(vendors VendorStore) *VendorService {
	return &VendorService{vendors: vendors}
}

// Create inserts a new vendor after validating name and type
func (s *VendorService) Create(ctx context.Context, name string, vendorType model.VendorType) (*model.Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.CodeMissingInput, "vendor name is required")
	}
	if !vendorType.Valid() {
		return nil, apperr.Newf(apperr.CodeInvalidEnumValue, "invalid vendor type %q", vendorType)
	}

	exists, err := s.vendors.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Newf(apperr.CodeExistingVendor, "vendor %q already exists", name)
	}

	vendor := &model.Vendor{
		ID:   model.NewID(),
		Name: name,
		Type: vendorType,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// Get retrieves a vendor by identifier
func (s *VendorService) Get(ctx context.Context, id string) (*model.Vendor, error) {
	if id == "" {
		return nil, apperr.New(apperr.CodeMissingInput, "vendor id is required")
	}
	return s.vendors.GetByID(ctx, id)
}

// All returns every vendor, ascending by creation time. Used by the flat
// REST surface.
func (s *VendorService) All(ctx context.Context) ([]model.Vendor, error) {
	return s.vendors.Window(ctx, nil)
}

// List returns a vendor connection for the given pagination arguments
func (s *VendorService) List(ctx context.Context, args pagination.Args) (*pagination.Connection[model.Vendor], error) {
	first, since, err := args.Resolve()
	if err != nil {
		return nil, err
	}

	window, err := s.vendors.Window(ctx, since)
	if err != nil {
		return nil, err
	}

	conn := pagination.Connect(window, first, func(v model.Vendor) time.Time { return v.CreatedAt })
	return &conn, nil
}

// Update applies changes to an existing vendor
func (s *VendorService) Update(ctx context.Context, id, name string, vendorType model.VendorType) (*model.Vendor, error) {
	vendor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		vendor.Name = name
	}
	if vendorType != "" {
		if !vendorType.Valid() {
			return nil, apperr.Newf(apperr.CodeInvalidEnumValue, "invalid vendor type %q", vendorType)
		}
		vendor.Type = vendorType
	}

	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// Delete removes a vendor, reporting whether it existed
func (s *VendorService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, apperr.New(apperr.CodeMissingInput, "vendor id is required")
	}
	return s.vendors.Delete(ctx, id)
}

// Package catalog mantiene las entidades de apoyo del negocio: productos,
// proveedores, categorías y gastos. CRUD plano; la consistencia de stock y
// deuda vive en los casos de uso transaccionales.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// UseCase casos de uso de catálogo.
type UseCase struct {
	products   repository.ProductRepository
	suppliers  repository.SupplierRepository
	categories repository.CategoryRepository
	expenses   repository.ExpenseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository, suppliers repository.SupplierRepository, categories repository.CategoryRepository, expenses repository.ExpenseRepository) *UseCase {
	return &UseCase{products: products, suppliers: suppliers, categories: categories, expenses: expenses}
}

// CreateProduct da de alta un producto con stock cero. El stock inicial
// entra por una compra, nunca por el alta.
func (uc *UseCase) CreateProduct(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.LessThan(decimal.Zero) || in.SalePrice.LessThan(decimal.Zero) || in.MinStockAlert < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CategoryID:    in.CategoryID,
		SKU:           in.SKU,
		Name:          in.Name,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Quantity:      0,
		MinStockAlert: in.MinStockAlert,
		ExpiryDate:    in.ExpiryDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct obtiene un producto por id.
func (uc *UseCase) GetProduct(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(p), nil
}

// ListProducts lista productos de la empresa.
func (uc *UseCase) ListProducts(ctx context.Context, companyID string, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.products.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// CreateSupplier da de alta un proveedor con deuda cero.
func (uc *UseCase) CreateSupplier(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetSupplier obtiene un proveedor por id.
func (uc *UseCase) GetSupplier(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toSupplierResponse(s), nil
}

// ListSuppliers lista proveedores de la empresa.
func (uc *UseCase) ListSuppliers(ctx context.Context, companyID string, limit, offset int) ([]*dto.SupplierResponse, error) {
	suppliers, err := uc.suppliers.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// CreateCategory da de alta una categoría.
func (uc *UseCase) CreateCategory(ctx context.Context, companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

// ListCategories lista las categorías de la empresa.
func (uc *UseCase) ListCategories(ctx context.Context, companyID string) ([]*dto.CategoryResponse, error) {
	categories, err := uc.categories.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

// CreateExpense registra un gasto operativo.
func (uc *UseCase) CreateExpense(ctx context.Context, companyID, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Description == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        date,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if err := uc.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// ListExpenses lista gastos del período.
func (uc *UseCase) ListExpenses(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]*dto.ExpenseResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	expenses, err := uc.expenses.ListByRange(ctx, companyID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		SKU:           p.SKU,
		Name:          p.Name,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Quantity:      p.Quantity,
		MinStockAlert: p.MinStockAlert,
		ExpiryDate:    p.ExpiryDate,
		CreatedAt:     p.CreatedAt,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
		Balance: s.Balance,
	}
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
	}
}

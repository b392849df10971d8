package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.MovementRepository = (*movementRepo)(nil)
	_ repository.SaleRepository     = (*saleRepo)(nil)
	_ repository.PurchaseRepository = (*purchaseRepo)(nil)
	_ repository.SupplierRepository = (*supplierRepo)(nil)
	_ repository.ReturnRepository   = (*returnRepo)(nil)
	_ repository.SequenceRepository = (*sequenceRepo)(nil)
	_ repository.ExpenseRepository  = (*expenseRepo)(nil)
	_ repository.ReportRepository   = (*reportRepo)(nil)
	_ repository.UserRepository     = (*userRepo)(nil)
	_ repository.CategoryRepository = (*categoryRepo)(nil)
)

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct {
	s    *Store
	inTx bool
}

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	defer r.s.enter(r.inTx)()
	for _, existing := range r.s.products {
		if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *entity.Product) error {
	defer r.s.enter(r.inTx)()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	defer r.s.enter(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate en memoria equivale a GetByID: el lock global de Run ya
// excluye a cualquier otra transacción.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, at time.Time) error {
	defer r.s.enter(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = at
	r.s.products[id] = p
	return nil
}

func (r *productRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *productRepo) ListLowStock(ctx context.Context, companyID string) ([]*entity.Product, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.BelowMinStock() {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct {
	s    *Store
	inTx bool
}

func (r *movementRepo) Create(ctx context.Context, m *entity.Movement) error {
	defer r.s.enter(r.inTx)()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.Movement
	// Inserción cronológica: recorrer al revés da el orden más reciente primero.
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.CompanyID != "" && m.CompanyID != f.CompanyID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.RefKind != "" && m.RefKind != f.RefKind {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *movementRepo) SumSignedByProduct(ctx context.Context, productID string) (int64, error) {
	defer r.s.enter(r.inTx)()
	var sum int64
	for i := range r.s.movements {
		if r.s.movements[i].ProductID == productID {
			sum += r.s.movements[i].Signed()
		}
	}
	return sum, nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct {
	s    *Store
	inTx bool
}

func (r *saleRepo) Create(ctx context.Context, s *entity.Sale) error {
	defer r.s.enter(r.inTx)()
	for _, existing := range r.s.sales {
		if existing.CompanyID == s.CompanyID && existing.InvoiceNumber == s.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.sales[s.ID] = *s
	return nil
}

func (r *saleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	defer r.s.enter(r.inTx)()
	r.s.saleItems[it.SaleID] = append(r.s.saleItems[it.SaleID], *it)
	return nil
}

func (r *saleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	defer r.s.enter(r.inTx)()
	s, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	defer r.s.enter(r.inTx)()
	items := r.s.saleItems[saleID]
	out := make([]*entity.SaleItem, 0, len(items))
	for i := range items {
		cp := items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *saleRepo) UpdateStatus(ctx context.Context, s *entity.Sale) error {
	defer r.s.enter(r.inTx)()
	stored, ok := r.s.sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = s.Status
	stored.UpdatedAt = s.UpdatedAt
	r.s.sales[s.ID] = stored
	return nil
}

func (r *saleRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if s.CompanyID == companyID {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

// ── Compras ──────────────────────────────────────────────────────────────────

type purchaseRepo struct {
	s    *Store
	inTx bool
}

func (r *purchaseRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	defer r.s.enter(r.inTx)()
	for _, existing := range r.s.purchases {
		if existing.CompanyID == inv.CompanyID && existing.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.purchases[inv.ID] = *inv
	return nil
}

func (r *purchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	defer r.s.enter(r.inTx)()
	r.s.purchaseItems[it.InvoiceID] = append(r.s.purchaseItems[it.InvoiceID], *it)
	return nil
}

func (r *purchaseRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	defer r.s.enter(r.inTx)()
	inv, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *purchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.PurchaseItem, error) {
	defer r.s.enter(r.inTx)()
	items := r.s.purchaseItems[invoiceID]
	out := make([]*entity.PurchaseItem, 0, len(items))
	for i := range items {
		cp := items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *purchaseRepo) UpdatePayment(ctx context.Context, inv *entity.PurchaseInvoice) error {
	defer r.s.enter(r.inTx)()
	stored, ok := r.s.purchases[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.PaidAmount = inv.PaidAmount
	stored.Balance = inv.Balance
	stored.UpdatedAt = inv.UpdatedAt
	r.s.purchases[inv.ID] = stored
	return nil
}

func (r *purchaseRepo) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.PurchaseInvoice
	for _, inv := range r.s.purchases {
		if inv.SupplierID == supplierID {
			cp := inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

// ── Proveedores ──────────────────────────────────────────────────────────────

type supplierRepo struct {
	s    *Store
	inTx bool
}

func (r *supplierRepo) Create(ctx context.Context, sup *entity.Supplier) error {
	defer r.s.enter(r.inTx)()
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *supplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	defer r.s.enter(r.inTx)()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *supplierRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.GetByID(ctx, id)
}

func (r *supplierRepo) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal, at time.Time) error {
	defer r.s.enter(r.inTx)()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	sup.Balance = sup.Balance.Add(delta)
	sup.UpdatedAt = at
	r.s.suppliers[id] = sup
	return nil
}

func (r *supplierRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.Supplier
	for _, sup := range r.s.suppliers {
		if sup.CompanyID == companyID {
			cp := sup
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// ── Devoluciones ─────────────────────────────────────────────────────────────

type returnRepo struct {
	s    *Store
	inTx bool
}

func (r *returnRepo) Create(ctx context.Context, ret *entity.ProductReturn) error {
	defer r.s.enter(r.inTx)()
	r.s.returns[ret.ID] = *ret
	return nil
}

func (r *returnRepo) GetByID(ctx context.Context, id string) (*entity.ProductReturn, error) {
	defer r.s.enter(r.inTx)()
	ret, ok := r.s.returns[id]
	if !ok {
		return nil, nil
	}
	return &ret, nil
}

func (r *returnRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductReturn, error) {
	return r.GetByID(ctx, id)
}

func (r *returnRepo) UpdateStatus(ctx context.Context, ret *entity.ProductReturn) error {
	defer r.s.enter(r.inTx)()
	stored, ok := r.s.returns[ret.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = ret.Status
	stored.DecidedBy = ret.DecidedBy
	stored.DecidedAt = ret.DecidedAt
	r.s.returns[ret.ID] = stored
	return nil
}

func (r *returnRepo) List(ctx context.Context, companyID string, status entity.ReturnStatus, limit, offset int) ([]*entity.ProductReturn, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.ProductReturn
	for _, ret := range r.s.returns {
		if ret.CompanyID != companyID {
			continue
		}
		if status != "" && ret.Status != status {
			continue
		}
		cp := ret
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

// ── Consecutivos ─────────────────────────────────────────────────────────────

type sequenceRepo struct {
	s    *Store
	inTx bool
}

func (r *sequenceRepo) Next(ctx context.Context, companyID, kind string) (int64, error) {
	defer r.s.enter(r.inTx)()
	key := companyID + "|" + kind
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}

// ── Gastos ───────────────────────────────────────────────────────────────────

type expenseRepo struct {
	s    *Store
	inTx bool
}

func (r *expenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	defer r.s.enter(r.inTx)()
	r.s.expenses = append(r.s.expenses, *e)
	return nil
}

func (r *expenseRepo) ListByRange(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]*entity.Expense, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.Expense
	for i := len(r.s.expenses) - 1; i >= 0; i-- {
		e := r.s.expenses[i]
		if e.CompanyID == companyID && inRange(e.Date, from, to) {
			cp := e
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *expenseRepo) SumByRange(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	defer r.s.enter(r.inTx)()
	sum := decimal.Zero
	for i := range r.s.expenses {
		e := r.s.expenses[i]
		if e.CompanyID == companyID && inRange(e.Date, from, to) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// ── Reportes ─────────────────────────────────────────────────────────────────

type reportRepo struct {
	s    *Store
	inTx bool
}

func (r *reportRepo) Revenue(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	defer r.s.enter(r.inTx)()
	sum := decimal.Zero
	for _, s := range r.s.sales {
		if s.CompanyID == companyID && s.Status == entity.SaleCompleted && inRange(s.CreatedAt, from, to) {
			sum = sum.Add(s.Total)
		}
	}
	return sum, nil
}

func (r *reportRepo) CostOfGoods(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	defer r.s.enter(r.inTx)()
	sum := decimal.Zero
	for _, s := range r.s.sales {
		if s.CompanyID != companyID || s.Status != entity.SaleCompleted || !inRange(s.CreatedAt, from, to) {
			continue
		}
		for _, it := range r.s.saleItems[s.ID] {
			p, ok := r.s.products[it.ProductID]
			if !ok {
				continue
			}
			// Costo al precio de compra vigente, no al de la fecha de venta.
			sum = sum.Add(p.PurchasePrice.Mul(decimal.NewFromInt(it.Quantity)))
		}
	}
	return sum, nil
}

func (r *reportRepo) ReturnsDeduction(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	defer r.s.enter(r.inTx)()
	sum := decimal.Zero
	for _, ret := range r.s.returns {
		if ret.CompanyID != companyID || ret.Status != entity.ReturnApproved || ret.DecidedAt == nil {
			continue
		}
		if inRange(*ret.DecidedAt, from, to) {
			sum = sum.Add(ret.Amount)
		}
	}
	return sum, nil
}

func (r *reportRepo) SupplierBalanceFromInvoices(ctx context.Context, supplierID string) (decimal.Decimal, error) {
	defer r.s.enter(r.inTx)()
	sum := decimal.Zero
	for _, inv := range r.s.purchases {
		if inv.SupplierID == supplierID {
			sum = sum.Add(inv.Balance)
		}
	}
	return sum, nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type userRepo struct {
	s    *Store
	inTx bool
}

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	defer r.s.enter(r.inTx)()
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	defer r.s.enter(r.inTx)()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	defer r.s.enter(r.inTx)()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) && u.CompanyID == companyID {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

// ── Categorías ───────────────────────────────────────────────────────────────

type categoryRepo struct {
	s    *Store
	inTx bool
}

func (r *categoryRepo) Create(ctx context.Context, c *entity.Category) error {
	defer r.s.enter(r.inTx)()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	defer r.s.enter(r.inTx)()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context, companyID string) ([]*entity.Category, error) {
	defer r.s.enter(r.inTx)()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.CompanyID == companyID {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// Package memory implementa los repositorios sobre mapas en memoria, para
// modo demo/desarrollo y para los tests de casos de uso. Run simula la
// atomicidad de una transacción tomando un snapshot del estado y
// restaurándolo si el callback falla: nada queda a medias.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/comercio-api/internal/application/ledger"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// Store estado en memoria. Los mapas guardan valores (no punteros) para que
// el snapshot sea una copia consistente.
type Store struct {
	mu            sync.Mutex
	products      map[string]entity.Product
	movements     []entity.Movement
	sales         map[string]entity.Sale
	saleItems     map[string][]entity.SaleItem
	purchases     map[string]entity.PurchaseInvoice
	purchaseItems map[string][]entity.PurchaseItem
	suppliers     map[string]entity.Supplier
	returns       map[string]entity.ProductReturn
	expenses      []entity.Expense
	sequences     map[string]int64
	users         map[string]entity.User
	categories    map[string]entity.Category
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:      map[string]entity.Product{},
		sales:         map[string]entity.Sale{},
		saleItems:     map[string][]entity.SaleItem{},
		purchases:     map[string]entity.PurchaseInvoice{},
		purchaseItems: map[string][]entity.PurchaseItem{},
		suppliers:     map[string]entity.Supplier{},
		returns:       map[string]entity.ProductReturn{},
		sequences:     map[string]int64{},
		users:         map[string]entity.User{},
		categories:    map[string]entity.Category{},
	}
}

var _ ledger.TxRunner = (*Store)(nil)

// Run ejecuta fn con repos "en transacción": si fn falla se restaura el
// snapshot previo, emulando el rollback de PostgreSQL. El lock global hace
// las veces de los bloqueos de fila.
func (s *Store) Run(ctx context.Context, fn func(r ledger.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	err := fn(ledger.Repos{
		Products:  &productRepo{s: s, inTx: true},
		Movements: &movementRepo{s: s, inTx: true},
		Sales:     &saleRepo{s: s, inTx: true},
		Purchases: &purchaseRepo{s: s, inTx: true},
		Suppliers: &supplierRepo{s: s, inTx: true},
		Returns:   &returnRepo{s: s, inTx: true},
		Sequences: &sequenceRepo{s: s, inTx: true},
	})
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Accesores de repositorios para uso fuera de transacción (lecturas y CRUD
// plano); cada método toma el lock por su cuenta.
func (s *Store) Products() repository.ProductRepository    { return &productRepo{s: s} }
func (s *Store) Movements() repository.MovementRepository  { return &movementRepo{s: s} }
func (s *Store) Sales() repository.SaleRepository          { return &saleRepo{s: s} }
func (s *Store) Purchases() repository.PurchaseRepository  { return &purchaseRepo{s: s} }
func (s *Store) Suppliers() repository.SupplierRepository  { return &supplierRepo{s: s} }
func (s *Store) Returns() repository.ReturnRepository      { return &returnRepo{s: s} }
func (s *Store) Expenses() repository.ExpenseRepository    { return &expenseRepo{s: s} }
func (s *Store) Reports() repository.ReportRepository      { return &reportRepo{s: s} }
func (s *Store) Users() repository.UserRepository          { return &userRepo{s: s} }
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

type snapshotState struct {
	products      map[string]entity.Product
	movements     []entity.Movement
	sales         map[string]entity.Sale
	saleItems     map[string][]entity.SaleItem
	purchases     map[string]entity.PurchaseInvoice
	purchaseItems map[string][]entity.PurchaseItem
	suppliers     map[string]entity.Supplier
	returns       map[string]entity.ProductReturn
	expenses      []entity.Expense
	sequences     map[string]int64
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSliceMap[V any](m map[string][]V) map[string][]V {
	out := make(map[string][]V, len(m))
	for k, v := range m {
		out[k] = append([]V(nil), v...)
	}
	return out
}

// snapshot copia el estado que mutan las transacciones (usuarios y
// categorías no participan de ninguna tx del núcleo).
func (s *Store) snapshot() snapshotState {
	return snapshotState{
		products:      cloneMap(s.products),
		movements:     append([]entity.Movement(nil), s.movements...),
		sales:         cloneMap(s.sales),
		saleItems:     cloneSliceMap(s.saleItems),
		purchases:     cloneMap(s.purchases),
		purchaseItems: cloneSliceMap(s.purchaseItems),
		suppliers:     cloneMap(s.suppliers),
		returns:       cloneMap(s.returns),
		expenses:      append([]entity.Expense(nil), s.expenses...),
		sequences:     cloneMap(s.sequences),
	}
}

func (s *Store) restore(snap snapshotState) {
	s.products = snap.products
	s.movements = snap.movements
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.purchases = snap.purchases
	s.purchaseItems = snap.purchaseItems
	s.suppliers = snap.suppliers
	s.returns = snap.returns
	s.expenses = snap.expenses
	s.sequences = snap.sequences
}

// enter toma el lock salvo que el repo esté dentro de Run (que ya lo tiene).
// Devuelve la función de salida a diferir.
func (s *Store) enter(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

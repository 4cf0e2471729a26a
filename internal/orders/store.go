package orders

import "context"

// Store opens a unit of work against the relational store. The whole
// add-item read/write sequence runs inside one transaction: fn returning
// an error rolls everything back, nil commits.
type Store interface {
	InTx(ctx context.Context, fn func(tx StoreTx) error) error
}

// StoreTx is the set of reads and writes the order service needs within
// a transaction. Absent rows are reported as nil without error.
type StoreTx interface {
	OrderByID(ctx context.Context, id int64) (*Order, error)

	// ProductForUpdate locks the product row until the transaction ends,
	// so two callers adding the same product serialize on the stock check.
	ProductForUpdate(ctx context.Context, id int64) (*Product, error)

	OrderItemByOrderProduct(ctx context.Context, orderID, productID int64) (*OrderItem, error)
	InsertOrderItem(ctx context.Context, item *OrderItem) (*OrderItem, error)
	UpdateOrderItem(ctx context.Context, item *OrderItem) (*OrderItem, error)
}

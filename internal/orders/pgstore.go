package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on a pgx connection pool.
type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) InTx(ctx context.Context, fn func(tx StoreTx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) OrderByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := t.tx.QueryRow(ctx, `
		SELECT id, customer_id, order_number,
		       subtotal, discount_amount, tax_amount, shipping_amount, total_amount, paid_amount,
		       COALESCE(delivery_address,''), COALESCE(city,''), COALESCE(zipcode,''),
		       COALESCE(recipient_name,''), COALESCE(phone,''), COALESCE(email,''),
		       COALESCE(tracking_number,''),
		       order_date, created_at, updated_at,
		       status_id, priority_id, payment_method_id, payment_status_id, delivery_type_id, source_id
		FROM orders WHERE id=$1`, id).Scan(
		&o.ID, &o.CustomerID, &o.OrderNumber,
		&o.Subtotal, &o.DiscountAmount, &o.TaxAmount, &o.ShippingAmount, &o.TotalAmount, &o.PaidAmount,
		&o.DeliveryAddress, &o.City, &o.Zipcode,
		&o.RecipientName, &o.Phone, &o.Email,
		&o.TrackingNumber,
		&o.OrderDate, &o.CreatedAt, &o.UpdatedAt,
		&o.StatusID, &o.PriorityID, &o.PaymentMethodID, &o.PaymentStatusID, &o.DeliveryTypeID, &o.SourceID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (t *pgTx) ProductForUpdate(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := t.tx.QueryRow(ctx, `
		SELECT id, category_id, name, quantity, price
		FROM products WHERE id=$1
		FOR UPDATE`, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Quantity, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *pgTx) OrderItemByOrderProduct(ctx context.Context, orderID, productID int64) (*OrderItem, error) {
	var it OrderItem
	err := t.tx.QueryRow(ctx, `
		SELECT id, order_id, product_id, COALESCE(product_name,''), quantity, unit_price,
		       discount_percent, discount_amount, total_price, COALESCE(variant,'')
		FROM order_items WHERE order_id=$1 AND product_id=$2`, orderID, productID).Scan(
		&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
		&it.DiscountPercent, &it.DiscountAmount, &it.TotalPrice, &it.Variant,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (t *pgTx) InsertOrderItem(ctx context.Context, item *OrderItem) (*OrderItem, error) {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO order_items(order_id, product_id, product_name, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice,
	).Scan(&item.ID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (t *pgTx) UpdateOrderItem(ctx context.Context, item *OrderItem) (*OrderItem, error) {
	ct, err := t.tx.Exec(ctx, `
		UPDATE order_items SET quantity=$2, total_price=$3 WHERE id=$1`,
		item.ID, item.Quantity, item.TotalPrice,
	)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() != 1 {
		return nil, &NotFoundError{Entity: "order item", ID: item.ID}
	}
	return item, nil
}

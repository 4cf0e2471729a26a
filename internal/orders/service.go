package orders

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service implements the add-item business operation.
type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// AddItem adds quantity of a product to an order. If the order already
// holds a line for the product, the line quantity grows and its total is
// recomputed against the unit price captured at first addition; otherwise
// a new line is created at the product's current price. The cumulative
// quantity (existing line + requested) must not exceed the product's
// available stock.
func (s *Service) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*OrderItem, error) {
	log := s.log.With().
		Int64("order_id", orderID).
		Int64("product_id", productID).
		Int("quantity", quantity).
		Logger()
	log.Info().Msg("adding item to order")

	var result *OrderItem
	err := s.store.InTx(ctx, func(tx StoreTx) error {
		order, err := tx.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			log.Warn().Msg("order not found")
			return &NotFoundError{Entity: "order", ID: orderID}
		}
		log.Debug().Str("order_number", order.OrderNumber).Msg("order found")

		product, err := tx.ProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			log.Warn().Msg("product not found")
			return &NotFoundError{Entity: "product", ID: productID}
		}
		log.Debug().
			Str("product_name", product.Name).
			Int("available", product.Quantity).
			Stringer("price", product.Price).
			Msg("product found")

		existing, err := tx.OrderItemByOrderProduct(ctx, orderID, productID)
		if err != nil {
			return err
		}

		current := 0
		if existing != nil {
			current = existing.Quantity
			log.Debug().Int("current_quantity", current).Msg("product already in order")
		}
		required := current + quantity

		if product.Quantity < required {
			log.Warn().
				Int("available", product.Quantity).
				Int("required", required).
				Msg("insufficient stock")
			return &InsufficientStockError{
				ProductID: productID,
				Available: product.Quantity,
				Required:  required,
			}
		}

		if existing != nil {
			existing.Quantity += quantity
			existing.TotalPrice = existing.UnitPrice.Mul(decimal.NewFromInt(int64(existing.Quantity)))
			result, err = tx.UpdateOrderItem(ctx, existing)
			if err != nil {
				return err
			}
			log.Info().
				Int("old_quantity", current).
				Int("new_quantity", result.Quantity).
				Msg("item quantity increased")
			return nil
		}

		item := &OrderItem{
			OrderID:     orderID,
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price,
			TotalPrice:  product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		}
		result, err = tx.InsertOrderItem(ctx, item)
		if err != nil {
			return err
		}
		log.Info().
			Int64("order_item_id", result.ID).
			Stringer("total_price", result.TotalPrice).
			Msg("new order item created")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

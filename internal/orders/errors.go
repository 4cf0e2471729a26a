package orders

import "fmt"

// NotFoundError reports a referenced entity that does not exist.
// Entity is "order" or "product".
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// InsufficientStockError reports a cumulative requested quantity that
// exceeds the product's available stock.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Required  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, required %d",
		e.ProductID, e.Available, e.Required)
}

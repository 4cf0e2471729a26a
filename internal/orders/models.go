package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lookup is a static code/name row referenced by orders (statuses,
// priorities, payment methods, payment statuses, sources).
type Lookup struct {
	ID   int64
	Code int
	Name string
}

// DeliveryType is a lookup that additionally says whether the delivery
// requires an address (courier vs pickup point).
type DeliveryType struct {
	ID         int64
	Code       int
	Name       string
	HasAddress bool
}

type Category struct {
	ID        int64
	Name      string
	ParentID  *int64
	UpdatedAt time.Time
}

type Product struct {
	ID         int64
	CategoryID *int64
	Name       string
	Quantity   int // available stock
	Price      decimal.Decimal
}

type Client struct {
	ID      int64
	Name    string
	Address string
}

type Order struct {
	ID              int64
	CustomerID      *int64
	OrderNumber     string
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	DeliveryAddress string
	City            string
	Zipcode         string
	RecipientName   string
	Phone           string
	Email           string
	TrackingNumber  string
	OrderDate       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	StatusID        *int64
	PriorityID      *int64
	PaymentMethodID *int64
	PaymentStatusID *int64
	DeliveryTypeID  *int64
	SourceID        *int64
}

// OrderItem is one line of an order. At most one line exists per
// (order, product) pair; the service enforces that by find-or-create,
// the schema carries no uniqueness constraint.
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	ProductName     string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent int
	DiscountAmount  decimal.Decimal
	TotalPrice      decimal.Decimal
	Variant         string
}

type Payment struct {
	ID              int64
	OrderID         int64
	PaymentMethodID *int64
	TransactionID   string
	Amount          decimal.Decimal
	Status          string
	CreatedAt       time.Time
}

type OrderStatusHistory struct {
	ID        int64
	OrderID   int64
	StatusID  *int64
	ChangedBy string
	Notes     string
	ChangedAt time.Time
}

type OrderComment struct {
	ID          int64
	OrderID     int64
	AuthorName  string
	CommentText string
	IsInternal  bool
	CreatedAt   time.Time
}

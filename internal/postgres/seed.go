package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adminClientName = "Administrator"

type lookupRow struct {
	code int
	name string
}

var lookupSeed = map[string][]lookupRow{
	"order_statuses": {
		{1, "New"}, {2, "Processing"}, {3, "Shipped"}, {4, "Delivered"}, {5, "Cancelled"},
	},
	"order_priorities": {
		{1, "Low"}, {2, "Normal"}, {3, "High"}, {4, "Urgent"},
	},
	"payment_methods": {
		{1, "Card"}, {2, "Cash"}, {3, "Bank transfer"}, {4, "Online wallet"},
	},
	"payment_statuses": {
		{1, "Pending"}, {2, "Paid"}, {3, "Refunded"}, {4, "Failed"},
	},
	"order_sources": {
		{1, "Website"}, {2, "Mobile app"}, {3, "Phone"}, {4, "Marketplace"},
	},
}

var deliveryTypeSeed = []struct {
	code       int
	name       string
	hasAddress bool
}{
	{1, "Courier", true},
	{2, "Pickup point", false},
	{3, "Post", true},
}

// Seed populates the lookup tables and the administrator client.
// Safe to run repeatedly.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	for table, rows := range lookupSeed {
		for _, row := range rows {
			_, err := db.Exec(ctx,
				`INSERT INTO `+table+`(code, name) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
				row.code, row.name)
			if err != nil {
				return err
			}
		}
	}
	for _, dt := range deliveryTypeSeed {
		_, err := db.Exec(ctx, `
			INSERT INTO delivery_types(code, name, has_address)
			VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING`,
			dt.code, dt.name, dt.hasAddress)
		if err != nil {
			return err
		}
	}
	return seedAdminClient(ctx, db)
}

func seedAdminClient(ctx context.Context, db *pgxpool.Pool) error {
	var id int64
	err := db.QueryRow(ctx, `SELECT id FROM clients WHERE name=$1`, adminClientName).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	_, err = db.Exec(ctx,
		`INSERT INTO clients(name, address) VALUES ($1, $2)`,
		adminClientName, "system user")
	return err
}

//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed reference IDs so e2e tests can address the seeded rows directly.
var (
	PropertyID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

	RoomTypeDeluxeID   = uuid.MustParse("22222222-2222-2222-2222-222222222201")
	RoomTypeStandardID = uuid.MustParse("22222222-2222-2222-2222-222222222202")

	RoomDeluxe101ID = uuid.MustParse("33333333-3333-3333-3333-333333333101")
	RoomDeluxe102ID = uuid.MustParse("33333333-3333-3333-3333-333333333102")
	RoomStandard201 = uuid.MustParse("33333333-3333-3333-3333-333333333201")

	PolicyFlexID = uuid.MustParse("44444444-4444-4444-4444-444444444401")

	RatePlanFlexID          = uuid.MustParse("55555555-5555-5555-5555-555555555501")
	RatePlanNonRefundableID = uuid.MustParse("55555555-5555-5555-5555-555555555502")
)

// The deluxe override night priced differently from the base rate. It sits
// a month out so booking flows against the real clock stay in the future.
var OverrideNight = func() time.Time {
	n := time.Now().UTC().AddDate(0, 0, 31)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}()

const (
	DeluxeBaseCents     = 15000
	DeluxeOverrideCents = 18000
	StandardBaseCents   = 9000
	OccupancyTaxPercent = 10
	ResortFeeCents      = 2500
)

// SeedReferenceData inserts the property, room types, rooms, rate plans,
// prices, taxes and cancellation policies the booking flows read. Inserts
// are idempotent so suites can reseed after truncation.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []struct {
		sql  string
		args []any
	}{
		{
			`INSERT INTO properties (id, name, timezone, currency) VALUES ($1, 'Harborview Hotel', 'UTC', 'USD')
			 ON CONFLICT (id) DO NOTHING`,
			[]any{PropertyID},
		},
		{
			`INSERT INTO room_types (id, property_id, code, name, max_adults, max_children, max_occupancy) VALUES
			    ($1, $3, 'DLX', 'Deluxe King', 2, 2, 4),
			    ($2, $3, 'STD', 'Standard Queen', 2, 1, 3)
			 ON CONFLICT (id) DO NOTHING`,
			[]any{RoomTypeDeluxeID, RoomTypeStandardID, PropertyID},
		},
		{
			`INSERT INTO rooms (id, property_id, room_type_id, room_number, is_active) VALUES
			    ($1, $4, $5, '101', true),
			    ($2, $4, $5, '102', true),
			    ($3, $4, $6, '201', true)
			 ON CONFLICT (id) DO NOTHING`,
			[]any{RoomDeluxe101ID, RoomDeluxe102ID, RoomStandard201, PropertyID, RoomTypeDeluxeID, RoomTypeStandardID},
		},
		{
			`INSERT INTO cancellation_policies (id, property_id, name, rules) VALUES
			    ($1, $2, 'Flexible', '{"windows":[{"days_before":7,"refund_percent":100},{"days_before":3,"refund_percent":50}],"after_check_in_percent":0}')
			 ON CONFLICT (id) DO NOTHING`,
			[]any{PolicyFlexID, PropertyID},
		},
		{
			`INSERT INTO rate_plans (id, property_id, code, name, refundable, cancellation_policy_id) VALUES
			    ($1, $3, 'FLEX', 'Flexible Rate', true, $4),
			    ($2, $3, 'NRF', 'Non-Refundable Rate', false, NULL)
			 ON CONFLICT (id) DO NOTHING`,
			[]any{RatePlanFlexID, RatePlanNonRefundableID, PropertyID, PolicyFlexID},
		},
		{
			`INSERT INTO rate_plan_base_prices (rate_plan_id, room_type_id, price_cents, currency) VALUES
			    ($1, $3, $5, 'USD'),
			    ($1, $4, $6, 'USD'),
			    ($2, $3, 12000, 'USD')
			 ON CONFLICT (rate_plan_id, room_type_id) DO NOTHING`,
			[]any{RatePlanFlexID, RatePlanNonRefundableID, RoomTypeDeluxeID, RoomTypeStandardID, DeluxeBaseCents, StandardBaseCents},
		},
		{
			`INSERT INTO rate_plan_prices (rate_plan_id, room_type_id, night, price_cents, currency) VALUES
			    ($1, $2, $3, $4, 'USD')
			 ON CONFLICT DO NOTHING`,
			[]any{RatePlanFlexID, RoomTypeDeluxeID, OverrideNight, DeluxeOverrideCents},
		},
		{
			`INSERT INTO tax_fees (property_id, name, kind, value, applies_to, per_night, active) VALUES
			    ($1, 'occupancy tax', 'percentage', $2, '*', false, true),
			    ($1, 'resort fee', 'flat', $3, '*', false, true)
			 ON CONFLICT DO NOTHING`,
			[]any{PropertyID, OccupancyTaxPercent, ResortFeeCents},
		},
	}

	for _, st := range statements {
		if _, err := pool.Exec(ctx, st.sql, st.args...); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}
	}
	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}

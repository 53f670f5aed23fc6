//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	passwordHash := "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestLocation(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	locationID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO locations (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", locationID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM locations WHERE name = $1", name).Scan(&locationID)
	}

	return locationID
}

func CreateTestStand(t *testing.T, db DBLike, locationID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	standID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO stands (id, location_id, name) VALUES ($1, $2, $3) ON CONFLICT (location_id, name) DO NOTHING",
		standID, locationID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM stands WHERE location_id = $1 AND name = $2", locationID, name).Scan(&standID)
	}

	return standID
}

func CreateTestBox(t *testing.T, db DBLike, standID uuid.UUID, model string, score int, dailyRateCents int64) uuid.UUID {
	t.Helper()

	boxID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO boxes (id, stand_id, model, status, score, daily_rate_cents) VALUES ($1, $2, $3, 'active', $4, $5)",
		boxID, standID, model, score, dailyRateCents)
	require.NoError(t, err)

	return boxID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	var locationID uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO locations (id, name) VALUES (gen_random_uuid(), 'Central')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id;
	`).Scan(&locationID)
	if err != nil {
		return err
	}

	var standID uuid.UUID
	err = pool.QueryRow(ctx, `
		INSERT INTO stands (id, location_id, name) VALUES (gen_random_uuid(), $1, 'Stand A')
		ON CONFLICT (location_id, name) DO UPDATE SET updated_at = now()
		RETURNING id;
	`, locationID).Scan(&standID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO boxes (id, stand_id, model, status, score, daily_rate_cents) VALUES
		    (gen_random_uuid(), $1, 'classic-320', 'active', 100, 12000),
		    (gen_random_uuid(), $1, 'classic-320', 'active', 80, 12000),
		    (gen_random_uuid(), $1, 'wide-510', 'active', 90, 18000);
	`, standID)
	return err
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

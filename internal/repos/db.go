package repos

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"buycycle/internal/domain"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

// DetectDriver picks the database driver from the DSN shape.
func DetectDriver(dsn string) Driver {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	driver := DetectDriver(dsn)
	db, err := sqlx.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// single writer; also keeps ":memory:" databases on one connection
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := seedCategories(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories(
  id   TEXT PRIMARY KEY,
  name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS users(
  id         TEXT PRIMARY KEY,
  email      TEXT NOT NULL UNIQUE,
  name       TEXT NOT NULL DEFAULT '',
  photo      TEXT NOT NULL DEFAULT '',
  role       TEXT NOT NULL,
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)`,
	`CREATE TABLE IF NOT EXISTS wishlist(
  user_email TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at TEXT NOT NULL,
  PRIMARY KEY (user_email, product_id)
)`,
	`CREATE TABLE IF NOT EXISTS products(
  id             TEXT PRIMARY KEY,
  category_id    TEXT NOT NULL,
  seller_email   TEXT NOT NULL,
  seller_name    TEXT NOT NULL DEFAULT '',
  title          TEXT NOT NULL,
  image          TEXT NOT NULL DEFAULT '',
  price          DOUBLE PRECISION NOT NULL DEFAULT 0,
  original_price DOUBLE PRECISION NOT NULL DEFAULT 0,
  condition      TEXT NOT NULL DEFAULT '',
  years_of_use   INTEGER NOT NULL DEFAULT 0,
  location       TEXT NOT NULL DEFAULT '',
  phone          TEXT NOT NULL DEFAULT '',
  description    TEXT NOT NULL DEFAULT '',
  available      BOOLEAN NOT NULL DEFAULT TRUE,
  created_at     TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_seller   ON products(seller_email)`,
	`CREATE TABLE IF NOT EXISTS advertise(
  id           TEXT PRIMARY KEY,
  product_id   TEXT NOT NULL UNIQUE,
  seller_email TEXT NOT NULL,
  created_at   TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS bookings(
  id               TEXT PRIMARY KEY,
  product_id       TEXT NOT NULL,
  product_title    TEXT NOT NULL DEFAULT '',
  buyer_email      TEXT NOT NULL,
  buyer_name       TEXT NOT NULL DEFAULT '',
  seller_email     TEXT NOT NULL DEFAULT '',
  phone            TEXT NOT NULL DEFAULT '',
  meeting_location TEXT NOT NULL DEFAULT '',
  created_at       TEXT NOT NULL
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_buyer_product ON bookings(buyer_email, product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_seller ON bookings(seller_email)`,
	`CREATE TABLE IF NOT EXISTS report(
  id             TEXT PRIMARY KEY,
  reporter_email TEXT NOT NULL,
  product_id     TEXT NOT NULL DEFAULT '',
  payload        TEXT NOT NULL DEFAULT 'null',
  created_at     TEXT NOT NULL
)`,
}

func ensureSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func seedCategories(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting default categories")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	for _, c := range []domain.Category{
		{ID: "mountain-bikes", Name: "Mountain Bikes"},
		{ID: "road-bikes", Name: "Road Bikes"},
		{ID: "kids-bikes", Name: "Kids Bikes"},
	} {
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO categories(id,name) VALUES(?,?)`), c.ID, c.Name); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return tx.Commit()
}

// SeedAdmins ensures every configured admin email has an admin principal (idempotent).
func SeedAdmins(ctx context.Context, db *sqlx.DB, emails []string) error {
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		_, err := db.ExecContext(ctx, db.Rebind(`
			INSERT INTO users(id,email,name,role,created_at)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`), domain.NewID(), email, "Admin", string(domain.RoleAdmin), now())
		if err != nil {
			return fmt.Errorf("seed admin %s: %w", email, err)
		}
	}
	return nil
}

func now() string { return domain.Timestamp(time.Now()) }

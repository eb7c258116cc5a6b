package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection
func Open(dbPath string) (*DB, error) {
	// Check if DB exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found at %s\nRun 'contacts init' to create it", dbPath)
	}

	conn, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection serialises writers instead of failing with SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}

	if err := db.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Run any pending migrations
	if err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// OpenOrCreate opens the database at dbPath, initializing it first when missing
func OpenOrCreate(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		if err := Initialize(dbPath); err != nil {
			return nil, err
		}
	}
	return Open(dbPath)
}

func dsn(dbPath string) string {
	return dbPath + "?_busy_timeout=5000"
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// ListContacts returns all contacts in insertion order
func (db *DB) ListContacts(ctx context.Context) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY seq`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := []contact.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// CreateContact inserts a contact using the ID supplied by the caller
func (db *DB) CreateContact(ctx context.Context, c contact.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	if _, err := db.conn.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Phone); err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

// UpdateContact replaces name, email and phone of an existing contact
func (db *DB) UpdateContact(ctx context.Context, c contact.Contact) error {
	query := `
		UPDATE contacts
		SET name = ?,
		    email = ?,
		    phone = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := db.conn.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.ID)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	return expectOneRow(result)
}

// DeleteContact permanently deletes a contact
func (db *DB) DeleteContact(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

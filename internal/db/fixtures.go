package db

import (
	"context"
	"fmt"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// Fixtures returns a realistic set of sample contacts with fresh IDs
func Fixtures() []contact.Contact {
	fields := []contact.Fields{
		{Name: "Sarah Chen", Email: "sarah.chen@email.com", Phone: "555-0101"},
		{Name: "Marcus Williams", Email: "marcus.w@company.com", Phone: "555-0102"},
		{Name: "Priya Raman", Email: "priya@designstudio.io", Phone: "555-0103"},
		{Name: "Tomás Herrera", Email: "tomas.herrera@mail.com", Phone: "+34 600 123 456"},
		{Name: "Jordan Blake", Email: "jblake@recruiting.net", Phone: "555-0105"},
		{Name: "Dr. Emily Foster", Email: "efoster@clinic.org", Phone: "555-0106"},
	}

	contacts := make([]contact.Contact, 0, len(fields))
	for _, f := range fields {
		contacts = append(contacts, contact.New(f))
	}
	return contacts
}

// Seed inserts the sample contacts into the database
func (db *DB) Seed(ctx context.Context) (int, error) {
	fixtures := Fixtures()
	for _, c := range fixtures {
		if err := db.CreateContact(ctx, c); err != nil {
			return 0, fmt.Errorf("seeding %s: %w", c.Name, err)
		}
	}
	return len(fixtures), nil
}

// CreateFixturesDatabase creates a database at dbPath populated with sample data
func CreateFixturesDatabase(ctx context.Context, dbPath string) error {
	if err := Initialize(dbPath); err != nil {
		return fmt.Errorf("initializing fixtures database: %w", err)
	}

	database, err := Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening fixtures database: %w", err)
	}
	defer database.Close()

	if _, err := database.Seed(ctx); err != nil {
		return err
	}
	return nil
}

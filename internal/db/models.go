package db

import (
	"errors"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// ErrNotFound is returned when no row matches the requested contact ID
var ErrNotFound = errors.New("contact not found")

// contactColumns lists the columns scanned by scanContact, in order
const contactColumns = `id, name, email, phone`

type scanner interface {
	Scan(dest ...any) error
}

// scanContact reads one contacts row
func scanContact(s scanner) (contact.Contact, error) {
	var c contact.Contact
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
		return contact.Contact{}, err
	}
	return c, nil
}

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// Formats lists the supported output formats
var Formats = []string{"json", "yaml"}

// Write encodes contacts to w in the given format. A nil list is written as
// an empty list.
func Write(w io.Writer, format string, contacts []contact.Contact) error {
	if contacts == nil {
		contacts = []contact.Contact{}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(contacts); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(contacts); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/pdxmph/contacts-mvc/internal/apiclient"
	"github.com/pdxmph/contacts-mvc/internal/config"
	"github.com/pdxmph/contacts-mvc/internal/contact"
	"github.com/pdxmph/contacts-mvc/internal/db"
	"github.com/pdxmph/contacts-mvc/internal/printer"
	"github.com/pdxmph/contacts-mvc/internal/storage"
	"github.com/pdxmph/contacts-mvc/internal/store"
)

// Contact sources accepted by --source
const (
	sourceLocal  = "local"
	sourceRemote = "remote"
	sourceDB     = "db"
)

// openLocal opens the configured key-value backend and loads the local store.
// backend overrides cfg.Storage.Backend when set.
func openLocal(ctx context.Context, cfg *config.Config, backend string) (*store.Local, func(), error) {
	if backend == "" {
		backend = cfg.Storage.Backend
	}

	kv, err := storage.Open(backend, storage.Options{
		Path:          cfg.Storage.Path,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		suggestions := []string{fmt.Sprintf("Available backends: %v", storage.Backends())}
		if backend == "redis" {
			suggestions = []string{fmt.Sprintf("Check that redis is reachable at %s", cfg.Redis.Addr)}
		}
		return nil, nil, printer.Error("Could not open storage", err.Error(), suggestions)
	}

	s, err := store.NewLocal(ctx, kv, cfg.Storage.Key)
	if err != nil {
		kv.Close()
		return nil, nil, printer.Error("Could not read contacts", err.Error(), nil)
	}
	return s, func() { kv.Close() }, nil
}

// openRemote builds a remote store against the configured API server. The
// mirror is empty until Load.
func openRemote(cfg *config.Config) (*store.Remote, error) {
	var opts []apiclient.Option
	for k, v := range cfg.Remote.Headers {
		opts = append(opts, apiclient.WithHeader(k, v))
	}
	client, err := apiclient.New(cfg.Remote.BaseURL, opts...)
	if err != nil {
		return nil, printer.Error("Invalid remote URL", err.Error(),
			[]string{"Set [remote] base_url in the config file"})
	}
	return store.NewRemote(client), nil
}

// fetchContacts reads the full collection from the named source
func fetchContacts(ctx context.Context, cfg *config.Config, source string) ([]contact.Contact, error) {
	switch source {
	case sourceLocal:
		s, closeFn, err := openLocal(ctx, cfg, "")
		if err != nil {
			return nil, err
		}
		defer closeFn()
		return s.List(), nil

	case sourceRemote:
		s, err := openRemote(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.Load(ctx); err != nil {
			return nil, printer.Error("Could not reach the contacts server", err.Error(),
				[]string{fmt.Sprintf("Start it with 'contacts serve' or check %s", cfg.Remote.BaseURL)})
		}
		return s.List(), nil

	case sourceDB:
		database, err := db.Open(cfg.Database.Path)
		if err != nil {
			return nil, printer.Error("Could not open database", err.Error(), nil)
		}
		defer database.Close()
		contacts, err := database.ListContacts(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing contacts: %w", err)
		}
		return contacts, nil
	}

	return nil, printer.Error(
		fmt.Sprintf("Unknown source %q", source),
		"",
		[]string{"Use one of: local, remote, db"},
	)
}

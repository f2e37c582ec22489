package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/flashdeck/internal/app"
	"github.com/abhisek/flashdeck/internal/card"
	"github.com/abhisek/flashdeck/internal/config"
	"github.com/abhisek/flashdeck/internal/logging"
	"github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/store"
)

// env holds what every command needs: configuration, a logger and the store.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	user  string
}

// openEnv loads configuration, builds the logger and opens the store.
// Callers must Close the returned env.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Init(config.Options{File: cfgFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg.DB)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	user := cfg.User
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		user = u
	}
	return &env{cfg: cfg, log: log, store: st, user: user}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", zap.Error(err))
	}
	_ = e.log.Sync()
}

// deck looks up one of the user's decks by name.
func (e *env) deck(cmd *cobra.Command, name string) (*card.Deck, error) {
	d, err := e.store.Decks().GetByName(cmd.Context(), e.user, name)
	if err != nil {
		return nil, fmt.Errorf("deck %q: %w", name, err)
	}
	return d, nil
}

// checkLocation returns an error unless name is empty or one of the user's
// registered locations.
func (e *env) checkLocation(cmd *cobra.Command, name string) error {
	if name == "" {
		return nil
	}
	locs, err := e.store.Locations().List(cmd.Context(), e.user)
	if err != nil {
		return err
	}
	for _, l := range locs {
		if l.Name == name {
			return nil
		}
	}
	return fmt.Errorf("unknown location %q (add it with: flashdeck location add %q)", name, name)
}

// runApp launches the TUI. A non-empty deckName opens that deck's study
// session directly.
func runApp(cmd *cobra.Command, deckName string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var deck *card.Deck
	if deckName != "" {
		if deck, err = e.deck(cmd, deckName); err != nil {
			return err
		}
	}

	location, _ := cmd.Flags().GetString("location")
	if err := e.checkLocation(cmd, location); err != nil {
		return err
	}

	p := session.NewPersister(e.store.SessionRepository(), e.log, e.cfg.PersistQueue)
	defer p.Close()

	return app.Run(app.Options{
		Store:        e.store,
		Persister:    p,
		UserID:       e.user,
		LocationName: location,
		StartDeck:    deck,
		Logger:       e.log,
	})
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	prefixGame     = "game/"
)

var ErrGameNotFound = errors.New("game not found")

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Option configures Open.
type Option func(*badger.Options)

// WithLogger routes badger's diagnostics to l. By default they are discarded.
func WithLogger(l *log.Logger) Option {
	return func(o *badger.Options) {
		o.Logger = badgerLogger{l}
	}
}

// Open opens or creates the database in dir.
func Open(dir string, options ...Option) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	for _, apply := range options {
		apply(&opts)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the user's data directory.
func OpenDefault(options ...Option) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, options...)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(prefixGame + id)
}

// SaveGame stores g, assigning a new ID when it has none. It returns the ID.
func (s *Storage) SaveGame(g *SavedGame) (string, error) {
	now := time.Now()
	if g.ID == "" {
		g.ID = uuid.NewString()
		g.CreatedAt = now
	}
	g.UpdatedAt = now

	data, err := json.Marshal(g)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(g.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return g.ID, nil
}

// LoadGame returns the saved game with the given ID, or ErrGameNotFound.
func (s *Storage) LoadGame(id string) (*SavedGame, error) {
	g := &SavedGame{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, g)
		})
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// FindGame resolves an ID prefix to a single saved game.
func (s *Storage) FindGame(prefix string) (*SavedGame, error) {
	games, err := s.ListGames()
	if err != nil {
		return nil, err
	}

	var found *SavedGame
	for _, g := range games {
		if !strings.HasPrefix(g.ID, prefix) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("ambiguous game id %q", prefix)
		}
		found = g
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, prefix)
	}
	return found, nil
}

// ListGames returns every saved game, most recently updated first.
func (s *Storage) ListGames() ([]*SavedGame, error) {
	var games []*SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixGame)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			g := &SavedGame{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, g)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			games = append(games, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(games, func(a, b *SavedGame) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return games, nil
}

// DeleteGame removes a saved game.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordResult adds a finished game's result token ("1-0", "0-1" or
// "1/2-1/2") to the statistics.
func (s *Storage) RecordResult(result string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := &GameStats{}
		item, err := txn.Get([]byte(keyStats))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
		}

		switch result {
		case "1-0":
			stats.WhiteWins++
		case "0-1":
			stats.BlackWins++
		case "1/2-1/2":
			stats.Draws++
		default:
			return fmt.Errorf("game is not finished: %q", result)
		}
		stats.GamesPlayed++

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
}

// badgerLogger adapts a standard logger to badger.Logger.
type badgerLogger struct {
	*log.Logger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.Printf("ERROR: "+format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.Printf("Warning: "+format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.Printf("INFO: "+format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   {}

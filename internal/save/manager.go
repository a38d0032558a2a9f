package save

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Store is a key/value blob store. Implementations live under
// internal/storage.
type Store interface {
	// Get returns the blob under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Put replaces the blob under key in a single write.
	Put(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Manager saves, loads and clears the game under one storage key.
type Manager struct {
	store  Store
	key    string
	logger *zap.Logger
}

// NewManager creates a Manager. An empty key selects SaveKey.
//
// Precondition: store and logger must be non-nil.
func NewManager(store Store, key string, logger *zap.Logger) *Manager {
	if key == "" {
		key = SaveKey
	}
	return &Manager{store: store, key: key, logger: logger}
}

// Key returns the storage key in use.
func (m *Manager) Key() string { return m.key }

// SaveGame encodes g at SaveVersion and writes it, replacing any prior save.
func (m *Manager) SaveGame(ctx context.Context, g SaveGame) error {
	data, err := Encode(g)
	if err != nil {
		return err
	}
	if err := m.store.Put(ctx, m.key, data); err != nil {
		return fmt.Errorf("save: writing %q: %w", m.key, err)
	}
	m.logger.Debug("game saved",
		zap.String("key", m.key),
		zap.Int("bytes", len(data)),
		zap.Stringer("game_time", g.GameTime),
	)
	return nil
}

// LoadGame reads and decodes the save. A missing, corrupt or unsupported
// save reports ok == false with a nil error so the caller starts fresh; only
// storage failures are returned as errors.
func (m *Manager) LoadGame(ctx context.Context) (g SaveGame, ok bool, err error) {
	data, found, err := m.store.Get(ctx, m.key)
	if err != nil {
		return SaveGame{}, false, fmt.Errorf("save: reading %q: %w", m.key, err)
	}
	if !found {
		m.logger.Info("no save found", zap.String("key", m.key))
		return SaveGame{}, false, nil
	}
	from, _ := Version(data)
	g, err = Decode(data)
	if err != nil {
		m.logger.Warn("ignoring unusable save",
			zap.String("key", m.key),
			zap.Int("version", from),
			zap.Error(err),
		)
		return SaveGame{}, false, nil
	}
	if from != SaveVersion {
		m.logger.Info("save migrated",
			zap.String("key", m.key),
			zap.Int("from_version", from),
			zap.Int("to_version", SaveVersion),
		)
	}
	return g, true, nil
}

// ClearSave removes the save.
func (m *Manager) ClearSave(ctx context.Context) error {
	if err := m.store.Delete(ctx, m.key); err != nil {
		return fmt.Errorf("save: clearing %q: %w", m.key, err)
	}
	m.logger.Info("save cleared", zap.String("key", m.key))
	return nil
}

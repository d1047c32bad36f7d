package checkpoint

import (
	"fmt"
	"log/slog"

	"terrainforge/internal/raster"
)

// Stage identifies a pipeline step for memoization.
type Stage int

// Manager memoizes RawMap snapshots by Stage, letting a run resume from the
// last completed stage instead of regenerating everything. A disabled
// Manager (no store) behaves as a plain pass-through: every stage runs,
// nothing is cached.
type Manager struct {
	store   *Store
	enabled bool
	current Stage
	log     *slog.Logger
}

// NewManager wraps store (nil disables checkpointing entirely) and the
// step a resumed run should start after.
func NewManager(store *Store, resumeAfter Stage, log *slog.Logger) *Manager {
	return &Manager{store: store, enabled: store != nil, current: resumeAfter, log: log}
}

// InitData returns the RawMap to start from: a checkpoint at the resume
// step if the store has one, otherwise a fresh zero-filled RawMap. A
// missing or corrupt checkpoint is a cold start, logged but not fatal.
func (m *Manager) InitData(width, height int) *raster.RawMap {
	if m.enabled {
		rm, ok, err := m.store.Load(int(m.current))
		if err != nil {
			if m.log != nil {
				m.log.Warn("checkpoint unreadable, starting cold", "step", m.current, "error", err)
			}
		} else if ok {
			return rm
		}
	}
	return raster.NewRawMap(width, height)
}

// Step wraps a stage thunk: if checkpointing is enabled and id is at or
// before the resume point, a prior cached result
// is installed and the thunk never runs; otherwise the thunk runs and its
// result replaces the cached entry at id. A missing or corrupt cache entry
// for an already-resumed step is a cold start for that single stage: the
// thunk runs and its result is (re)persisted, rather than failing the run.
func (m *Manager) Step(id Stage, thunk func() (*raster.RawMap, error)) (*raster.RawMap, error) {
	if m.enabled && id <= m.current {
		rm, ok, err := m.store.Load(int(id))
		if err != nil {
			if m.log != nil {
				m.log.Warn("checkpoint unreadable, running stage", "step", id, "error", err)
			}
		} else if ok {
			return rm, nil
		}
	}

	rm, err := thunk()
	if err != nil {
		return nil, fmt.Errorf("stage %d: %w", id, err)
	}

	if m.enabled {
		if err := m.store.Save(int(id), rm); err != nil {
			return nil, fmt.Errorf("stage %d: checkpoint save: %w", id, err)
		}
		if id > m.current {
			m.current = id
		}
	}
	return rm, nil
}

// Save is a no-op placeholder kept for symmetry with the load/init/step
// contract; Step already persists as it goes, so a trailing Save has
// nothing left to flush beyond closing the store, which callers do
// directly via Store.Close.
func (m *Manager) Save() error {
	return nil
}

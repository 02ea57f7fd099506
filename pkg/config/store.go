package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/style"
)

var (
	// ErrUnknownSection is returned by UpdateSection for an unrecognised key.
	ErrUnknownSection = errors.New("config: unknown section")
	// ErrSectionType is returned by UpdateSection when the value does not
	// match the section's type.
	ErrSectionType = errors.New("config: section value has the wrong type")
)

// Listener observes config changes. It receives the live config and must not
// mutate it.
type Listener func(cfg *Config)

// Option customises a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithInitial seeds the store with cfg before any listener is registered.
func WithInitial(cfg Config) Option {
	return func(s *Store) {
		s.cfg.Merge(&cfg)
	}
}

type subscription struct {
	id       uint64
	listener Listener
}

// Store owns a Config and notifies subscribers when it changes. Each form
// tree receives its own Store so independent instances never share state.
type Store struct {
	mu        sync.RWMutex
	cfg       *Config
	listeners []subscription
	nextID    uint64
	logger    zerolog.Logger
}

// NewStore constructs an empty store applying any provided options.
func NewStore(options ...Option) *Store {
	s := &Store{
		cfg:    &Config{},
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Config returns the live config. The pointer stays valid until the next
// Reset; use Clone for a stable snapshot.
func (s *Store) Config() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Snapshot returns a deep copy of the current config.
func (s *Store) Snapshot() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Configure deep-merges patch into the current config and notifies every
// listener once.
func (s *Store) Configure(patch Config) {
	s.mu.Lock()
	s.cfg.Merge(&patch)
	cfg := s.cfg
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Debug().Strs("sections", patch.sections()).Msg("config: merged patch")
	notify(listeners, cfg)
}

// UpdateSection merges value into a single top-level section. value must be
// the section's type or a pointer to it (map types for classNames and
// presets).
func (s *Store) UpdateSection(section Section, value any) error {
	patch, err := sectionPatch(section, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg.Merge(&patch)
	cfg := s.cfg
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Debug().Str("section", string(section)).Msg("config: updated section")
	notify(listeners, cfg)
	return nil
}

// Reset clears the config and notifies listeners.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cfg = &Config{}
	cfg := s.cfg
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.logger.Debug().Msg("config: reset")
	notify(listeners, cfg)
}

// Subscribe registers listener and returns a function that removes it.
// Listeners run in registration order.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, listener: listener})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for idx, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:idx:idx], s.listeners[idx+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, len(s.listeners))
	for idx, sub := range s.listeners {
		out[idx] = sub.listener
	}
	return out
}

func notify(listeners []Listener, cfg *Config) {
	for _, listener := range listeners {
		listener(cfg)
	}
}

func sectionPatch(section Section, value any) (Config, error) {
	var (
		patch Config
		ok    bool
	)
	switch section {
	case SectionTheme:
		patch.Theme, ok = asPointer[Theme](value)
	case SectionDefaults:
		patch.Defaults, ok = asPointer[style.Preset](value)
	case SectionButton:
		patch.Button, ok = asPointer[Button](value)
	case SectionLabel:
		patch.Label, ok = asPointer[Label](value)
	case SectionValidation:
		patch.Validation, ok = asPointer[Validation](value)
	case SectionLayout:
		patch.Layout, ok = asPointer[Layout](value)
	case SectionClassNames:
		patch.ClassNames, ok = value.(map[string]string)
		ok = ok && patch.ClassNames != nil
	case SectionPresets:
		patch.Presets, ok = value.(map[string]style.Preset)
		ok = ok && patch.Presets != nil
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if !ok {
		return Config{}, fmt.Errorf("%w: %s got %T", ErrSectionType, section, value)
	}
	return patch, nil
}

func asPointer[T any](value any) (*T, bool) {
	switch typed := value.(type) {
	case T:
		return &typed, true
	case *T:
		return typed, typed != nil
	default:
		return nil, false
	}
}

package provider

import (
	"context"
	"log/slog"

	"github.com/auraai/aura-backend/internal/config"
)

// Per-capability preference orders. Fixed configuration, not adaptive: the
// default selection path walks the list and takes the first configured
// vendor whose availability probe passes.
var (
	textPreference  = []Name{OpenAI, Anthropic, Gemini}
	imagePreference = []Name{Stability, OpenAI, Gemini}
	videoPreference = []Name{Gemini}
	voicePreference = []Name{ElevenLabs, OpenAI}
)

// Manager owns the configured adapter set and the selection/fallback policy.
// It is built once at startup and never mutated afterwards: no dynamic
// registration, no cached availability.
type Manager struct {
	adapters map[Name]Adapter
	order    []Name
	primary  Name
	logger   *slog.Logger
}

// ManagerOption is a functional option for configuring Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets a custom logger.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given adapters. The primary is the
// named vendor when it is among the adapters, otherwise the first adapter in
// slice order. Duplicated vendor names keep the first occurrence.
// Returns ErrNoProvider when the adapter list is empty: the process must not
// start without at least one configured vendor.
func NewManager(adapters []Adapter, primary Name, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		adapters: make(map[Name]Adapter, len(adapters)),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	for _, a := range adapters {
		if a == nil {
			continue
		}
		if _, exists := m.adapters[a.Name()]; exists {
			continue
		}
		m.adapters[a.Name()] = a
		m.order = append(m.order, a.Name())
	}

	if len(m.order) == 0 {
		return nil, ErrNoProvider
	}

	if _, ok := m.adapters[primary]; ok {
		m.primary = primary
	} else {
		m.primary = m.order[0]
	}

	return m, nil
}

// FromConfig builds one adapter per vendor credential present in the
// configuration and wraps them in a Manager.
func FromConfig(cfg *config.Configuration, opts ...ManagerOption) (*Manager, error) {
	var adapters []Adapter

	if key := cfg.Providers.GeminiAPIKey; key != "" {
		adapters = append(adapters, NewGeminiAdapter(key))
	}
	if key := cfg.Providers.OpenAIAPIKey; key != "" {
		adapters = append(adapters, NewOpenAIAdapter(key))
	}
	if key := cfg.Providers.AnthropicAPIKey; key != "" {
		adapters = append(adapters, NewAnthropicAdapter(key))
	}
	if key := cfg.Providers.StabilityAPIKey; key != "" {
		adapters = append(adapters, NewStabilityAdapter(key))
	}
	if key := cfg.Providers.ElevenLabsAPIKey; key != "" {
		adapters = append(adapters, NewElevenLabsAdapter(key))
	}

	return NewManager(adapters, Name(cfg.Providers.Primary), opts...)
}

// Primary returns the primary vendor name.
func (m *Manager) Primary() Name {
	return m.primary
}

// Configured returns the configured vendor names in registration order.
func (m *Manager) Configured() []Name {
	out := make([]Name, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns the named adapter if configured, otherwise the primary
// adapter. ErrNoProvider when neither resolves.
func (m *Manager) Get(name Name) (Adapter, error) {
	if name != "" {
		if a, ok := m.adapters[name]; ok {
			return a, nil
		}
	}
	if a, ok := m.adapters[m.primary]; ok {
		return a, nil
	}
	return nil, ErrNoProvider
}

// TextProvider resolves an adapter for text generation. An explicit name is
// honored strictly: it resolves to that adapter only when configured and
// currently available, never to a substitute. With no name the fixed text
// preference order is walked. Nil means no provider.
func (m *Manager) TextProvider(ctx context.Context, name Name) Adapter {
	return m.selectProvider(ctx, name, textPreference)
}

// ImageProvider resolves an adapter for image generation.
func (m *Manager) ImageProvider(ctx context.Context, name Name) Adapter {
	return m.selectProvider(ctx, name, imagePreference)
}

// VideoProvider resolves an adapter for video generation. Gemini is the only
// video-capable vendor, so the default path yields Gemini or nil.
func (m *Manager) VideoProvider(ctx context.Context, name Name) Adapter {
	return m.selectProvider(ctx, name, videoPreference)
}

// VoiceProvider resolves an adapter for speech synthesis. ElevenLabs is the
// designated TTS vendor and is preferred outright.
func (m *Manager) VoiceProvider(ctx context.Context, name Name) Adapter {
	return m.selectProvider(ctx, name, voicePreference)
}

// selectProvider applies the shared selection policy: strict explicit names,
// otherwise the first configured and available vendor in preference order.
func (m *Manager) selectProvider(ctx context.Context, explicit Name, preference []Name) Adapter {
	if explicit != "" {
		a, ok := m.adapters[explicit]
		if !ok {
			m.logger.Debug("requested provider not configured", slog.String("provider", string(explicit)))
			return nil
		}
		if !m.probe(ctx, a) {
			m.logger.Debug("requested provider unavailable", slog.String("provider", string(explicit)))
			return nil
		}
		return a
	}

	for _, name := range preference {
		a, ok := m.adapters[name]
		if !ok {
			continue
		}
		if m.probe(ctx, a) {
			return a
		}
		m.logger.Debug("provider unavailable, trying next candidate", slog.String("provider", string(name)))
	}
	return nil
}

// ListAvailable probes every configured adapter. Probes are isolated so one
// failing adapter cannot abort the scan.
func (m *Manager) ListAvailable(ctx context.Context) map[Name]bool {
	status := make(map[Name]bool, len(m.order))
	for _, name := range m.order {
		status[name] = m.probe(ctx, m.adapters[name])
	}
	return status
}

// probe wraps IsAvailable with panic isolation. The Adapter contract says
// probes never fail loudly, but a misbehaving adapter must read as
// unavailable rather than take the process down.
func (m *Manager) probe(ctx context.Context, a Adapter) (available bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("availability probe panicked",
				slog.String("provider", string(a.Name())),
				slog.Any("panic", r),
			)
			available = false
		}
	}()
	return a.IsAvailable(ctx)
}

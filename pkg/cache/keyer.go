package cache

// Keyer builds cache keys. Every input that affects computed output must be
// part of the key: the content hash carries content identity (any edit to
// the menu changes it), and the opts structs carry everything else:
// preset/template, display configuration, context, and currency.
type Keyer interface {
	// LayoutKey keys computed geometry by content identity and layout
	// configuration.
	LayoutKey(contentHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered outputs by layout identity and render
	// configuration.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs that select geometry for a given document.
type LayoutKeyOpts struct {
	EngineVersion string  `json:"engine_version"`
	PresetID      string  `json:"preset_id"`
	TemplateID    string  `json:"template_id,omitempty"`
	Context       string  `json:"context"`
	Currency      string  `json:"currency"`
	ShowTitle     bool    `json:"show_title"`
	Fillers       bool    `json:"fillers"`
	PageWidth     float64 `json:"page_width,omitempty"`
	PageHeight    float64 `json:"page_height,omitempty"`
	PageMargin    float64 `json:"page_margin,omitempty"`
}

// ArtifactKeyOpts are the inputs that select a rendered form of a layout.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	PaletteID string `json:"palette_id,omitempty"`
	ImageMode string `json:"image_mode,omitempty"`
	TextOnly  bool   `json:"text_only"`
	Textures  bool   `json:"textures"`
	Currency  string `json:"currency"`
}

// DefaultKeyer hashes opts into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(contentHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", contentHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different restaurants or workspaces get separate cache namespaces on a
// shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(contentHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(contentHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)

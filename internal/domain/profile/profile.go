package profile

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/boot"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

// Format identifies a profile encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Stock timings, in milliseconds
const (
	DefaultFadeMS        = 250
	DefaultRestartBootMS = 80
	DefaultRestartShowMS = 900
	DefaultFocusBase     = 50
)

// ErrInvalidProfile wraps every validation failure
var ErrInvalidProfile = errors.New("invalid profile")

// Profile text is shown as plain labels and transcript lines, so it must not
// carry markup. Text that changes when every tag is stripped carries some.
var plainText = bluemonday.StrictPolicy()

func hasMarkup(s string) bool {
	return html.UnescapeString(plainText.Sanitize(s)) != s
}

// FileSeed is a file present when a session starts
type FileSeed struct {
	ID   int    `yaml:"id" toml:"id" json:"id"`
	Name string `yaml:"name" toml:"name" json:"name"`
	Size string `yaml:"size" toml:"size" json:"size"`
}

// WindowSeed is a window's initial geometry
type WindowSeed struct {
	Left   int `yaml:"left" toml:"left" json:"left"`
	Top    int `yaml:"top" toml:"top" json:"top"`
	Width  int `yaml:"width" toml:"width" json:"width"`
	Height int `yaml:"height" toml:"height" json:"height"`
}

// Timings controls the phase transitions that follow boot and restart
type Timings struct {
	FadeMS        int `yaml:"fade_ms" toml:"fade_ms" json:"fade_ms"`
	RestartBootMS int `yaml:"restart_boot_ms" toml:"restart_boot_ms" json:"restart_boot_ms"`
	RestartShowMS int `yaml:"restart_show_ms" toml:"restart_show_ms" json:"restart_show_ms"`
}

// Profile is the seed for a new desktop session
type Profile struct {
	Name       string                `yaml:"name" toml:"name" json:"name"`
	Files      []FileSeed            `yaml:"files" toml:"files" json:"files"`
	Transcript []string              `yaml:"transcript" toml:"transcript" json:"transcript"`
	Windows    map[string]WindowSeed `yaml:"windows" toml:"windows" json:"windows"`
	FocusBase  *int                  `yaml:"focus_base" toml:"focus_base" json:"focus_base,omitempty"`
	POSTLines  []string              `yaml:"post_lines" toml:"post_lines" json:"post_lines"`
	Timings    Timings               `yaml:"timings" toml:"timings" json:"timings"`
}

// Default returns the stock desktop profile
func Default() *Profile {
	p := &Profile{Name: "default"}
	p.applyDefaults()
	return p
}

// Load reads a profile file, choosing the decoder from its extension
func Load(path string) (*Profile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// FormatOf maps a file extension to a Format
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported profile extension %q", filepath.Ext(path))
	}
}

// Parse decodes and validates a profile. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Profile, error) {
	var p Profile

	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalWithOptions(data, &p, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		api := sonic.Config{DisallowUnknownFields: true}.Froze()
		if err := api.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q", format)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.applyDefaults()
	return &p, nil
}

// Validate checks the fields that were set explicitly
func (p *Profile) Validate() error {
	ids := make(map[int]bool, len(p.Files))
	for _, f := range p.Files {
		if f.Name == "" {
			return fmt.Errorf("%w: file %d has no name", ErrInvalidProfile, f.ID)
		}
		if hasMarkup(f.Name) {
			return fmt.Errorf("%w: file %d name contains markup", ErrInvalidProfile, f.ID)
		}
		if ids[f.ID] {
			return fmt.Errorf("%w: duplicate file id %d", ErrInvalidProfile, f.ID)
		}
		ids[f.ID] = true
	}

	if hasMarkup(p.Name) {
		return fmt.Errorf("%w: name contains markup", ErrInvalidProfile)
	}
	for i, line := range p.Transcript {
		if hasMarkup(line) {
			return fmt.Errorf("%w: transcript line %d contains markup", ErrInvalidProfile, i+1)
		}
	}
	for i, line := range p.POSTLines {
		if hasMarkup(line) {
			return fmt.Errorf("%w: post line %d contains markup", ErrInvalidProfile, i+1)
		}
	}

	for name, w := range p.Windows {
		if !window.Name(name).Valid() {
			return fmt.Errorf("%w: unknown window %q", ErrInvalidProfile, name)
		}
		if w.Width < 0 || w.Height < 0 {
			return fmt.Errorf("%w: window %q has negative size", ErrInvalidProfile, name)
		}
	}

	if p.Timings.FadeMS < 0 || p.Timings.RestartBootMS < 0 || p.Timings.RestartShowMS < 0 {
		return fmt.Errorf("%w: timings must not be negative", ErrInvalidProfile)
	}
	return nil
}

// applyDefaults fills every field that was left out
func (p *Profile) applyDefaults() {
	if p.Files == nil {
		for _, f := range vfs.DefaultFiles() {
			p.Files = append(p.Files, FileSeed{ID: f.ID, Name: f.Name, Size: f.Size})
		}
	}
	if p.Transcript == nil {
		p.Transcript = terminal.DefaultBanner()
	}
	if p.POSTLines == nil {
		p.POSTLines = boot.DefaultPOSTLines()
	}
	if p.FocusBase == nil {
		base := DefaultFocusBase
		p.FocusBase = &base
	}

	if p.Windows == nil {
		p.Windows = make(map[string]WindowSeed)
	}
	for name, g := range window.DefaultGeometry() {
		seed, ok := p.Windows[string(name)]
		if !ok {
			p.Windows[string(name)] = WindowSeed{Left: g.Left, Top: g.Top, Width: g.Width, Height: g.Height}
			continue
		}
		if seed.Width == 0 {
			seed.Width = g.Width
		}
		if seed.Height == 0 {
			seed.Height = g.Height
		}
		p.Windows[string(name)] = seed
	}

	if p.Timings.FadeMS == 0 {
		p.Timings.FadeMS = DefaultFadeMS
	}
	if p.Timings.RestartBootMS == 0 {
		p.Timings.RestartBootMS = DefaultRestartBootMS
	}
	if p.Timings.RestartShowMS == 0 {
		p.Timings.RestartShowMS = DefaultRestartShowMS
	}
}

// FileList converts the seed files for the virtual file store
func (p *Profile) FileList() []vfs.File {
	files := make([]vfs.File, 0, len(p.Files))
	for _, f := range p.Files {
		files = append(files, vfs.File{ID: f.ID, Name: f.Name, Size: f.Size})
	}
	return files
}

// WindowConfig builds a window manager configuration for the given viewport
func (p *Profile) WindowConfig(viewport window.Size) window.Config {
	defaults := make(map[window.Name]window.Geometry, len(p.Windows))
	for name, w := range p.Windows {
		defaults[window.Name(name)] = window.Geometry{Left: w.Left, Top: w.Top, Width: w.Width, Height: w.Height}
	}

	base := DefaultFocusBase
	if p.FocusBase != nil {
		base = *p.FocusBase
	}

	return window.Config{
		Viewport:  viewport,
		Defaults:  defaults,
		FocusBase: base,
	}
}

// Fade returns the BootFinishing to DesktopShown delay
func (t Timings) Fade() time.Duration {
	return time.Duration(t.FadeMS) * time.Millisecond
}

// RestartBoot returns the Booting to BootFinishing delay after a restart
func (t Timings) RestartBoot() time.Duration {
	return time.Duration(t.RestartBootMS) * time.Millisecond
}

// RestartShow returns the BootFinishing to DesktopShown delay after a restart
func (t Timings) RestartShow() time.Duration {
	return time.Duration(t.RestartShowMS) * time.Millisecond
}

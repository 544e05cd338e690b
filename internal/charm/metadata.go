package charm

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Metadata is the typed view of charmcraft.yaml. Only the sections the
// checklist inspects are modeled; everything else stays in MetadataRaw.
type Metadata struct {
	Name        string `mapstructure:"name"`
	Title       string `mapstructure:"title"`
	Summary     string `mapstructure:"summary"`
	Description string `mapstructure:"description"`

	Links Links `mapstructure:"links"`

	Actions map[string]any `mapstructure:"actions"`
	Config  Config         `mapstructure:"config"`

	Requires map[string]Relation `mapstructure:"requires"`
	Provides map[string]Relation `mapstructure:"provides"`

	Parts map[string]Part `mapstructure:"parts"`
}

// Links holds the charmcraft.yaml links section. Issues and Source may be
// written as a single URL or a list of URLs; the weakly typed decode wraps
// a bare string into a one-element slice.
type Links struct {
	Documentation string   `mapstructure:"documentation"`
	Issues        []string `mapstructure:"issues"`
	Source        []string `mapstructure:"source"`
	Contact       string   `mapstructure:"contact"`
}

// Config holds the charmcraft.yaml config section.
type Config struct {
	Options map[string]any `mapstructure:"options"`
}

// Relation is a single requires/provides endpoint. Optional is a pointer so
// the rules can distinguish "optional: false" from the key being absent.
type Relation struct {
	Interface string `mapstructure:"interface"`
	Optional  *bool  `mapstructure:"optional"`
}

// Part is a charmcraft.yaml build part.
type Part struct {
	Plugin             string `mapstructure:"plugin"`
	StrictDependencies *bool  `mapstructure:"charm-strict-dependencies"`
}

// Default profile values from the charmcraft init template. Metadata fields
// still carrying these have not been filled in by the author.
const (
	defaultTitle   = "Charm Template"
	defaultSummary = "A very short one-line summary of the charm."
)

const defaultDescription = `A single sentence that says what the charm is, concisely and memorably.

A paragraph of one to three short sentences, that describe what the charm does.

A third paragraph that explains what need the charm meets.

Finally, a paragraph that describes whom the charm is useful for.
`

// IsDefaultTitle reports whether the title is unset or the template value.
func (m *Metadata) IsDefaultTitle() bool {
	return m.Title == "" || m.Title == defaultTitle
}

// IsDefaultSummary reports whether the summary is unset or the template value.
func (m *Metadata) IsDefaultSummary() bool {
	return m.Summary == "" || m.Summary == defaultSummary
}

// IsDefaultDescription reports whether the description is unset or the
// template value.
func (m *Metadata) IsDefaultDescription() bool {
	return m.Description == "" || m.Description == defaultDescription
}

// parseMetadata unmarshals charmcraft.yaml into both a raw map and the
// typed Metadata. A YAML or decode fault returns whatever was recovered
// plus the error; callers record the fault on the view instead of failing.
func parseMetadata(raw []byte) (*Metadata, map[string]any, error) {
	var rawMap map[string]any
	if err := yaml.Unmarshal(raw, &rawMap); err != nil {
		return nil, nil, fmt.Errorf("parsing charmcraft.yaml: %w", err)
	}

	var md Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, rawMap, fmt.Errorf("building charmcraft.yaml decoder: %w", err)
	}
	if err := dec.Decode(rawMap); err != nil {
		return nil, rawMap, fmt.Errorf("decoding charmcraft.yaml: %w", err)
	}
	return &md, rawMap, nil
}

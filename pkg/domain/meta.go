package domain

// Meta carries the human-facing description of a registered entity.
// IDs are kebab-case and namespaced by domain, e.g. "scroll/fade".
type Meta struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Settings    SettingsSchema `json:"settings,omitempty" yaml:"settings,omitempty"`
}

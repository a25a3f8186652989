package universe

// File is the YAML document describing a universe.
type File struct {
	DataModel  string      `yaml:"data_model,omitempty"`
	Composites []Composite `yaml:"composites"`
}

// Composite declares one struct or union.
type Composite struct {
	Kind   string   `yaml:"kind"`
	Name   string   `yaml:"name,omitempty"`
	Fields []Member `yaml:"fields"`
}

// Member declares one field. Exactly one of Type and Anonymous is set.
type Member struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type,omitempty"`
	// Bits makes the member a bitfield of the given width.
	Bits      int64      `yaml:"bits,omitempty"`
	Anonymous *Composite `yaml:"anonymous,omitempty"`
}

package manifest

// Manifest is the JSON document describing one batch build.
//
// Example:
//
//	{
//	  "preset": "ustreamer",
//	  "license_file": "LICENSE.header",
//	  "macros": {"VERSION": "US_VERSION"},
//	  "assets": [
//	    {"source": "data/blank.jpg", "output": "src/data/blank_jpeg.c", "name": "BLANK"},
//	    {"source": "data/index.html", "output": "src/data/index_html.c", "name": "INDEX"}
//	  ]
//	}
type Manifest struct {
	// Preset selects layout and naming: canonical, ustreamer, legacy or go.
	Preset string `json:"preset,omitempty"`

	// License text for the file preamble. LicenseFile reads it from disk
	// instead; setting both is an error.
	License     string `json:"license,omitempty"`
	LicenseFile string `json:"license_file,omitempty"`

	// Package is the Go package clause for the go preset.
	Package string `json:"package,omitempty"`

	// Macros maps HTML placeholders to the symbols that replace them.
	Macros map[string]string `json:"macros,omitempty"`

	Mode      string `json:"mode,omitempty"`      // output permissions, e.g. "0644"
	Jobs      int    `json:"jobs,omitempty"`      // parallel workers; 0 means one per CPU
	Transform string `json:"transform,omitempty"` // default payload transform
	Stamp     bool   `json:"stamp,omitempty"`     // record the source checksum in the preamble
	Checksum  string `json:"checksum,omitempty"`  // algorithm for stamps and check mode

	Assets []Asset `json:"assets"`
}

// Asset is one resource to compile.
type Asset struct {
	Kind      string `json:"kind,omitempty"`      // jpeg, ico or html; guessed from Source if empty
	Source    string `json:"source"`              // resource file
	Output    string `json:"output"`              // generated source file
	Name      string `json:"name,omitempty"`      // symbol fragment; derived from Source if empty
	Transform string `json:"transform,omitempty"` // overrides the manifest default
}

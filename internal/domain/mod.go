package domain

// DefaultCategory is used when a descriptor does not declare a category
const DefaultCategory = "Uncategorised"

// Descriptor is the parsed contents of a mod's mod.json.
// Field names follow the descriptor format consumed by existing mod packages.
type Descriptor struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PreviewImage string `json:"previewImage"`

	// Files maps a filename within the mod directory to the relative
	// directory under the game data root it replaces, e.g.
	// "match.lua" -> "ui/scripts".
	Files map[string]string `json:"files"`

	// XML maps a relative XML file path under the data root to a set of
	// selector -> replacement-fragment-path pairs. The fragment path is
	// relative to the mod directory.
	XML map[string]map[string]string `json:"xml"`
}

// Valid reports whether the descriptor is eligible for listing.
// Mods without a name or description are silently excluded from the catalog.
func (d *Descriptor) Valid() bool {
	return d.Name != "" && d.Description != ""
}

// CategoryOrDefault returns the declared category, or DefaultCategory.
func (d *Descriptor) CategoryOrDefault() string {
	if d.Category == "" {
		return DefaultCategory
	}
	return d.Category
}

// Mod is a catalog entry: a mod directory plus its parsed descriptor.
// The directory name is the mod's identifier in the installed-mods record.
type Mod struct {
	DirName string
	Path    string
	Descriptor
}

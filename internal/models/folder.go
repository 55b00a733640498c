package models

// Folder is one entry of a mailbox folder listing.
type Folder struct {
	Attributes []string
	Delimiter  string
	Name       string
}

// Valid reports whether the folder name is usable as a selection or copy
// target. Empty names, root placeholders and delimiter-only names are
// degenerate listing artifacts.
func (f Folder) Valid() bool {
	if f.Name == "" || f.Name == "." || f.Name == "/" {
		return false
	}
	return f.Name != f.Delimiter
}

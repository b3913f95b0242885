package models

// Trip represents one source log: its cleaned fixes in chronological order
type Trip struct {
	Name  string `json:"name"` // Source file base name
	Fixes []Fix  `json:"fixes"`
}

// Len returns the number of fixes in the trip
func (t Trip) Len() int {
	return len(t.Fixes)
}

// Path returns the trip's raw coordinates in order
func (t Trip) Path() []Coordinate {
	path := make([]Coordinate, 0, len(t.Fixes))
	for _, f := range t.Fixes {
		path = append(path, f.Coordinate())
	}
	return path
}

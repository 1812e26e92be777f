package shared

// EntityID is the stable identifier for any world entity (ship or station).
// It is used as the map key everywhere: proximity index cells, route cache
// entries, and per-agent AI state.
type EntityID string

// IsZero reports whether the id is unset
func (id EntityID) IsZero() bool {
	return id == ""
}

func (id EntityID) String() string {
	return string(id)
}

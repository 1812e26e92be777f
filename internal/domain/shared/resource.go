package shared

// Resource identifies a tradeable commodity kind
type Resource string

// Commodity kinds traded between stations. The set is closed for the
// simulation but the type itself is open so scenario fixtures can mint
// their own kinds.
const (
	ResourceOre        Resource = "ORE"
	ResourceMetal      Resource = "METAL"
	ResourceFood       Resource = "FOOD"
	ResourceWater      Resource = "WATER"
	ResourceFuel       Resource = "FUEL"
	ResourceElectronic Resource = "ELECTRONICS"
)

// AllResources lists every built-in commodity kind in a stable order.
// Route scanning iterates this list, so a deterministic order here keeps
// opportunity enumeration deterministic.
func AllResources() []Resource {
	return []Resource{
		ResourceOre,
		ResourceMetal,
		ResourceFood,
		ResourceWater,
		ResourceFuel,
		ResourceElectronic,
	}
}

func (r Resource) String() string {
	return string(r)
}

package component

// OreType identifies a resource family.
type OreType string

const OreBlue OreType = "blue"

// OrePatch is a mineable deposit. Each time cumulative damage crosses another
// Density percent of its max health, it sheds one loose Ore.
type OrePatch struct {
	OreType  OreType
	Density  int     // percent of max health per drop, 1..100
	Richness float64 // value of each dropped ore
	Drops    int     // ore dropped so far
}

// Ore is a loose, collectible chunk dropped by a patch. Its health is the
// amount left to collect.
type Ore struct {
	OreType OreType
	Value   float64
}

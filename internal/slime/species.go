package slime

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// NumSpecies is the number of populations, each with its own pheromone channel.
const NumSpecies = 3

// Species identifies a population and indexes its pheromone channel.
type Species int

const (
	Red Species = iota
	Green
	Blue
)

// SpeciesInfo describes the static properties of a species.
type SpeciesInfo struct {
	Name      string
	ConfigKey string // config key holding the agent count
	Color     color.RGBA
}

var speciesTable = [NumSpecies]SpeciesInfo{
	Red:   {Name: "red", ConfigKey: "numRedAgents", Color: colornames.Red},
	Green: {Name: "green", ConfigKey: "numGreenAgents", Color: colornames.Lime},
	Blue:  {Name: "blue", ConfigKey: "numBlueAgents", Color: colornames.Blue},
}

func (s Species) String() string {
	if s < 0 || s >= NumSpecies {
		return "unknown"
	}
	return speciesTable[s].Name
}

// PackRGB packs a colour as 0xRRGGBB.
func PackRGB(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

package domain

// DefaultEnergy is the score of any emoji missing from the energy table.
const DefaultEnergy = 5

var energyTable = map[string]int{
	"😎": 9,
	"🤖": 8,
	"😂": 7,
	"😴": 4,
	"😡": 3,
}

// EnergyScore maps a mood emoji to its energy value on a 0-10 scale.
func EnergyScore(emoji string) int {
	if v, ok := energyTable[emoji]; ok {
		return v
	}
	return DefaultEnergy
}

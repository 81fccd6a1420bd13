package data

import "math/rand"

// Callsigns contains racer names offered by the menu's shuffle button
var Callsigns = struct {
	Prefix []string
	Suffix []string
}{
	Prefix: []string{
		"Neon", "Turbo", "Midnight", "Chrome", "Desert", "Static", "Rubber", "Blaze",
		"Asphalt", "Nitro", "Shadow", "Redline", "Vapor", "Diesel", "Hyper", "Ghost",
	},
	Suffix: []string{
		"Viper", "Runner", "Drifter", "Comet", "Bandit", "Falcon", "Hornet", "Outlaw",
		"Phantom", "Rocket", "Cobra", "Maverick", "Jackal", "Mustang", "Spectre", "Wolf",
	},
}

// Callsign returns a random two-word racer name
func Callsign(rng *rand.Rand) string {
	return Callsigns.Prefix[rng.Intn(len(Callsigns.Prefix))] + " " +
		Callsigns.Suffix[rng.Intn(len(Callsigns.Suffix))]
}

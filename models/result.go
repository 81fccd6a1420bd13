package models

// RaceResult is one player's line on the results screen
type RaceResult struct {
	PlayerName string `json:"playerName"`
	Distance   int    `json:"distance"` // Kilometres, distance / 100
	TopSpeed   int    `json:"topSpeed"` // KM/H
	Laps       int    `json:"laps"`
	Rank       int    `json:"rank"` // 1-based
}

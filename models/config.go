package models

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors returned before a race can start
var (
	ErrNoPlayers      = errors.New("no players configured")
	ErrTooManyPlayers = errors.New("too many players configured")
	ErrEmptyName      = errors.New("player name is empty")
	ErrInvalidColor   = errors.New("invalid hex colour")
	ErrUnknownTheme   = errors.New("unknown track theme")
	ErrUnknownDevice  = errors.New("unknown device mode")
)

// MaxPlayers is the number of local control schemes available
const MaxPlayers = 2

// Theme selects the track scenery
type Theme string

const (
	ThemeCity   Theme = "CITY"
	ThemeDesert Theme = "DESERT"
)

// ParseTheme accepts a theme name in any case
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToUpper(strings.TrimSpace(s))); t {
	case ThemeCity, ThemeDesert:
		return t, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownTheme)
}

// DeviceMode selects keyboard or on-screen touch controls
type DeviceMode string

const (
	DeviceComputer DeviceMode = "COMPUTER"
	DeviceMobile   DeviceMode = "MOBILE"
)

// ParseDeviceMode accepts a device mode name in any case
func ParseDeviceMode(s string) (DeviceMode, error) {
	switch d := DeviceMode(strings.ToUpper(strings.TrimSpace(s))); d {
	case DeviceComputer, DeviceMobile:
		return d, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownDevice)
}

// PlayerConfig is one entry of the menu's player list
type PlayerConfig struct {
	Name  string `json:"name"`
	Color string `json:"color"` // Hex, e.g. "#3b82f6"
}

// RaceConfig is everything the menu hands to a new race
type RaceConfig struct {
	Players []PlayerConfig `json:"players"`
	Theme   Theme          `json:"theme"`
	Device  DeviceMode     `json:"device"`
}

// DefaultRaceConfig returns the menu's initial selection
func DefaultRaceConfig() RaceConfig {
	return RaceConfig{
		Players: []PlayerConfig{{Name: "Racer One", Color: Hex(ColorPlayerOne)}},
		Theme:   ThemeCity,
		Device:  DeviceComputer,
	}
}

// Validate rejects player lists and selections a race cannot start with
func (c RaceConfig) Validate() error {
	if len(c.Players) == 0 {
		return ErrNoPlayers
	}
	if len(c.Players) > MaxPlayers {
		return fmt.Errorf("%d players: %w", len(c.Players), ErrTooManyPlayers)
	}
	for i, p := range c.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("player %d: %w", i+1, ErrEmptyName)
		}
		if _, err := ParseHex(p.Color); err != nil {
			return fmt.Errorf("player %d: %w", i+1, err)
		}
	}
	if _, err := ParseTheme(string(c.Theme)); err != nil {
		return err
	}
	if _, err := ParseDeviceMode(string(c.Device)); err != nil {
		return err
	}
	return nil
}

package models

// Player is a team member. Players are created explicitly or on first
// appearance in a game, and are retired rather than deleted.
type Player struct {
	// Name identifies the player and is unique within a tenant.
	Name string

	// Retiree marks a player who no longer plays. Retired players keep
	// their history and balance.
	Retiree bool

	// Comment is free text shown on player admin screens.
	Comment string
}

package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/money"
	"github.com/GreyPaperclip/cffadb/internal/names"
)

// Provenance tags recorded on game documents.
const (
	ProvenanceSubmitted = "Record submitted by CFFA user"
	ProvenanceEdited    = "Record edited by CFFA user"
)

// Attendance markers accepted on imported and edited records. Every marker
// means "attended" for costing purposes; new games record ResultDraw.
const ResultDraw = "Draw"

var attendedMarkers = map[string]bool{
	"Win": true, "win": true,
	"Lose": true, "lose": true,
	"Draw": true, "draw": true,
	"No Show": true, "no show": true,
}

// AttendedMarker reports whether the given result string counts as
// attendance.
func AttendedMarker(s string) bool { return attendedMarkers[s] }

// Game is one pitch booking. Attendance and guest counts are explicit
// mappings keyed by player name; the per-player result value is one of the
// accepted attendance markers.
type Game struct {
	ID   string
	Date time.Time

	// Cost is the full pitch cost for the game.
	Cost money.Money

	// Booker is the player credited with paying the pitch fee. Empty for
	// some imported games.
	Booker string

	// Attendance maps player name to a result marker. A key only exists
	// for players who attended.
	Attendance map[string]string

	// Guests maps a hosting player's name to the number of guests they
	// brought. Counts are always > 0; hosts need not have attended
	// themselves.
	Guests map[string]int

	// Provenance is the free-text submission tag.
	Provenance string

	// Timestamp records when the document was written.
	Timestamp time.Time
}

// TotalUnits is the number of cost-sharing units: attending players plus
// guest counts.
func (g *Game) TotalUnits() int {
	units := len(g.Attendance)
	for _, n := range g.Guests {
		units += n
	}
	return units
}

// Attended reports whether the named player attended this game, using
// collation-aware name matching.
func (g *Game) Attended(player string) bool {
	marker, ok := names.Lookup(g.Attendance, player)
	return ok && AttendedMarker(marker)
}

// GuestCount returns the number of guests hosted by the named player, zero
// if none.
func (g *Game) GuestCount(player string) int {
	n, _ := names.Lookup(g.Guests, player)
	return n
}

// PlayerList renders the comma-joined summary string shown on game screens,
// with guest hosts rendered as "<name>_has_<n>_guests". It is derived on
// demand and deterministic: attendees in name order, then guest entries in
// name order.
func (g *Game) PlayerList() string {
	players := make([]string, 0, len(g.Attendance))
	for name := range g.Attendance {
		players = append(players, name)
	}
	sort.Strings(players)

	hosts := make([]string, 0, len(g.Guests))
	for name := range g.Guests {
		hosts = append(hosts, name)
	}
	sort.Strings(hosts)

	parts := players
	for _, name := range hosts {
		parts = append(parts, fmt.Sprintf("%s_has_%d_guests", name, g.Guests[name]))
	}
	return strings.Join(parts, ",")
}

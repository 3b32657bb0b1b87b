package mongo

import (
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
)

// Document shapes match the collections the data was imported with, so an
// existing deployment can be read in place. Field names with spaces are
// deliberate: they are the legacy keys.

type playerDoc struct {
	Name    string `bson:"playerName"`
	Retiree bool   `bson:"retiree"`
	Comment string `bson:"comment"`
}

func toPlayerDoc(p models.Player) playerDoc {
	return playerDoc{Name: p.Name, Retiree: p.Retiree, Comment: p.Comment}
}

func (d playerDoc) model() models.Player {
	return models.Player{Name: d.Name, Retiree: d.Retiree, Comment: d.Comment}
}

type gameDoc struct {
	ID         string            `bson:"_id"`
	Date       time.Time         `bson:"Date of Game dd-MON-YYYY"`
	Cost       money.Money       `bson:"Cost of Game"`
	CostEach   money.Money       `bson:"Cost Each"`
	Players    int               `bson:"Players"`
	Booker     string            `bson:"Booker"`
	Attendance map[string]string `bson:"attendance"`
	Guests     map[string]int    `bson:"guests,omitempty"`
	PlayerList string            `bson:"PlayerList"`
	Provenance string            `bson:"CFFA"`
	Timestamp  time.Time         `bson:"Timestamp"`
}

func toGameDoc(g *models.Game) gameDoc {
	d := gameDoc{
		ID:         g.ID,
		Date:       g.Date.UTC(),
		Cost:       g.Cost,
		Booker:     g.Booker,
		Attendance: g.Attendance,
		Guests:     g.Guests,
		PlayerList: g.PlayerList(),
		Provenance: g.Provenance,
		Timestamp:  g.Timestamp.UTC(),
	}
	if units := g.TotalUnits(); units > 0 {
		d.Players = units
		d.CostEach = g.Cost.DivInt(units)
	}
	return d
}

func (d gameDoc) model() models.Game {
	g := models.Game{
		ID:         d.ID,
		Date:       d.Date.UTC(),
		Cost:       d.Cost,
		Booker:     d.Booker,
		Attendance: d.Attendance,
		Guests:     d.Guests,
		Provenance: d.Provenance,
		Timestamp:  d.Timestamp.UTC(),
	}
	if g.Attendance == nil {
		g.Attendance = map[string]string{}
	}
	return g
}

type paymentDoc struct {
	Player string      `bson:"Player"`
	Type   string      `bson:"Type"`
	Amount money.Money `bson:"Amount"`
	Date   time.Time   `bson:"Date"`
}

func toPaymentDoc(p models.Payment) paymentDoc {
	return paymentDoc{Player: p.Player, Type: p.Type, Amount: p.Amount, Date: p.Date.UTC()}
}

func (d paymentDoc) model() models.Payment {
	return models.Payment{Player: d.Player, Type: d.Type, Amount: d.Amount, Date: d.Date.UTC()}
}

type adjustmentDoc struct {
	Player string      `bson:"name"`
	Adjust money.Money `bson:"adjust"`
}

func toAdjustmentDoc(a models.Adjustment) adjustmentDoc {
	return adjustmentDoc{Player: a.Player, Adjust: a.Adjust}
}

func (d adjustmentDoc) model() models.Adjustment {
	return models.Adjustment{Player: d.Player, Adjust: d.Adjust}
}

type summaryDoc struct {
	Name          string      `bson:"playerName"`
	GamesAttended int         `bson:"gamesAttended"`
	LastPlayed    time.Time   `bson:"lastPlayed"`
	GamesCost     money.Money `bson:"gamesCost"`
	MoniesPaid    money.Money `bson:"moniespaid"`
	Balance       money.Money `bson:"balance"`
}

func toSummaryDoc(s models.PlayerSummary) summaryDoc {
	return summaryDoc{
		Name:          s.PlayerName,
		GamesAttended: s.GamesAttended,
		LastPlayed:    s.LastPlayed.UTC(),
		GamesCost:     s.GamesCost,
		MoniesPaid:    s.MoniesPaid,
		Balance:       s.Balance,
	}
}

func (d summaryDoc) model() models.PlayerSummary {
	return models.PlayerSummary{
		PlayerName:    d.Name,
		GamesAttended: d.GamesAttended,
		LastPlayed:    d.LastPlayed.UTC(),
		GamesCost:     d.GamesCost,
		MoniesPaid:    d.MoniesPaid,
		Balance:       d.Balance,
	}
}

type settingsDoc struct {
	TeamName string `bson:"TeamName"`
}

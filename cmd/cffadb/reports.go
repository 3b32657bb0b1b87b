package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/GreyPaperclip/cffadb/internal/models"
)

const dateFormat = "2006-01-02"

type summaryCmd struct {
	active   bool
	inactive bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show per-player balances and games played" }
func (*summaryCmd) Usage() string {
	return `cffadb summary [-active | -inactive]

  Prints the team summary table. With -active or -inactive only players
  inside or outside the active window are shown.
`
}
func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.active, "active", false, "only players who played within the active window")
	f.BoolVar(&c.inactive, "inactive", false, "only players outside the active window")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	var rows []models.PlayerSummary
	switch {
	case c.active:
		rows, err = svcs.summary.Active(ctx)
	case c.inactive:
		rows, err = svcs.summary.Inactive(ctx)
	default:
		rows, err = svcs.summary.All(ctx)
	}
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tGAMES\tLAST PLAYED\tCOST\tPAID\tBALANCE")
	for _, r := range rows {
		lastPlayed := r.LastPlayed.Format(dateFormat)
		if r.LastPlayed.Equal(models.NeverPlayed) {
			lastPlayed = "never"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			r.PlayerName, r.GamesAttended, lastPlayed,
			r.GamesCost.Display(), r.MoniesPaid.Display(), r.Balance.Display())
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type ledgerCmd struct {
	player string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "show a player's statement with running balance" }
func (*ledgerCmd) Usage() string {
	return `cffadb ledger -player <name>

  Prints the player's statement, latest entry first.
`
}
func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.player, "player", "", "player name (required)")
}

func (c *ledgerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.player == "" {
		return fail(fmt.Errorf("ledger: -player is required"))
	}
	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	entries, err := svcs.ledger.StatementFor(ctx, c.player)
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCREDIT\tDEBIT\tBALANCE\tDESCRIPTION")
	for _, e := range entries {
		credit, debit := "", ""
		if e.Credit != nil {
			credit = e.Credit.Display()
		}
		if e.Debit != nil {
			debit = e.Debit.Display()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Date.Format(dateFormat), credit, debit, e.Balance.Display(), e.Description)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type gamesCmd struct {
	recent bool
	player string
}

func (*gamesCmd) Name() string     { return "games" }
func (*gamesCmd) Synopsis() string { return "list games, most recent first" }
func (*gamesCmd) Usage() string {
	return `cffadb games [-recent] [-player <name>]

  Lists games with cost, booker and attendees. -recent keeps only games
  inside the active window; -player keeps only games the player attended.
`
}
func (c *gamesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.recent, "recent", false, "only games within the active window")
	f.StringVar(&c.player, "player", "", "only games the player attended")
}

func (c *gamesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	var games []models.Game
	switch {
	case c.player != "":
		games, err = svcs.games.ForPlayer(ctx, c.player)
	case c.recent:
		games, err = svcs.games.Recent(ctx)
	default:
		games, err = svcs.games.All(ctx)
	}
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCOST\tBOOKER\tPLAYERS")
	for i := range games {
		g := &games[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			g.Date.Format(dateFormat), g.Cost.Display(), g.Booker, g.PlayerList())
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type transactionsCmd struct {
	recent bool
	player string
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list payments, most recent first" }
func (*transactionsCmd) Usage() string {
	return `cffadb transactions [-recent] [-player <name>]

  Lists payments. -recent keeps only payments inside the recent-payment
  window; -player lists one player's payments, oldest first.
`
}
func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.recent, "recent", false, "only payments within the recent-payment window")
	f.StringVar(&c.player, "player", "", "one player's payments, oldest first")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	var payments []models.Payment
	switch {
	case c.player != "":
		payments, err = svcs.payments.ForPlayer(ctx, c.player)
	case c.recent:
		payments, err = svcs.payments.Recent(ctx)
	default:
		payments, err = svcs.payments.All(ctx)
	}
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPLAYER\tAMOUNT\tTYPE")
	for _, p := range payments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Date.Format(dateFormat), p.Player, p.Amount.Display(), p.Type)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

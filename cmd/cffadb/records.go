package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
)

type addTransactionCmd struct {
	player string
	amount string
	kind   string
	date   string
}

func (*addTransactionCmd) Name() string     { return "add-transaction" }
func (*addTransactionCmd) Synopsis() string { return "record a payment against a player" }
func (*addTransactionCmd) Usage() string {
	return `cffadb add-transaction -player <name> -amount <decimal> [-type <text>] [-date <YYYY-MM-DD>]

  Records a signed payment. Positive amounts credit the player, negative
  amounts debit. The player's summary is patched in place.
`
}
func (c *addTransactionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.player, "player", "", "player name (required)")
	f.StringVar(&c.amount, "amount", "", "signed decimal amount (required)")
	f.StringVar(&c.kind, "type", "Transfer", "free-text payment type")
	f.StringVar(&c.date, "date", "", "payment date, defaults to today")
}

func (c *addTransactionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.player == "" || c.amount == "" {
		return fail(fmt.Errorf("add-transaction: -player and -amount are required"))
	}
	amount, err := money.FromString(c.amount)
	if err != nil {
		return fail(fmt.Errorf("add-transaction: %w", err))
	}
	date := time.Now().UTC()
	if c.date != "" {
		date, err = time.ParseInLocation(dateFormat, c.date, time.UTC)
		if err != nil {
			return fail(fmt.Errorf("add-transaction: %w", err))
		}
	}

	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	message, err := svcs.payments.AddTransaction(ctx, models.Payment{
		Player: c.player,
		Type:   c.kind,
		Amount: amount,
		Date:   date,
	})
	fmt.Println(message)
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type teamNameCmd struct {
	set string
}

func (*teamNameCmd) Name() string     { return "team-name" }
func (*teamNameCmd) Synopsis() string { return "show or update the team name" }
func (*teamNameCmd) Usage() string {
	return `cffadb team-name [-set <name>]

  Without -set, prints the configured team name.
`
}
func (c *teamNameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "new team name")
}

func (c *teamNameCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	if c.set != "" {
		message, err := svcs.team.Rename(ctx, c.set)
		if err != nil {
			return fail(err)
		}
		fmt.Println(message)
		return subcommands.ExitSuccess
	}

	name, err := svcs.team.Name(ctx)
	if err != nil {
		return fail(err)
	}
	if name == "" {
		fmt.Println("No team name configured.")
	} else {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}

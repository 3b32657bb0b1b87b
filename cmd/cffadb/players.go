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

type playersCmd struct {
	add        string
	comment    string
	retire     string
	reactivate string
	rename     string
	to         string
}

func (*playersCmd) Name() string     { return "players" }
func (*playersCmd) Synopsis() string { return "list and manage team players" }
func (*playersCmd) Usage() string {
	return `cffadb players [-add <name> [-comment <text>]] [-retire <name>]
               [-reactivate <name>] [-rename <name> -to <new name>]

  Without flags, lists every player. Players are retired, never deleted;
  renames cascade through games, payments and summaries.
`
}
func (c *playersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "register a new player")
	f.StringVar(&c.comment, "comment", "", "comment for -add")
	f.StringVar(&c.retire, "retire", "", "mark a player as retired")
	f.StringVar(&c.reactivate, "reactivate", "", "clear a player's retired flag")
	f.StringVar(&c.rename, "rename", "", "rename a player (requires -to)")
	f.StringVar(&c.to, "to", "", "new name for -rename")
}

func (c *playersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	switch {
	case c.add != "":
		message, err := svcs.players.Add(ctx, models.Player{Name: c.add, Comment: c.comment})
		fmt.Println(message)
		if err != nil {
			return subcommands.ExitFailure
		}
	case c.retire != "":
		message, err := svcs.players.Retire(ctx, c.retire)
		fmt.Println(message)
		if err != nil {
			return subcommands.ExitFailure
		}
	case c.reactivate != "":
		message, err := svcs.players.Reactivate(ctx, c.reactivate)
		fmt.Println(message)
		if err != nil {
			return subcommands.ExitFailure
		}
	case c.rename != "":
		if c.to == "" {
			return fail(fmt.Errorf("players: -rename requires -to"))
		}
		player, err := svcs.store.GetPlayer(ctx, c.rename)
		if err != nil {
			return fail(err)
		}
		player.Name = c.to
		message, err := svcs.players.Edit(ctx, c.rename, *player)
		fmt.Println(message)
		if err != nil {
			return subcommands.ExitFailure
		}
	default:
		players, err := svcs.players.All(ctx)
		if err != nil {
			return fail(err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PLAYER\tRETIRED\tCOMMENT")
		for _, p := range players {
			retired := ""
			if p.Retiree {
				retired = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, retired, p.Comment)
		}
		w.Flush()
	}
	return subcommands.ExitSuccess
}

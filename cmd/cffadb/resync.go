package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type resyncCmd struct{}

func (*resyncCmd) Name() string { return "resync" }
func (*resyncCmd) Synopsis() string {
	return "recompute every player summary from games, payments and adjustments"
}
func (*resyncCmd) Usage() string {
	return `cffadb resync

  Drops the summary collection and rebuilds it from source records. Safe to
  re-run at any time.
`
}
func (*resyncCmd) SetFlags(*flag.FlagSet) {}

func (*resyncCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := openServices(ctx)
	if err != nil {
		return fail(err)
	}
	defer svcs.store.Close()

	if err := svcs.summary.Rebuild(ctx); err != nil {
		return fail(err)
	}
	fmt.Println("Summaries rebuilt.")
	return subcommands.ExitSuccess
}

// Command cffadb is the admin CLI for the football group ledger: rebuild
// summaries, inspect balances and statements, and record transactions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/GreyPaperclip/cffadb/internal/config"
	"github.com/GreyPaperclip/cffadb/internal/service"
	"github.com/GreyPaperclip/cffadb/internal/storage"
	"github.com/GreyPaperclip/cffadb/internal/storage/mongo"
	"github.com/GreyPaperclip/cffadb/internal/storage/sqlite"
	"github.com/GreyPaperclip/cffadb/pkg/logging"
)

// services bundles everything a subcommand may need.
type services struct {
	store    storage.Store
	games    *service.GameService
	players  *service.PlayerService
	payments *service.PaymentService
	summary  *service.SummaryService
	ledger   *service.LedgerService
	team     *service.TeamService
}

// openServices loads configuration, connects the configured backend and
// wires the service layer. The caller must Close the returned store.
func openServices(ctx context.Context) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel)

	var store storage.Store
	if cfg.MongoURI != "" {
		store, err = mongo.New(ctx, cfg.MongoURI, cfg.MongoDB, cfg.TenantPrefix)
	} else {
		store, err = sqlite.New(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	summary := service.NewSummaryService(store, cfg.ActiveWindow())
	return &services{
		store:    store,
		games:    service.NewGameService(store, summary, cfg.ActiveWindow()),
		players:  service.NewPlayerService(store),
		payments: service.NewPaymentService(store, cfg.RecentPaymentWindow()),
		summary:  summary,
		ledger:   service.NewLedgerService(store),
		team:     service.NewTeamService(store),
	}, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&resyncCmd{}, "maintenance")
	commander.Register(&summaryCmd{}, "reports")
	commander.Register(&ledgerCmd{}, "reports")
	commander.Register(&gamesCmd{}, "reports")
	commander.Register(&transactionsCmd{}, "reports")
	commander.Register(&addTransactionCmd{}, "records")
	commander.Register(&playersCmd{}, "records")
	commander.Register(&teamNameCmd{}, "records")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/knowledge"
	"main/internal/ledger"
	"main/internal/nlu"
	"main/internal/notary"
	"main/internal/ops"
	"main/internal/retrieval"
	"main/internal/trade"
	"main/internal/venue"
)

type emptyLogger struct{}

func (emptyLogger) Infof(string, ...interface{})  {}
func (emptyLogger) Debugf(string, ...interface{}) {}
func (emptyLogger) Errorf(string, ...interface{}) {}

func main() {
	if err := run(); err != nil {
		log.Printf("advisor: %v", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to JSON config")
	profileAddr := flag.String("pyroscope", "", "Pyroscope server address (empty=disabled)")
	flag.Parse()

	if *profileAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "advisor",
			ServerAddress:   *profileAddr,
			Logger:          emptyLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	store, err := loadFacts(cfg.Facts.Path)
	if err != nil {
		return err
	}
	composer := retrieval.NewComposer(store)

	var equity, crypto venue.Client
	if cfg.Equity.Configured() {
		equity = venue.NewEquity(http.DefaultClient, cfg.Equity.BaseURL, cfg.Equity.Key, cfg.Equity.Secret)
	}
	if cfg.Crypto.Configured() {
		crypto = venue.NewCrypto(http.DefaultClient, cfg.Crypto.BaseURL, cfg.Crypto.Key, cfg.Crypto.Secret)
	}
	coordinator := trade.NewCoordinator(equity, crypto)

	verification, closeStore, err := buildLedger(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	logs.Infof("advisor ready: facts=%d equity=%v crypto=%v verification=%v",
		store.Len(), equity != nil, crypto != nil, verification != nil)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	ctx := context.Background()
	for {
		fmt.Print("> ")
		select {
		case <-sys.Shutdown():
			logs.Info("shutting down")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			handle(ctx, line, composer, coordinator, verification)
		}
	}
}

func handle(ctx context.Context, line string, composer *retrieval.Composer, coordinator *trade.Coordinator, verification *ledger.Log) {
	intent, slots, err := nlu.Extract(line)
	if err != nil {
		var incomplete *nlu.IncompleteCommandError
		if errors.As(err, &incomplete) {
			fmt.Printf("incomplete trade command, missing: %s\n", strings.Join(incomplete.Missing, ", "))
			return
		}
		fmt.Printf("could not read that: %v\n", err)
		return
	}

	switch intent {
	case nlu.IntentTradeCommand:
		executeTrade(ctx, slots, coordinator, verification)
	case nlu.IntentPortfolioQuery:
		showPortfolio(ctx, coordinator)
	case nlu.IntentUnclassified:
		fmt.Println("I can answer questions about risk profiles, allocations, asset comparisons and mistakes, or run: execute trade: buy 10 AAPL")
	default:
		bundle, err := composer.Compose(intent, slots)
		if err != nil {
			fmt.Printf("retrieval failed: %v\n", err)
			return
		}
		printJSON(bundle)
	}
}

func executeTrade(ctx context.Context, slots nlu.Slots, coordinator *trade.Coordinator, verification *ledger.Log) {
	order, err := coordinator.Submit(ctx, trade.Request{
		Symbol:   slots.Symbol,
		Side:     tradeSide(slots.Side),
		Quantity: slots.Quantity,
	})
	if err != nil {
		var rejected *venue.RejectedError
		if errors.As(err, &rejected) {
			fmt.Printf("order %s rejected by %s: %s\n", order.ID, rejected.Venue, rejected.Reason)
			return
		}
		fmt.Printf("trade failed: %v\n", err)
		return
	}
	fmt.Printf("order %s %s on %s: %s %s %s\n",
		order.ID, order.Status, order.Venue, order.Side, order.Quantity, order.Symbol)

	if verification == nil {
		return
	}
	entry, err := verification.Record(ctx, order)
	if err != nil {
		// The trade stands either way; only the audit trail is missing.
		fmt.Printf("warning: trade executed but not recorded: %v\n", err)
		return
	}
	fmt.Printf("recorded: %s\n", notary.ExplorerURL(entry.Reference))
}

func showPortfolio(ctx context.Context, coordinator *trade.Coordinator) {
	holdings, err := coordinator.Portfolio(ctx)
	if err != nil {
		fmt.Printf("portfolio unavailable: %v\n", err)
		return
	}
	printJSON(struct {
		Holdings []trade.Holding `json:"holdings"`
		Pending  []trade.Order   `json:"pendingOrders"`
	}{Holdings: holdings, Pending: coordinator.Pending()})
}

func tradeSide(side nlu.Side) venue.Side {
	if side == nlu.SideSell {
		return venue.SideSell
	}
	return venue.SideBuy
}

func printJSON(v interface{}) {
	out, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("render failed: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func loadConfig(path string) (ops.FileConfig, error) {
	if path == "" {
		return ops.Default(), nil
	}
	return ops.Load(path)
}

// loadFacts builds the knowledge store from the built-in seed plus an
// optional authored facts file layered on top.
func loadFacts(path string) (*knowledge.Store, error) {
	inputs := knowledge.Seed()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var extra []knowledge.AuthoredFact
		if err := sonic.Unmarshal(data, &extra); err != nil {
			return nil, err
		}
		inputs = append(inputs, extra...)
	}
	return knowledge.Load(inputs)
}

func buildLedger(cfg ops.FileConfig) (*ledger.Log, func(), error) {
	if !cfg.Notary.Configured() {
		logs.Info("no notary account configured, trades will not be recorded")
		return nil, func() {}, nil
	}
	anchor := notary.NewClient(http.DefaultClient, cfg.Notary.BaseURL, cfg.Notary.Key, cfg.Notary.Account)

	if !cfg.Database.Configured() {
		return ledger.NewLog(ledger.NewMemoryStore(), anchor), func() {}, nil
	}
	store, err := ledger.NewPostgresStore(ledger.PostgresOption{
		Host:       cfg.Database.Host,
		Port:       cfg.Database.Port,
		User:       cfg.Database.User,
		Password:   cfg.Database.Password,
		Database:   cfg.Database.Database,
		SSLMode:    cfg.Database.SSLMode,
		ConnString: cfg.Database.ConnString,
	})
	if err != nil {
		return nil, nil, err
	}
	return ledger.NewLog(store, anchor), func() { _ = store.Close() }, nil
}

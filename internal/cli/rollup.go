package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/JasVita/wealthpilot-portal/internal/api/handlers"
	"github.com/JasVita/wealthpilot-portal/internal/api/request"
	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// periodFlags are the rollup request parameters shared by rollup and summary.
type periodFlags struct {
	client    int
	scope     string
	year      string
	month     string
	monthDate string
	from      string
	to        string
	custodian string
	account   string
}

func (p *periodFlags) register(f *flag.FlagSet, defaultScope string) {
	f.IntVar(&p.client, "client", 0, "Client ID.")
	f.StringVar(&p.scope, "scope", defaultScope, "cash, or all for every category.")
	f.StringVar(&p.year, "year", "", "Year of the month to aggregate (with -month).")
	f.StringVar(&p.month, "month", "", "Month to aggregate, 1-12 (with -year).")
	f.StringVar(&p.monthDate, "month-date", "", "Month to aggregate as YYYY-MM or YYYY-MM-DD.")
	f.StringVar(&p.from, "from", "", "Start of a date window (YYYY-MM-DD).")
	f.StringVar(&p.to, "to", "", "End of a date window (YYYY-MM-DD).")
	f.StringVar(&p.custodian, "custodian", "", "Restrict to one bank.")
	f.StringVar(&p.account, "account", "", "Restrict to one account number.")
}

// query validates the flags the same way the HTTP endpoint validates its parameters.
func (p *periodFlags) query() (request.AssetQuery, error) {
	v := url.Values{}
	if p.client != 0 {
		v.Set("client_id", strconv.Itoa(p.client))
	}
	for key, val := range map[string]string{
		"scope": p.scope, "year": p.year, "month": p.month, "month_date": p.monthDate,
		"from": p.from, "to": p.to, "custodian": p.custodian, "account": p.account,
	} {
		if val != "" {
			v.Set(key, val)
		}
	}
	return request.ParseAssetQuery(v, model.ScopeCash)
}

func (p *periodFlags) run(ctx context.Context) (model.AssetRollup, error) {
	q, err := p.query()
	if err != nil {
		return model.AssetRollup{}, err
	}

	s, err := openStore(ctx)
	if err != nil {
		return model.AssetRollup{}, err
	}
	defer s.Close()

	return s.assets.Rollup(ctx, q.Period, q.Scope)
}

type rollupCmd struct {
	periodFlags
}

func (*rollupCmd) Name() string     { return "rollup" }
func (*rollupCmd) Synopsis() string { return "print a client's rollup as JSON" }
func (*rollupCmd) Usage() string {
	return `wealthctl rollup -client <id> [-scope cash|all] [-year Y -month M | -month-date D] [-from D] [-to D] [-custodian B] [-account A]

  Prints the same envelope as GET /api/assets/cash.
`
}

func (c *rollupCmd) SetFlags(f *flag.FlagSet) { c.register(f, "cash") }

func (c *rollupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.run(ctx)
	if err != nil {
		return fail("Error computing rollup: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(handlers.NewRollupResponse(r)); err != nil {
		return fail("Error encoding rollup: %v", err)
	}
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	periodFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a client's rollup as tables" }
func (*summaryCmd) Usage() string {
	return `wealthctl summary -client <id> [-scope cash|all] [period flags]

  Renders the rollup as markdown tables: totals by currency, by bank and by
  account. Accepts the same period flags as rollup.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.register(f, "all") }

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.run(ctx)
	if err != nil {
		return fail("Error computing rollup: %v", err)
	}
	printMarkdown(SummaryMarkdown(c.client, r))
	return subcommands.ExitSuccess
}

type monthsCmd struct {
	client int
}

func (*monthsCmd) Name() string     { return "months" }
func (*monthsCmd) Synopsis() string { return "list the months a client has statements for" }
func (*monthsCmd) Usage() string {
	return `wealthctl months -client <id>

  Lists, newest first, the months the default period search considers.
`
}

func (c *monthsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.client, "client", 0, "Client ID.")
}

func (c *monthsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client <= 0 {
		fmt.Fprintln(os.Stderr, "months requires -client")
		return subcommands.ExitUsageError
	}

	s, err := openStore(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	months, err := s.assets.AvailableMonths(ctx, c.client)
	if err != nil {
		return fail("Error listing months: %v", err)
	}
	for _, m := range months {
		fmt.Println(m.MonthDate())
	}
	return subcommands.ExitSuccess
}

type snapshotCmd struct{}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "store a rollup snapshot for every client now" }
func (*snapshotCmd) Usage() string {
	return `wealthctl snapshot

  Runs the scheduled snapshot job once.
`
}

func (*snapshotCmd) SetFlags(*flag.FlagSet) {}

func (*snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	n, err := s.snapshots.Run(ctx)
	fmt.Printf("stored %d snapshots\n", n)
	if err != nil {
		return fail("Some clients failed: %v", err)
	}
	return subcommands.ExitSuccess
}

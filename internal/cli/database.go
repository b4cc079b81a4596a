package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/model"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `wealthctl migrate

  Applies every pending migration to the configured database and prints the
  resulting schema version.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	v, err := database.SchemaVersion(ctx, s.db, s.dialect)
	if err != nil {
		return fail("Error reading schema version: %v", err)
	}
	fmt.Printf("%s schema at version %d\n", s.dialect, v)
	return subcommands.ExitSuccess
}

type importCmd struct {
	client int
	name   string
	file   string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "load statement blocks from a JSON file" }
func (*importCmd) Usage() string {
	return `wealthctl import -client <id> [-name <name>] -f <file.json>

  Stores bank blocks for a client. The file holds either an array of blocks
  or an object with a "tableData" array. Every block needs an as_of_date.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.client, "client", 0, "Client ID the blocks belong to.")
	f.StringVar(&c.name, "name", "", "Client name, used when the client does not exist yet.")
	f.StringVar(&c.file, "f", "", "JSON file to import. Use - for stdin.")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client <= 0 || c.file == "" {
		fmt.Fprintln(os.Stderr, "import requires -client and -f")
		return subcommands.ExitUsageError
	}

	var raw []byte
	var err error
	if c.file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(c.file)
	}
	if err != nil {
		return fail("Error reading %s: %v", c.file, err)
	}

	blocks, err := DecodeBlocks(raw)
	if err != nil {
		return fail("Error decoding %s: %v", c.file, err)
	}

	s, err := openStore(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	name := c.name
	if name == "" {
		name = fmt.Sprintf("Client %d", c.client)
	}
	if err := s.clients.EnsureClient(ctx, model.Client{ID: c.client, Name: name}); err != nil {
		return fail("Error creating client: %v", err)
	}

	for i, b := range blocks {
		if _, err := s.statement.InsertBlock(ctx, c.client, b); err != nil {
			return fail("Error storing block %d (%s %s): %v", i, b.Bank(), b.AccountNumber(), err)
		}
	}
	fmt.Printf("imported %d blocks for client %d\n", len(blocks), c.client)
	return subcommands.ExitSuccess
}

// DecodeBlocks accepts either a JSON array of blocks or an object with a tableData array.
func DecodeBlocks(raw []byte) ([]model.BankBlock, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var blocks []model.BankBlock
		if err := json.Unmarshal([]byte(trimmed), &blocks); err != nil {
			return nil, err
		}
		return blocks, nil
	}

	var td model.TableData
	if err := json.Unmarshal([]byte(trimmed), &td); err != nil {
		return nil, err
	}
	if td.TableData == nil {
		return nil, fmt.Errorf("no tableData array found")
	}
	return td.TableData, nil
}

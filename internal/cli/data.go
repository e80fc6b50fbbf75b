package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/seed"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/transfer"
)

// cityList collects a repeatable -city flag.
type cityList []string

func (l *cityList) String() string { return strings.Join(*l, ",") }

func (l *cityList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type importCmd struct {
	env    *Env
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import price records from a file" }
func (*importCmd) Usage() string {
	return `housing import [-format tuple|json] <file>

  Reads a payload of 5-field records (city, year, price, description, wiki link)
  from file, or from stdin when file is "-". Either every record is stored or,
  if any record is malformed, none is.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Payload format, tuple or json (detected when empty).")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usage("import takes exactly one file")
	}
	format, err := transfer.ParseFormatName(c.format)
	if err != nil {
		return c.env.usage("%v", err)
	}

	payload, err := readPayload(f.Arg(0))
	if err != nil {
		return c.env.fail(err)
	}

	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	result, err := c.env.transfer.Import(ctx, payload, format)
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "imported %d records for %d cities\n", result.Records, len(result.Cities))
	return subcommands.ExitSuccess
}

func readPayload(name string) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

type exportCmd struct {
	env    *Env
	format string
	cities cityList
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export price records" }
func (*exportCmd) Usage() string {
	return `housing export [-format tuple|json] [-city <city>]... [-o <file>]

  Writes every record, or those of the given cities, ordered by city and year.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "Payload format, tuple or json.")
	f.Var(&c.cities, "city", "City to export; repeat for several (all cities when omitted).")
	f.StringVar(&c.output, "o", "", "Output file (stdout when empty).")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return c.env.usage("export takes no arguments")
	}
	format, err := transfer.ParseFormatName(c.format)
	if err != nil {
		return c.env.usage("%v", err)
	}

	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	payload, err := c.env.transfer.Export(ctx, format, c.cities...)
	if err != nil {
		return c.env.fail(err)
	}

	if c.output == "" {
		fmt.Fprint(c.env.Out, payload)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, []byte(payload), 0o644); err != nil {
		return c.env.fail(fmt.Errorf("failed to write %s: %w", c.output, err))
	}
	return subcommands.ExitSuccess
}

type seedCmd struct {
	env *Env
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "load the demo dataset" }
func (*seedCmd) Usage() string {
	return `housing seed

  Imports the bundled demo prices of Kaliningrad and Moscow for 2020-2024.
`
}

func (*seedCmd) SetFlags(*flag.FlagSet) {}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	result, err := seed.Load(ctx, c.env.transfer)
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "seeded %d records for %d cities\n", result.Records, len(result.Cities))
	return subcommands.ExitSuccess
}

type migrateCmd struct {
	env *Env
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `housing migrate
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	version, err := c.env.system.SchemaVersion(ctx)
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "schema version %d\n", version)
	return subcommands.ExitSuccess
}

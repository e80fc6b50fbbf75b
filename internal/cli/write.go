package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/request"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

type setCmd struct {
	env         *Env
	description string
	wikiLink    string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "store the average price of a city for one year" }
func (*setCmd) Usage() string {
	return `housing set [-description <text>] [-wiki <url>] <city> <year> <price>

  Stores the price, replacing any value already recorded for that year.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "description", "", "Description of the city.")
	f.StringVar(&c.wikiLink, "wiki", "", "Wikipedia link of the city.")
}

func (c *setCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 3 {
		return c.env.usage("set takes <city> <year> <price>")
	}

	year, err := validation.ParseYear(f.Arg(1))
	if err != nil {
		return c.env.usage("%v", err)
	}
	price, err := validation.ParsePrice(f.Arg(2))
	if err != nil {
		return c.env.usage("%v", err)
	}

	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	record, err := c.env.price.UpsertPrice(ctx, f.Arg(0), year, request.UpsertPriceRequest{
		AveragePrice: &price,
		Description:  c.description,
		WikiLink:     c.wikiLink,
	})
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "%s %d\t%s\n", record.City, record.Year, formatPrice(record.AveragePrice))
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	env *Env
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove every record of a city" }
func (*deleteCmd) Usage() string {
	return `housing delete <city>
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usage("delete takes exactly one city")
	}
	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	result, err := c.env.price.DeleteCity(ctx, f.Arg(0))
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "deleted %d records of %s\n", result.Deleted, result.City)
	return subcommands.ExitSuccess
}

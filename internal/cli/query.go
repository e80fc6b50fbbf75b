package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

type citiesCmd struct {
	env   *Env
	query string
}

func (*citiesCmd) Name() string     { return "cities" }
func (*citiesCmd) Synopsis() string { return "list cities with recorded prices" }
func (*citiesCmd) Usage() string {
	return `housing cities [-q <substring>]

  Lists every city alphabetically. With -q, only cities whose name contains
  the substring, ignoring case, are listed.
`
}

func (c *citiesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Case-insensitive substring to filter city names.")
}

func (c *citiesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	var cities []string
	if strings.TrimSpace(c.query) != "" {
		cities = c.env.price.FilterCities(c.query)
	} else {
		var err error
		if cities, err = c.env.price.ListCities(ctx); err != nil {
			return c.env.fail(err)
		}
	}

	for _, city := range cities {
		fmt.Fprintln(c.env.Out, city)
	}
	return subcommands.ExitSuccess
}

type seriesCmd struct {
	env *Env
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "print the yearly price history of a city" }
func (*seriesCmd) Usage() string {
	return `housing series <city>
`
}

func (*seriesCmd) SetFlags(*flag.FlagSet) {}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usage("series takes exactly one city")
	}
	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	series, err := c.env.price.GetSeries(ctx, f.Arg(0))
	if err != nil {
		return c.env.fail(err)
	}

	for _, p := range series.Points {
		fmt.Fprintf(c.env.Out, "%d\t%s\n", p.Year, formatPrice(p.AveragePrice))
	}
	return subcommands.ExitSuccess
}

type infoCmd struct {
	env *Env
}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "print the description and wiki link of a city" }
func (*infoCmd) Usage() string {
	return `housing info <city>
`
}

func (*infoCmd) SetFlags(*flag.FlagSet) {}

func (c *infoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usage("info takes exactly one city")
	}
	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	info, err := c.env.price.GetCityInfo(ctx, f.Arg(0))
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintln(c.env.Out, info.Description)
	if info.WikiLink != "" {
		fmt.Fprintln(c.env.Out, info.WikiLink)
	}
	return subcommands.ExitSuccess
}

type forecastCmd struct {
	env  *Env
	year int
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "forecast the price of a city for a year" }
func (*forecastCmd) Usage() string {
	return `housing forecast [-year <year>] <city>

  Fits a straight line through the price history and projects it to the
  target year, together with an optimistic (+15%) and a pessimistic (-15%)
  line. Without -year the year after the latest record is used.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Target year (defaults to the year after the latest record).")
}

func (c *forecastCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usage("forecast takes exactly one city")
	}
	if c.year != 0 {
		if err := validation.ValidateYear(c.year); err != nil {
			return c.env.usage("%v", err)
		}
	}
	if err := c.env.open(ctx); err != nil {
		return c.env.fail(err)
	}

	result, err := c.env.forecast.Forecast(ctx, f.Arg(0), c.year)
	if err != nil {
		return c.env.fail(err)
	}

	fmt.Fprintf(c.env.Out, "%s %d\n", result.City, result.TargetYear)
	fmt.Fprintf(c.env.Out, "baseline\t%s\n", formatWhole(result.Baseline))
	fmt.Fprintf(c.env.Out, "optimistic\t%s\n", formatWhole(result.Optimistic))
	fmt.Fprintf(c.env.Out, "pessimistic\t%s\n", formatWhole(result.Pessimistic))
	return subcommands.ExitSuccess
}

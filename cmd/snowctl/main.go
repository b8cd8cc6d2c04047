package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"snowland_hotels/internal/adapters/observability"
	"snowland_hotels/internal/app"
	"snowland_hotels/internal/bootstrap"
	"snowland_hotels/internal/domain"
	"snowland_hotels/internal/shared"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newApp writes command output to out; logs and errors go to errOut so
// output stays pipeable.
func newApp(out, errOut io.Writer) *cli.App {
	var deps *bootstrap.Deps
	return &cli.App{
		Name:      "snowctl",
		Usage:     "Browse and administer the hotel catalog",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Usage:   "Record store backend (badger, redis, mysql, memory)",
				EnvVars: []string{"STORE_BACKEND"},
				Value:   "badger",
			},
			&cli.BoolFlag{
				Name:  "no-delay",
				Usage: "Skip the simulated round-trip latency",
			},
		},
		Before: func(c *cli.Context) error {
			cfg := shared.Load()
			log.Logger = observability.NewLogger(errOut, cfg.AppEnv, cfg.LogLevel)
			cfg.StoreBackend = c.String("store")
			if c.Bool("no-delay") {
				cfg.FetchDelay, cfg.LocationDelay, cfg.MutationDelay = 0, 0, 0
			}
			d, err := bootstrap.Build(cfg)
			if err != nil {
				return err
			}
			deps = d
			return nil
		},
		After: func(*cli.Context) error {
			if deps == nil {
				return nil
			}
			return deps.Close()
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List hotels of a destination, or search every destination",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Value: string(domain.Destinations[0])},
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}},
				},
				Action: func(c *cli.Context) error {
					vs := app.NewViewState(time.Now())
					vs.SelectLocation(domain.Location(c.String("location")))
					vs.Query = c.String("query")
					all, err := deps.Repo.FetchAll(c.Context)
					if err != nil {
						return err
					}
					return printTable(c.App.Writer, vs.Displayed(all))
				},
			},
			{
				Name:      "show",
				Usage:     "Print one hotel as JSON",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					h, err := find(c.Context, deps.Repo, c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, h)
				},
			},
			{
				Name:  "add",
				Usage: "Create a hotel",
				Flags: hotelFlags(),
				Action: func(c *cli.Context) error {
					h, err := app.ParseHotelForm(formFromFlags(c, nil))
					if err != nil {
						return err
					}
					h.ID = uuid.NewString()
					all, err := deps.Repo.Create(c.Context, h)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "created %s (%d hotels)\n", h.ID, len(all))
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "Change fields of an existing hotel",
				ArgsUsage: "<id>",
				Flags:     hotelFlags(),
				Action: func(c *cli.Context) error {
					cur, err := find(c.Context, deps.Repo, c.Args().First())
					if err != nil {
						return err
					}
					h, err := app.ParseHotelForm(formFromFlags(c, &cur))
					if err != nil {
						return err
					}
					h.ID = cur.ID
					if _, err := deps.Repo.Update(c.Context, h); err != nil {
						return err
					}
					deps.Advice.ForgetHotel(c.Context, h.ID)
					fmt.Fprintf(c.App.Writer, "updated %s\n", h.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Remove a hotel",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					all, err := deps.Repo.Delete(c.Context, id)
					if err != nil {
						return err
					}
					deps.Advice.ForgetHotel(c.Context, id)
					fmt.Fprintf(c.App.Writer, "%d hotels remain\n", len(all))
					return nil
				},
			},
			{
				Name:      "booking",
				Usage:     "Print the booking link for a date",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD (default today)"},
				},
				Action: func(c *cli.Context) error {
					vs := app.NewViewState(time.Now())
					if d := c.String("date"); d != "" {
						if err := vs.SetBookingDate(d); err != nil {
							return err
						}
					}
					h, err := find(c.Context, deps.Repo, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, vs.BookingLink(h))
					return nil
				},
			},
			{
				Name:      "tips",
				Usage:     "Ask for winter travel tips for a destination",
				ArgsUsage: "<location>",
				Action: func(c *cli.Context) error {
					loc := domain.Location(c.Args().First())
					if !domain.IsDestination(loc) {
						return fmt.Errorf("%w: unknown destination %q", domain.ErrInvalidInput, loc)
					}
					fmt.Fprintln(c.App.Writer, deps.Advice.DestinationTips(c.Context, loc))
					return nil
				},
			},
			{
				Name:      "summary",
				Usage:     "Ask for a short recommendation of a hotel",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					h, err := find(c.Context, deps.Repo, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, deps.Advice.HotelSummary(c.Context, h))
					return nil
				},
			},
		},
	}
}

func hotelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "location"},
		&cli.StringFlag{Name: "stars"},
		&cli.StringFlag{Name: "rating"},
		&cli.StringFlag{Name: "tags", Usage: "comma-separated"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "image-url"},
		&cli.StringFlag{Name: "booking-url"},
		&cli.StringFlag{Name: "price-range"},
	}
}

// formFromFlags builds form input from the set flags on top of base.
func formFromFlags(c *cli.Context, base *domain.Hotel) map[string]any {
	in := map[string]any{}
	if base != nil {
		in = map[string]any{
			"name": base.Name, "location": string(base.Location),
			"stars": float64(base.Stars), "rating": base.Rating,
			"tags": base.Tags, "description": base.Description,
			"imageUrl": base.ImageURL, "bookingUrl": base.BookingURL, "priceRange": base.PriceRange,
		}
	}
	for flag, field := range map[string]string{
		"name": "name", "location": "location", "stars": "stars", "rating": "rating",
		"tags": "tags", "description": "description", "image-url": "imageUrl",
		"booking-url": "bookingUrl", "price-range": "priceRange",
	} {
		if c.IsSet(flag) {
			in[field] = c.String(flag)
		}
	}
	return in
}

func find(ctx context.Context, repo *app.Repository, id string) (domain.Hotel, error) {
	if id == "" {
		return domain.Hotel{}, fmt.Errorf("%w: hotel id is required", domain.ErrInvalidInput)
	}
	all, err := repo.FetchAll(ctx)
	if err != nil {
		return domain.Hotel{}, err
	}
	h, ok := all.Find(id)
	if !ok {
		return domain.Hotel{}, fmt.Errorf("hotel %s: %w", id, domain.ErrNotFound)
	}
	return h, nil
}

func printTable(w io.Writer, hs domain.Collection) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tSTARS\tRATING\tTAGS")
	for _, h := range hs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.1f\t%s\n", h.ID, h.Name, h.Location, h.Stars, h.Rating, strings.Join(h.Tags, ","))
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/pkordes/eld-planner/backend/internal/dayindex"
	"github.com/pkordes/eld-planner/backend/internal/interval"
	"github.com/pkordes/eld-planner/backend/internal/logsheet"
	"github.com/pkordes/eld-planner/backend/internal/planner"
	"github.com/pkordes/eld-planner/backend/internal/session"
)

var tripFlags = []cli.Flag{
	&cli.Int64Flag{Name: "current", Usage: "current location id (default: first location)"},
	&cli.Int64Flag{Name: "pickup", Usage: "pickup location id (default: second location)"},
	&cli.Int64Flag{Name: "dropoff", Usage: "dropoff location id (default: third location)"},
	&cli.Float64Flag{Name: "cycle", Usage: "hours already used in the 70-hour cycle"},
	&cli.IntFlag{Name: "day", Usage: "index of the daily log to show"},
}

func newClient(c *cli.Context) (*planner.Client, error) {
	return planner.New(planner.Options{
		BaseURL:  c.String("planner-url"),
		Timeout:  c.Duration("timeout"),
		DriverID: c.Int64("driver"),
	})
}

func displayZone(c *cli.Context) (*time.Location, error) {
	loc, err := time.LoadLocation(c.String("tz"))
	if err != nil {
		return nil, fmt.Errorf("invalid --tz: %w", err)
	}
	return loc, nil
}

func locationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "locations",
		Usage: "list the selectable locations",
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			locs, err := client.ListLocations(c.Context)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLAT\tLON")
			for _, l := range locs {
				fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\n", l.ID, l.Name, l.Latitude, l.Longitude)
			}
			return tw.Flush()
		},
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "plan a trip and print its summary, stops and one daily log",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "dump the full plan instead of the summary"},
		}, tripFlags...),
		Action: func(c *cli.Context) error {
			loc, err := displayZone(c)
			if err != nil {
				return err
			}
			ctrl, err := submit(c)
			if err != nil {
				return err
			}

			if c.Bool("raw") {
				plan, _ := ctrl.Plan()
				_, err := pretty.Fprintf(c.App.Writer, "%# v\n", plan)
				return err
			}

			printPlan(c.App.Writer, ctrl.Snapshot(), loc)
			view, err := ctrl.Day(ctrl.Snapshot().SelectedDay, loc)
			if err != nil {
				// A plan with no daily logs has nothing more to show.
				return nil
			}
			printDay(c.App.Writer, view)
			return nil
		},
	}
}

func sheetCommand() *cli.Command {
	return &cli.Command{
		Name:  "sheet",
		Usage: "plan a trip and write one daily log sheet as PDF",
		Flags: append([]cli.Flag{
			&cli.PathFlag{Name: "out", Usage: "output file", Value: "log.pdf"},
		}, tripFlags...),
		Action: func(c *cli.Context) error {
			loc, err := displayZone(c)
			if err != nil {
				return err
			}
			ctrl, err := submit(c)
			if err != nil {
				return err
			}

			plan, _ := ctrl.Plan()
			l, err := ctrl.Log(ctrl.Snapshot().SelectedDay)
			if err != nil {
				return fmt.Errorf("no daily log %d: %w", c.Int("day"), err)
			}

			f, err := os.Create(c.Path("out"))
			if err != nil {
				return err
			}
			if err := logsheet.Write(f, logsheet.Sheet{Trip: plan.Trip, Log: l, Location: loc}); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "wrote %s\n", c.Path("out"))
			return nil
		},
	}
}

// submit runs one session to ready: load locations, fill unset ids from the
// defaults, submit, then move the day cursor to --day.
func submit(c *cli.Context) (*session.Controller, error) {
	client, err := newClient(c)
	if err != nil {
		return nil, err
	}
	ctrl := session.NewController(session.Deps{Planner: client, Locations: client})
	if err := ctrl.LoadLocations(c.Context); err != nil {
		return nil, err
	}

	d := ctrl.Snapshot().Defaults
	req := session.SubmitRequest{
		CurrentLocationID: orInt64(c.Int64("current"), d.CurrentLocationID),
		PickupLocationID:  orInt64(c.Int64("pickup"), d.PickupLocationID),
		DropoffLocationID: orInt64(c.Int64("dropoff"), d.DropoffLocationID),
		CycleHours:        c.Float64("cycle"),
	}
	if err := ctrl.Submit(c.Context, req); err != nil {
		if msg := ctrl.Snapshot().Error; msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}

	if c.IsSet("day") && !ctrl.SelectDay(c.Int("day")) {
		return nil, fmt.Errorf("day %d out of range (plan has %d days)", c.Int("day"), len(ctrl.Snapshot().Days))
	}
	return ctrl, nil
}

func printPlan(w io.Writer, snap session.Snapshot, loc *time.Location) {
	if snap.Trip != nil {
		fmt.Fprintf(w, "Trip #%d  %s\n\n", snap.Trip.ID, snap.Trip.Status.Label())
	}
	if snap.Summary != nil {
		v := snap.Summary.View()
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Distance\t%s\n", v.TotalDistance)
		fmt.Fprintf(tw, "Duration\t%s\n", v.TotalDuration)
		fmt.Fprintf(tw, "Driving\t%s\n", v.DrivingTime)
		fmt.Fprintf(tw, "Rest\t%s\n", v.RestTime)
		fmt.Fprintf(tw, "Service\t%s\n", v.ServiceTime)
		fmt.Fprintf(tw, "Stops\t%s\n", v.TotalStops)
		tw.Flush()
	}

	if snap.Plan != nil && len(snap.Plan.Stops) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTYPE\tLOCATION\tARRIVAL\tDEPARTURE\tDWELL")
		for i, st := range snap.Plan.Stops {
			name := st.LocationName()
			if name == "" {
				name = interval.NotAvailable
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, st.Type.Label(), name,
				interval.FormatDateTime(st.ArrivalTime.In(loc)),
				interval.FormatDateTime(st.Departure().In(loc)),
				interval.FormatDuration(interval.DurationHours(st.ArrivalTime, st.Departure())))
		}
		tw.Flush()
	}

	if len(snap.Days) > 0 {
		fmt.Fprint(w, "\nDays:")
		for _, d := range snap.Days {
			marker := " "
			if d.Active {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s[%d] %s", marker, d.Index, d.Label)
		}
		fmt.Fprintln(w)
	}
}

func printDay(w io.Writer, v dayindex.DayView) {
	fmt.Fprintf(w, "\n%s (%s)\n", v.DateLabel, v.Date)
	if v.HasImage() {
		fmt.Fprintf(w, "Image: %s\n", v.ImageURL)
	} else {
		fmt.Fprintln(w, v.Placeholder)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tSTART\tEND\tLOCATION\tREMARKS")
	for _, e := range v.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.StatusLabel, e.Start, e.End, e.Location, e.Remarks)
	}
	tw.Flush()

	fmt.Fprintln(w)
	for _, t := range v.Totals {
		fmt.Fprintf(w, "%-22s %s\n", t.Label, t.Duration)
	}
}

func orInt64(v, fallback int64) int64 {
	if v != 0 {
		return v
	}
	return fallback
}

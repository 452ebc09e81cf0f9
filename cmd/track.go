package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"tracking/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
)

func newTrackCommand(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "track <code>",
		Short: "Print the tracking page of a parcel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			return track(cmd.Context(), config, args[0], cmd.OutOrStdout())
		},
	}
}

func track(ctx context.Context, config Config, code string, out io.Writer) error {
	query, err := queries.NewFindByTrackingCodeQuery(code)
	if err != nil {
		return err
	}

	gormDB, err := OpenDatabase(ctx, config.DB)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	app := NewCompositionRoot(config, gormDB, config.Log.NewLogger())
	result, err := app.CreateFindByTrackingCodeQueryHandler().Handle(ctx, query)
	if err != nil {
		return err
	}
	return renderTracking(out, result)
}

// renderTracking prints the same data as the public tracking page.
func renderTracking(out io.Writer, result queries.FindByTrackingCodeQueryResponse) error {
	p := result.Parcel
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Tracking code:\t%s\n", p.TrackingCode)
	fmt.Fprintf(w, "Status:\t%s\n", p.Status)
	fmt.Fprintf(w, "Location:\t%s\n", p.Location)
	fmt.Fprintf(w, "Last update:\t%s\n", p.LastUpdate.Format(time.DateTime))
	fmt.Fprintf(w, "Branch:\t%s\n", p.BranchName)
	fmt.Fprintf(w, "Service:\t%s\n", p.ServiceType)
	fmt.Fprintf(w, "Weight:\t%s kg\n", p.Weight)
	fmt.Fprintf(w, "Booked:\t%s\n", p.BookedAt.Format(time.DateTime))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TIME\tSTATUS\tLOCATION\tRECIPIENT")
	for _, event := range result.History {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			event.UpdateTime.Format(time.DateTime), event.Status, event.Location, event.RecipientName)
	}
	return w.Flush()
}

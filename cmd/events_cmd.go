package cmd

import (
	"encoding/json"

	"lummy/internal/services"
	"lummy/internal/session"

	"github.com/spf13/cobra"
)

func newEventsCommand(feed *services.EventsFeed) *cobra.Command {
	var (
		filter services.EventFilter
		sortBy string
		role   string
	)

	command := &cobra.Command{
		Use:   "events",
		Short: "Load the events feed once and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := feed.Load(cmd.Context(), session.ParseRole(role), filter, services.SortKey(sortBy))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}

	command.Flags().StringVar(&filter.Search, "search", "", "case-insensitive match on title, description or location")
	command.Flags().StringVar(&filter.Category, "category", "", "exact category")
	command.Flags().StringVar(&filter.Location, "location", "", "exact location")
	command.Flags().StringVar(&filter.Date, "date", "", "calendar day, YYYY-MM-DD")
	command.Flags().StringVar(&filter.Status, "status", "", "availability status")
	command.Flags().StringVar(&sortBy, "sort", string(services.DefaultSort), "date-asc, date-desc, price-asc, price-desc, name-asc or name-desc")
	command.Flags().StringVar(&role, "role", string(session.RoleCustomer), "customer, organizer or admin")

	return command
}

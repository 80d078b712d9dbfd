package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/clockwise/internal/export"
	"github.com/sadopc/clockwise/internal/report"
)

type reportOptions struct {
	From    string
	To      string
	JSONOut string
	CSVOut  string
}

func (r *reportOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.From, "from", "", "start date (YYYY-MM-DD, default 6 days ago)")
	cmd.Flags().StringVar(&r.To, "to", "", "end date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&r.JSONOut, "json", "", "write the report as JSON to this file")
	cmd.Flags().StringVar(&r.CSVOut, "csv", "", "write the report as CSV to this file")
}

// dateRange resolves the inclusive range, defaulting to the last week.
func (r *reportOptions) dateRange() (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -6)
	end := now

	if r.From != "" {
		t, err := time.Parse(report.DateFormat, r.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q", r.From)
		}
		start = t
	}
	if r.To != "" {
		t, err := time.Parse(report.DateFormat, r.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q", r.To)
		}
		end = t
	}
	return start, end, nil
}

func newReportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Day-wise utilization reports",
	}
	cmd.AddCommand(newReportProjectCommand(opts))
	cmd.AddCommand(newReportUserCommand(opts))
	cmd.AddCommand(newReportAdminCommand(opts))
	return cmd
}

func newReportProjectCommand(opts *RootOptions) *cobra.Command {
	ropts := &reportOptions{}
	var userIDs []int64

	cmd := &cobra.Command{
		Use:   "project <project-id>",
		Short: "Report a project's users over a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			start, end, err := ropts.dateRange()
			if err != nil {
				return err
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if len(userIDs) == 0 {
				users, err := s.Users(ctx)
				if err != nil {
					return err
				}
				for _, u := range users {
					userIDs = append(userIDs, u.ID)
				}
			}

			agg := report.NewAggregator(s)
			entries, err := agg.ProjectDayWise(ctx, projectID, userIDs, start, end)
			if err != nil {
				return err
			}

			if ropts.JSONOut != "" {
				return export.DayWiseToJSON(entries, ropts.JSONOut)
			}
			if ropts.CSVOut != "" {
				return export.DayWiseToCSV(entries, ropts.CSVOut)
			}
			title := fmt.Sprintf("Project %d — %s to %s", projectID,
				start.Format(report.DateFormat), end.Format(report.DateFormat))
			fmt.Fprintln(cmd.OutOrStdout(), renderDayWise(title, entries))
			return nil
		},
	}
	ropts.bind(cmd)
	cmd.Flags().Int64SliceVar(&userIDs, "users", nil, "user ids to include (default: all users)")
	return cmd
}

func newReportUserCommand(opts *RootOptions) *cobra.Command {
	ropts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "user <user-id>",
		Short: "Report one user across all their projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			start, end, err := ropts.dateRange()
			if err != nil {
				return err
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			agg := report.NewAggregator(s)
			rep, err := agg.UserDayWise(cmd.Context(), userID, start, end)
			if err != nil {
				return err
			}

			if ropts.JSONOut != "" {
				return export.UserReportToJSON(rep, ropts.JSONOut)
			}
			if ropts.CSVOut != "" {
				return export.DayWiseToCSV(rep.DayWise, ropts.CSVOut)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderProjects(rep.Projects))
			title := fmt.Sprintf("User %d — %s to %s", userID,
				start.Format(report.DateFormat), end.Format(report.DateFormat))
			fmt.Fprintln(out, renderDayWise(title, rep.DayWise))
			return nil
		},
	}
	ropts.bind(cmd)
	return cmd
}

func newReportAdminCommand(opts *RootOptions) *cobra.Command {
	ropts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Report every user over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := ropts.dateRange()
			if err != nil {
				return err
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			agg := report.NewAggregator(s)
			reps, err := agg.AdminDayWise(cmd.Context(), start, end)
			if err != nil {
				return err
			}

			if ropts.CSVOut != "" {
				return fmt.Errorf("admin reports support --json export only")
			}
			if ropts.JSONOut != "" {
				return export.AdminReportToJSON(reps, ropts.JSONOut)
			}
			out := cmd.OutOrStdout()
			for _, rep := range reps {
				title := fmt.Sprintf("%s <%s> — %s to %s", rep.Username, rep.Email,
					start.Format(report.DateFormat), end.Format(report.DateFormat))
				fmt.Fprintln(out, renderDayWise(title, rep.DayWise))
			}
			return nil
		},
	}
	ropts.bind(cmd)
	return cmd
}

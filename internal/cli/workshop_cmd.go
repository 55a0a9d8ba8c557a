package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/atelier/internal/cli/formatter"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkshopCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workshop",
		Aliases: []string{"ws"},
		Short:   "Manage workshops and their rosters",
	}

	cmd.AddCommand(
		newWorkshopAddCmd(app),
		newWorkshopListCmd(app),
		newWorkshopShowCmd(app),
		newWorkshopAdvanceCmd(app),
		newWorkshopScheduleSurveyCmd(app),
		newParticipantCmd(app),
		newWorkshopImportCmd(app),
	)

	return cmd
}

func newWorkshopAddCmd(app *App) *cobra.Command {
	var title, description, facilitator string
	var date dateFlag

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new workshop",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.Workshop{
				Title:       title,
				Description: description,
				Facilitator: facilitator,
				Date:        date.t,
			}
			if err := app.Workshops.Create(context.Background(), w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created workshop %s %s\n", formatter.Bold(w.Title), formatter.TruncID(w.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Workshop title")
	cmd.Flags().Var(&date, "date", "Workshop date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "Workshop description")
	cmd.Flags().StringVar(&facilitator, "facilitator", "", "Facilitator name")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newWorkshopListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workshops",
		RunE: func(cmd *cobra.Command, args []string) error {
			workshops, err := app.Workshops.List(context.Background())
			if err != nil {
				return err
			}
			if len(workshops) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workshops found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkshopList(workshops))
			return nil
		},
	}
}

func newWorkshopShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show WORKSHOP",
		Short: "Show workshop details, roster and surveys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.Workshops.GetByID(ctx, id)
			if err != nil {
				return err
			}
			surveys, err := app.Surveys.ListByWorkshop(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkshopDetail(w, surveys))
			return nil
		},
	}
}

func newWorkshopAdvanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance WORKSHOP",
		Short: "Move a workshop to its next status (TODO, IN_PROGRESS, COMPLETE)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.Workshops.Advance(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workshop %s is now %s\n", formatter.Bold(w.Title), formatter.WorkshopStatusPill(w.Status))
			return nil
		},
	}
}

func newWorkshopScheduleSurveyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule-survey WORKSHOP DATE",
		Short: "Set the date the workshop survey goes out",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date, err := parseDate("date", args[1])
			if err != nil {
				return err
			}
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.Workshops.ScheduleSurvey(ctx, id, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Survey for %s scheduled on %s\n", formatter.Bold(w.Title), formatter.ISODate(date))
			return nil
		},
	}
}

func newParticipantCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Manage a workshop roster",
	}
	cmd.AddCommand(
		newParticipantAddCmd(app),
		newParticipantRemoveCmd(app),
		newParticipantListCmd(app),
	)
	return cmd
}

func newParticipantAddCmd(app *App) *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "add WORKSHOP",
		Short: "Add a participant to a workshop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Workshops.AddParticipant(ctx, id, domain.Participant{Name: name, Email: email, Role: role})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s <%s> %s\n", formatter.Bold(p.Name), p.Email, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Participant name")
	cmd.Flags().StringVar(&email, "email", "", "Participant email")
	cmd.Flags().StringVar(&role, "role", "", "Participant role")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newParticipantRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove WORKSHOP PARTICIPANT",
		Short: "Remove a participant by id, email or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.Workshops.GetByID(ctx, id)
			if err != nil {
				return err
			}
			pid, err := resolveParticipantID(w, args[1])
			if err != nil {
				return err
			}
			if err := app.Workshops.RemoveParticipant(ctx, id, pid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed participant %s\n", formatter.TruncID(pid))
			return nil
		},
	}
}

func newParticipantListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list WORKSHOP",
		Short: "List a workshop's roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.Workshops.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParticipants(w.Participants))
			return nil
		},
	}
}

func newWorkshopImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a past workshop with its roster and problems from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Imports.ImportWorkshop(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported workshop %s %s: %d participants, %d problems, %d notes\n",
				formatter.Bold(res.Workshop.Title), formatter.TruncID(res.Workshop.ID),
				res.ParticipantCount, res.ProblemCount, res.NoteCount)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/atelier/internal/cli/formatter"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"proj"},
		Short:   "Track projects promoted from focal-area problems",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectProgressCmd(app),
		newProjectMilestoneCmd(app),
		newProjectStatusCmd(app),
		newStakeholderCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project and the problem it came from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p))
			return nil
		},
	}
}

func newProjectProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress PROJECT PERCENT",
		Short: "Set completion percentage (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid percent %q: must be a whole number", args[1])
			}
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.UpdateProgress(ctx, id, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(p.Title), formatter.RenderProgress(p.Progress, 20))
			return nil
		},
	}
}

func newProjectMilestoneCmd(app *App) *cobra.Command {
	var title string
	var due dateFlag

	cmd := &cobra.Command{
		Use:   "milestone PROJECT",
		Short: "Set the next milestone, replacing any pending one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.CreateMilestone(ctx, id, title, due.t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Next milestone for %s: %s due %s\n",
				formatter.Bold(p.Title), p.NextMilestone.Title, formatter.ISODate(p.NextMilestone.DueDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().Var(&due, "due", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PROJECT STATUS",
		Short: "Set status (discovery, development, live, completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.SetStatus(ctx, id, domain.ProjectStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s is now %s\n", formatter.Bold(p.Title), formatter.ProjectStatusPill(p.Status))
			return nil
		},
	}
}

func newStakeholderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stakeholder",
		Short: "Manage project stakeholders",
	}
	cmd.AddCommand(newStakeholderAddCmd(app), newStakeholderRemoveCmd(app))
	return cmd
}

func newStakeholderAddCmd(app *App) *cobra.Command {
	var id, name, role, company string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a stakeholder, or update the one with the same --id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pid, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.AddStakeholder(ctx, pid, domain.Stakeholder{ID: id, Name: name, Role: role, Company: company})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d stakeholders\n", formatter.Bold(p.Title), len(p.Stakeholders))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Stakeholder id (default: generated)")
	cmd.Flags().StringVar(&name, "name", "", "Stakeholder name")
	cmd.Flags().StringVar(&role, "role", "", "Stakeholder role")
	cmd.Flags().StringVar(&company, "company", "", "Stakeholder company")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStakeholderRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT STAKEHOLDER",
		Short: "Remove a stakeholder by id, id prefix or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pid, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, pid)
			if err != nil {
				return err
			}
			cands := make([]candidate, 0, len(p.Stakeholders))
			for _, s := range p.Stakeholders {
				cands = append(cands, candidate{id: s.ID, label: s.Name})
			}
			sid, err := resolveID("stakeholder", args[1], cands)
			if err != nil {
				return err
			}
			p, err = app.Projects.RemoveStakeholder(ctx, pid, sid)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d stakeholders\n", formatter.Bold(p.Title), len(p.Stakeholders))
			return nil
		},
	}
}

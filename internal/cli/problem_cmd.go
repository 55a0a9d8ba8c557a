package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/atelier/internal/cli/formatter"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newProblemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Capture, score and promote workshop problems",
	}

	cmd.AddCommand(
		newProblemAddCmd(app),
		newProblemListCmd(app),
		newProblemShowCmd(app),
		newProblemNoteCmd(app),
		newProblemScoreCmd(app),
		newProblemFocalCmd(app),
		newProblemPromoteCmd(app),
		newProblemMapCmd(app),
	)

	return cmd
}

func newProblemAddCmd(app *App) *cobra.Command {
	var description, by string
	var acuity, strategic int

	cmd := &cobra.Command{
		Use:   "add WORKSHOP",
		Short: "Record a problem raised in a workshop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if by == "" {
				by = app.currentUserName(ctx)
			}
			p, err := app.Problems.AddProblem(ctx, id, description, acuity, strategic, by)
			if err != nil {
				return err
			}
			q := p.Quadrant(app.Problems.RatingModel().Midpoint)
			fmt.Fprintf(cmd.OutOrStdout(), "Added problem %s %s %s\n", formatter.TruncID(p.ID), formatter.QuadrantBadge(q), formatter.FocalMark(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Problem description")
	cmd.Flags().IntVar(&acuity, "acuity", 0, "Acuity score")
	cmd.Flags().IntVar(&strategic, "strategic", 0, "Strategic importance score")
	cmd.Flags().StringVar(&by, "by", "", "Who raised the problem (default: signed-in user)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("acuity")
	_ = cmd.MarkFlagRequired("strategic")

	return cmd
}

func newProblemListCmd(app *App) *cobra.Command {
	var workshop string
	var focalOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List problems, optionally for one workshop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var problems []*domain.Problem
			var err error
			if workshop != "" {
				id, rerr := resolveWorkshopID(ctx, app, workshop)
				if rerr != nil {
					return rerr
				}
				problems, err = app.Problems.ListByWorkshop(ctx, id)
			} else {
				problems, err = app.Problems.List(ctx)
			}
			if err != nil {
				return err
			}
			if focalOnly {
				filtered := problems[:0]
				for _, p := range problems {
					if p.IsFocalArea {
						filtered = append(filtered, p)
					}
				}
				problems = filtered
			}
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProblemList(problems, app.Problems.RatingModel().Midpoint))
			return nil
		},
	}

	cmd.Flags().StringVar(&workshop, "workshop", "", "Only problems of this workshop")
	cmd.Flags().BoolVar(&focalOnly, "focal", false, "Only focal areas")

	return cmd
}

func newProblemShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROBLEM",
		Short: "Show a problem with its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProblemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Problems.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProblemDetail(p, app.Problems.RatingModel().Midpoint))
			return nil
		},
	}
}

func newProblemNoteCmd(app *App) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "note PROBLEM TEXT...",
		Short: "Append a note to a problem",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProblemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if author == "" {
				author = app.currentUserName(ctx)
			}
			n, err := app.Problems.AddNote(ctx, id, strings.Join(args[1:], " "), author)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note %s\n", formatter.TruncID(n.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Note author (default: signed-in user)")

	return cmd
}

func newProblemScoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "score PROBLEM AXIS VALUE",
		Short: "Change one score (axis: acuity or strategic)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			axis, err := domain.ParseAxis(args[1])
			if err != nil {
				return err
			}
			value, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid score %q: must be a whole number", args[2])
			}
			id, err := resolveProblemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Problems.SetScore(ctx, id, axis, value)
			if err != nil {
				return err
			}
			q := p.Quadrant(app.Problems.RatingModel().Midpoint)
			fmt.Fprintf(cmd.OutOrStdout(), "Scored %s: acuity %d, strategic %d %s %s\n",
				formatter.TruncID(p.ID), p.Acuity, p.StrategicImportance, formatter.QuadrantBadge(q), formatter.FocalMark(p))
			return nil
		},
	}
}

func newProblemFocalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focal",
		Short: "Override or reset a problem's focal-area flag",
	}

	actions := []struct {
		use, short string
		run        func(ctx context.Context, id string) (*domain.Problem, error)
	}{
		{"mark PROBLEM", "Mark a problem as a focal area", app.Problems.MarkFocalArea},
		{"unmark PROBLEM", "Clear a problem's focal flag", app.Problems.UnmarkFocalArea},
		{"reset PROBLEM", "Return to the quadrant suggestion", app.Problems.ResetFocalArea},
	}
	for _, a := range actions {
		cmd.AddCommand(&cobra.Command{
			Use:   a.use,
			Short: a.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				id, err := resolveProblemID(ctx, app, args[0])
				if err != nil {
					return err
				}
				p, err := a.run(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.TruncID(p.ID), formatter.FocalMark(p))
				return nil
			},
		})
	}
	return cmd
}

func newProblemPromoteCmd(app *App) *cobra.Command {
	var title, description string
	var start dateFlag

	cmd := &cobra.Command{
		Use:   "promote PROBLEM",
		Short: "Promote a focal-area problem to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			opts := service.PromoteOptions{Title: title, Description: description, StartDate: start.t}
			id, err := resolveProblemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			proj, err := app.Problems.PromoteToProject(ctx, id, opts)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidState) {
					return fmt.Errorf("%w (mark it with 'atelier problem focal mark' first, or it was already promoted)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s %s\n", formatter.Bold(proj.Title), formatter.TruncID(proj.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title (default: problem description)")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD, default today)")

	return cmd
}

func newProblemMapCmd(app *App) *cobra.Command {
	var browse bool

	cmd := &cobra.Command{
		Use:   "map WORKSHOP",
		Short: "Show a workshop's problems by quadrant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if browse {
				if !app.interactive() {
					return fmt.Errorf("--browse needs an interactive terminal")
				}
				w, err := app.Workshops.GetByID(ctx, id)
				if err != nil {
					return err
				}
				_, err = tea.NewProgram(newProblemMapModel(app.Problems, w), tea.WithAltScreen()).Run()
				return err
			}
			groups, err := app.Problems.Map(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProblemMap(groups))
			return nil
		},
	}

	cmd.Flags().BoolVar(&browse, "browse", false, "Open the interactive map browser")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/atelier/internal/cli/formatter"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/spf13/cobra"
)

func newSurveyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Run workshop surveys and harvest their problems",
	}

	cmd.AddCommand(
		newSurveyCreateCmd(app),
		newSurveyListCmd(app),
		newSurveyShowCmd(app),
		newSurveyAddQuestionCmd(app),
		newSurveyStatusCmd(app, "activate", "Open a draft survey for responses", app.Surveys.Activate),
		newSurveyStatusCmd(app, "close", "Stop accepting responses", app.Surveys.Close),
		newSurveyRespondCmd(app),
		newSurveyResultsCmd(app),
		newSurveyHarvestCmd(app),
	)

	return cmd
}

func newSurveyCreateCmd(app *App) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "create WORKSHOP",
		Short: "Create a draft survey for a workshop from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Surveys.Instantiate(ctx, id, template)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created survey %s %s (%d questions)\n",
				formatter.Bold(s.Title), formatter.TruncID(s.ID), len(s.Questions))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "default", "Template name, id, title or list number")

	return cmd
}

func newSurveyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list WORKSHOP",
		Short: "List a workshop's surveys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkshopID(ctx, app, args[0])
			if err != nil {
				return err
			}
			surveys, err := app.Surveys.ListByWorkshop(ctx, id)
			if err != nil {
				return err
			}
			if len(surveys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No surveys found.")
				return nil
			}
			rows := make([][]string, 0, len(surveys))
			for _, s := range surveys {
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					s.Title,
					formatter.SurveyStatusPill(s.Status),
					fmt.Sprintf("%d", len(s.Responses)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "TITLE", "STATUS", "RESPONSES"}, rows))
			return nil
		},
	}
}

func newSurveyShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show SURVEY",
		Short: "Show a survey's questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSurveyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Surveys.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSurveyDetail(s))
			return nil
		},
	}
}

func newSurveyAddQuestionCmd(app *App) *cobra.Command {
	var (
		id, text, qtype string
		required        bool
		minVal, maxVal  float64
		options         []string
	)

	cmd := &cobra.Command{
		Use:   "add-question SURVEY",
		Short: "Add a question to a draft survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sid, err := resolveSurveyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			q := domain.SurveyQuestion{
				ID:       id,
				Text:     text,
				Type:     domain.QuestionType(qtype),
				Required: required,
				Options:  options,
			}
			if cmd.Flags().Changed("min") {
				q.MinValue = &minVal
			}
			if cmd.Flags().Changed("max") {
				q.MaxValue = &maxVal
			}
			s, err := app.Surveys.AddQuestion(ctx, sid, q)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added question %s to %s (%d questions)\n", q.ID, formatter.Bold(s.Title), len(s.Questions))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Question id, unique within the survey")
	cmd.Flags().StringVar(&text, "text", "", "Question text")
	cmd.Flags().StringVar(&qtype, "type", string(domain.QuestionText), "rating, text, multipleChoice, number or scale")
	cmd.Flags().BoolVar(&required, "required", false, "Whether an answer is required")
	cmd.Flags().Float64Var(&minVal, "min", 0, "Minimum value for rating and number questions")
	cmd.Flags().Float64Var(&maxVal, "max", 0, "Maximum value for rating and number questions")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Choice for multipleChoice questions (repeatable)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newSurveyStatusCmd(app *App, use, short string, run func(context.Context, string) (*domain.Survey, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SURVEY",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSurveyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := run(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Survey %s is now %s\n", formatter.Bold(s.Title), formatter.SurveyStatusPill(s.Status))
			return nil
		},
	}
}

func newSurveyRespondCmd(app *App) *cobra.Command {
	var participant string
	var answerFlags []string

	cmd := &cobra.Command{
		Use:   "respond SURVEY",
		Short: "Record a participant's answers",
		Long: `Record a participant's answers to an active survey.

Pass answers as repeated --answer QUESTION_ID=VALUE flags. Without any
--answer flag in an interactive terminal, a form asks each question.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sid, err := resolveSurveyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Surveys.GetByID(ctx, sid)
			if err != nil {
				return err
			}
			w, err := app.Workshops.GetByID(ctx, s.WorkshopID)
			if err != nil {
				return err
			}
			pid, err := resolveParticipantID(w, participant)
			if err != nil {
				return err
			}

			var answers []domain.Answer
			switch {
			case len(answerFlags) > 0:
				answers, err = parseAnswerFlags(s, answerFlags)
			case app.interactive():
				values := make(map[string]*string, len(s.Questions))
				if err = surveyResponseForm(s, values).Run(); err != nil {
					return err
				}
				answers, err = collectAnswers(s, values)
			default:
				return fmt.Errorf("no answers given: pass --answer QUESTION_ID=VALUE")
			}
			if err != nil {
				return err
			}

			resp, err := app.Surveys.RecordResponse(ctx, sid, pid, answers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded response %s (%d answers)\n", formatter.TruncID(resp.ID), len(resp.Answers))
			return nil
		},
	}

	cmd.Flags().StringVar(&participant, "participant", "", "Participant id, email or name")
	cmd.Flags().StringArrayVar(&answerFlags, "answer", nil, "Answer as QUESTION_ID=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("participant")

	return cmd
}

func newSurveyResultsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "results SURVEY",
		Short: "Show response counts and average ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSurveyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Surveys.Results(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSurveyResults(res))
			return nil
		},
	}
}

func newSurveyHarvestCmd(app *App) *cobra.Command {
	var responseID string

	cmd := &cobra.Command{
		Use:   "harvest SURVEY",
		Short: "Turn survey responses into problems",
		Long: `Create problems from the problem descriptions of a response, rated with
the response's acuity and strategic importance answers. Without --response
every response is harvested. Responses already harvested are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sid, err := resolveSurveyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Surveys.GetByID(ctx, sid)
			if err != nil {
				return err
			}

			responseIDs := []string{responseID}
			if responseID == "" {
				responseIDs = responseIDs[:0]
				for _, r := range s.Responses {
					responseIDs = append(responseIDs, r.ID)
				}
			}

			var created []*domain.Problem
			for _, rid := range responseIDs {
				ps, err := app.Surveys.HarvestProblems(ctx, sid, rid)
				if err != nil {
					return err
				}
				created = append(created, ps...)
			}

			if len(created) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No new problems harvested.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Harvested %d problems\n", len(created))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProblemList(created, app.Problems.RatingModel().Midpoint))
			return nil
		},
	}

	cmd.Flags().StringVar(&responseID, "response", "", "Harvest a single response")

	return cmd
}

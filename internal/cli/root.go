package cli

import (
	"context"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/service"
	"github.com/spf13/cobra"
)

// Authenticator is the sign-in collaborator used by the auth commands and for
// default authorship.
type Authenticator interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Workshops service.WorkshopService
	Problems  service.ProblemService
	Surveys   service.SurveyService
	Projects  service.ProjectService
	Dashboard service.DashboardService
	Templates service.TemplateService
	Imports   service.ImportService
	Auth      Authenticator

	// IsInteractive reports whether forms and the map browser may take over
	// the terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// currentUserName returns the signed-in user's display name, or "" when
// nobody is signed in or no auth provider is wired.
func (a *App) currentUserName(ctx context.Context) string {
	if a.Auth == nil {
		return ""
	}
	u, err := a.Auth.CurrentUser(ctx)
	if err != nil {
		return ""
	}
	return u.DisplayName()
}

// NewRootCmd creates the top-level "atelier" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "atelier",
		Short:         "Workshop problem registry and project tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWorkshopCmd(app),
		newProblemCmd(app),
		newSurveyCmd(app),
		newTemplateCmd(app),
		newProjectCmd(app),
		newDashboardCmd(app),
		newAuthCmd(app),
	)

	return root
}

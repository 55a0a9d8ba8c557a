package service

import (
	"context"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/repository"
	"golang.org/x/sync/errgroup"
)

type dashboardService struct {
	workshops repository.WorkshopRepo
	problems  repository.ProblemRepo
	projects  repository.ProjectRepo
	midpoint  int
}

func NewDashboardService(workshops repository.WorkshopRepo, problems repository.ProblemRepo, projects repository.ProjectRepo, midpoint int) DashboardService {
	return &dashboardService{workshops: workshops, problems: problems, projects: projects, midpoint: midpoint}
}

func (s *dashboardService) Summary(ctx context.Context) (*domain.Summary, error) {
	var (
		workshops []*domain.Workshop
		problems  []*domain.Problem
		projects  []*domain.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		workshops, err = s.workshops.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		problems, err = s.problems.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.projects.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summarize(workshops, problems, projects, s.midpoint), nil
}

func summarize(workshops []*domain.Workshop, problems []*domain.Problem, projects []*domain.Project, midpoint int) *domain.Summary {
	sum := &domain.Summary{
		TotalWorkshops:          len(workshops),
		OpportunitiesIdentified: len(problems),
		ProjectsCreated:         len(projects),
		ByQuadrant:              make(map[domain.Quadrant]int, len(domain.Quadrants)),
	}
	for _, q := range domain.Quadrants {
		sum.ByQuadrant[q] = 0
	}
	for _, w := range workshops {
		if w.Status == domain.WorkshopComplete {
			sum.CompletedWorkshops++
		}
		sum.TotalParticipants += len(w.Participants)
	}
	for _, p := range problems {
		if p.IsFocalArea {
			sum.FocalAreas++
		}
		sum.ByQuadrant[p.Quadrant(midpoint)]++
	}
	return sum
}

package jobs

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
)

type ClientDashboard struct {
	Metrics    ClientMetrics
	RecentJobs []Job
	TotalJobs  int
}

// Dashboard loads the metrics and the first page of the client's jobs in
// parallel. The first failure cancels the other call.
func (s *ClientService) Dashboard(ctx context.Context, pageSize int) (*ClientDashboard, error) {
	var (
		metrics *ClientMetrics
		list    *ClientJobList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metrics, err = s.DashboardMetrics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		list, err = s.List(gctx, apiclient.ListParams{Page: 1, PageSize: pageSize})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ClientDashboard{Metrics: *metrics, RecentJobs: list.Jobs, TotalJobs: list.Total}, nil
}

type FreelancerDashboard struct {
	Metrics   json.RawMessage
	Available []Listing
	Applied   []Listing
}

// Dashboard loads the metrics, open jobs and applied jobs in parallel.
func (s *FreelancerService) Dashboard(ctx context.Context, pageSize int) (*FreelancerDashboard, error) {
	var d FreelancerDashboard
	first := apiclient.ListParams{Page: 1, PageSize: pageSize}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Metrics, err = s.DashboardMetrics(gctx)
		return err
	})
	g.Go(func() error {
		page, err := s.Available(gctx, first)
		if err != nil {
			return err
		}
		d.Available = page.Results
		return nil
	})
	g.Go(func() error {
		page, err := s.Applied(gctx, first)
		if err != nil {
			return err
		}
		d.Applied = page.Results
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

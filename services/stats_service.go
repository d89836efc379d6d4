package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

type StatsService struct {
	Repo *repository.ReportRepository
	Now  func() time.Time
}

func NewStatsService(repo *repository.ReportRepository) *StatsService {
	return &StatsService{Repo: repo, Now: time.Now}
}

type Dashboard struct {
	repository.Counts
	TotalRevenue decimal.Decimal          `json:"total_revenue"`
	RecentOrders []repository.RecentOrder `json:"recent_orders"`
}

func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	const op = "stats.Dashboard"
	counts, err := s.Repo.Counts(ctx)
	if err != nil {
		return nil, apperr.Context(op, err)
	}
	revenue, err := s.Repo.Revenue(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, apperr.Context(op, err)
	}
	recent, err := s.Repo.RecentOrders(ctx, 5)
	if err != nil {
		return nil, apperr.Context(op, err)
	}
	return &Dashboard{Counts: counts, TotalRevenue: revenue, RecentOrders: recent}, nil
}

type Report struct {
	TotalOrders    int64                `json:"total_orders"`
	TotalCustomers int64                `json:"total_customers"`
	TotalRevenue   decimal.Decimal      `json:"total_revenue"`
	CurrentMonth   decimal.Decimal      `json:"current_month_revenue"`
	LastMonth      decimal.Decimal      `json:"last_month_revenue"`
	GrowthPercent  *decimal.Decimal     `json:"growth_percent"`
	TopItems       []repository.TopItem `json:"top_items"`
}

// Report compares this calendar month with the previous one. GrowthPercent is
// nil when last month had no revenue.
func (s *StatsService) Report(ctx context.Context) (*Report, error) {
	const op = "stats.Report"
	counts, err := s.Repo.Counts(ctx)
	if err != nil {
		return nil, apperr.Context(op, err)
	}
	total, err := s.Repo.Revenue(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, apperr.Context(op, err)
	}

	now := s.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	current, err := s.Repo.Revenue(ctx, thisMonth, thisMonth.AddDate(0, 1, 0))
	if err != nil {
		return nil, apperr.Context(op, err)
	}
	previous, err := s.Repo.Revenue(ctx, lastMonth, thisMonth)
	if err != nil {
		return nil, apperr.Context(op, err)
	}
	top, err := s.Repo.TopItems(ctx, 10)
	if err != nil {
		return nil, apperr.Context(op, err)
	}

	return &Report{
		TotalOrders:    counts.Orders,
		TotalCustomers: counts.Customers,
		TotalRevenue:   total,
		CurrentMonth:   current,
		LastMonth:      previous,
		GrowthPercent:  growth(current, previous),
		TopItems:       top,
	}, nil
}

func growth(current, previous decimal.Decimal) *decimal.Decimal {
	if !previous.IsPositive() {
		return nil
	}
	g := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
	return &g
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

func TestDashboardAndReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewStatsService(repository.NewReportRepository(f.db))

	f.placeOrder(t)
	f.placeOrder(t)

	// one order from last month
	last := f.placeOrder(t)
	now := time.Now()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	require.NoError(t, f.db.Model(&entity.Order{}).Where("id = ?", last).Update("created_at", lastMonth).Error)

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.Orders)
	assert.Equal(t, int64(1), d.Customers)
	assert.True(t, d.TotalRevenue.Equal(dec("53.94")), d.TotalRevenue.String())
	assert.Len(t, d.RecentOrders, 3)

	r, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.True(t, r.CurrentMonth.Equal(dec("35.96")), r.CurrentMonth.String())
	assert.True(t, r.LastMonth.Equal(dec("17.98")), r.LastMonth.String())
	require.NotNil(t, r.GrowthPercent)
	assert.True(t, r.GrowthPercent.Equal(dec("100")), r.GrowthPercent.String())
	require.Len(t, r.TopItems, 1)
	assert.Equal(t, int64(6), r.TopItems[0].TotalQty)
}

func TestGrowthWithoutPreviousRevenue(t *testing.T) {
	assert.Nil(t, growth(dec("10"), dec("0")))
	g := growth(dec("5"), dec("10"))
	require.NotNil(t, g)
	assert.True(t, g.Equal(dec("-50")))
}

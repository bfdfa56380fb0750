package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"infinix-store/internal/models"
	"infinix-store/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderIDs(orders []models.Order) []string {
	res := make([]string, 0, len(orders))
	for _, o := range orders {
		res = append(res, o.ID)
	}
	return res
}

func newAdmin(t *testing.T, now time.Time) *AdminService {
	t.Helper()
	return NewAdminService(testDB(t), zerolog.Nop(), func() time.Time { return now })
}

func TestListOrders(t *testing.T) {
	svc := newAdmin(t, time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		filter OrderFilter
		want   []string
	}{
		{name: "default newest first", filter: OrderFilter{}, want: []string{"order-2", "order-1"}},
		{name: "ascending", filter: OrderFilter{Ascending: true}, want: []string{"order-1", "order-2"}},
		{name: "search id", filter: OrderFilter{Query: "ORDER-1"}, want: []string{"order-1"}},
		{name: "search customer", filter: OrderFilter{Query: "john"}, want: []string{"order-2", "order-1"}},
		{name: "status", filter: OrderFilter{Status: "processing"}, want: []string{"order-2"}},
		{name: "status all", filter: OrderFilter{Status: FilterAll}, want: []string{"order-2", "order-1"}},
		{name: "today", filter: OrderFilter{DateWindow: WindowToday}, want: []string{"order-2"}},
		{name: "week", filter: OrderFilter{DateWindow: WindowWeek}, want: []string{"order-2"}},
		{name: "month", filter: OrderFilter{DateWindow: WindowMonth}, want: []string{"order-2", "order-1"}},
		{name: "total descending", filter: OrderFilter{SortField: OrderSortTotal}, want: []string{"order-1", "order-2"}},
		{name: "status ascending", filter: OrderFilter{SortField: OrderSortStatus, Ascending: true}, want: []string{"order-1", "order-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListOrders(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, orderIDs(got))
		})
	}
}

func TestListOrders_InvalidFilter(t *testing.T) {
	svc := newAdmin(t, time.Now())

	for _, f := range []OrderFilter{{Status: "lost"}, {DateWindow: "decade"}, {SortField: "weight"}} {
		_, err := svc.ListOrders(f)
		assert.ErrorIs(t, err, ErrInvalidFilter)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	svc := newAdmin(t, now)
	ctx := context.Background()

	assert.Equal(t, models.OrderStats{Total: 2, Delivered: 1, Processing: 1}, svc.OrderStats())

	order, err := svc.UpdateOrderStatus(ctx, "order-2", "shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	assert.Equal(t, now, order.UpdatedAt)

	listed, err := svc.ListOrders(OrderFilter{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, []string{"order-2"}, orderIDs(listed))
	assert.Equal(t, models.OrderStats{Total: 2, Delivered: 1}, svc.OrderStats())

	_, err = svc.UpdateOrderStatus(ctx, "order-2", "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.UpdateOrderStatus(ctx, "order-9", "shipped")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListDesigns(t *testing.T) {
	svc := newAdmin(t, time.Now())

	tests := []struct {
		name   string
		filter DesignFilter
		want   []string
	}{
		{name: "newest", filter: DesignFilter{}, want: []string{"design-2", "design-1"}},
		{name: "oldest", filter: DesignFilter{Sort: DesignSortOldest}, want: []string{"design-1", "design-2"}},
		{name: "name", filter: DesignFilter{Sort: DesignSortName}, want: []string{"design-2", "design-1"}},
		{name: "search", filter: DesignFilter{Query: "living"}, want: []string{"design-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListDesigns(tt.filter)
			require.NoError(t, err)
			res := make([]string, 0, len(got))
			for _, d := range got {
				res = append(res, d.ID)
			}
			assert.Equal(t, tt.want, res)
		})
	}

	_, err := svc.ListDesigns(DesignFilter{Sort: "biggest"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestDeleteDesign(t *testing.T) {
	svc := newAdmin(t, time.Now())
	ctx := context.Background()

	require.NoError(t, svc.DeleteDesign(ctx, "design-1"))
	assert.ErrorIs(t, svc.DeleteDesign(ctx, "design-1"), ErrDesignNotFound)

	got, err := svc.ListDesigns(DesignFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "design-2", got[0].ID)
}

func TestDashboard(t *testing.T) {
	svc := newAdmin(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	d := svc.Dashboard()
	assert.Equal(t, 2, d.OrdersThisMonth)
	assert.InDelta(t, 1997.97, d.RevenueThisMonth, 0.001)
	assert.Equal(t, 8, d.Products)
	assert.Equal(t, 2, d.SavedDesigns)
	assert.Equal(t, []string{"order-2", "order-1"}, orderIDs(d.RecentOrders))

	later := newAdmin(t, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)).Dashboard()
	assert.Equal(t, 1, later.OrdersThisMonth)
	assert.InDelta(t, 323.99, later.RevenueThisMonth, 0.001)
}

func TestDashboard_NoOrders(t *testing.T) {
	db := testDB(t)
	db.Orders = store.NewOrders(nil)
	svc := NewAdminService(db, zerolog.Nop(), time.Now)

	d := svc.Dashboard()
	assert.Zero(t, d.OrdersThisMonth)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"recent_orders":[]`)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"infinix-store/internal/models"
	"infinix-store/internal/store"

	"github.com/rs/zerolog"
)

const (
	FilterAll = "all"

	WindowToday = "today"
	WindowWeek  = "week"
	WindowMonth = "month"

	OrderSortCreatedAt = "createdAt"
	OrderSortStatus    = "status"
	OrderSortTotal     = "total"

	DesignSortNewest = "newest"
	DesignSortOldest = "oldest"
	DesignSortName   = "name"

	recentOrdersLimit = 5
)

type OrderFilter struct {
	Query      string
	Status     string
	DateWindow string
	SortField  string
	Ascending  bool
}

type DesignFilter struct {
	Query string
	Sort  string
}

type Dashboard struct {
	OrdersThisMonth  int            `json:"orders_this_month"`
	RevenueThisMonth float64        `json:"revenue_this_month"`
	Products         int            `json:"products"`
	SavedDesigns     int            `json:"saved_designs"`
	RecentOrders     []models.Order `json:"recent_orders"`
}

// AdminService projects the shared order and design collections for the back office.
// Mutations go straight to the collections, so every later read sees them.
type AdminService struct {
	db     *store.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewAdminService(db *store.DB, logger zerolog.Logger, now func() time.Time) *AdminService {
	if now == nil {
		now = time.Now
	}
	return &AdminService{db: db, logger: logger, now: now}
}

func (s *AdminService) windowMatcher(window string) (func(time.Time) bool, error) {
	now := s.now()
	switch window {
	case "", FilterAll:
		return func(time.Time) bool { return true }, nil
	case WindowToday:
		y, m, d := now.Date()
		return func(t time.Time) bool {
			ty, tm, td := t.In(now.Location()).Date()
			return ty == y && tm == m && td == d
		}, nil
	case WindowWeek:
		from := now.AddDate(0, 0, -7)
		return func(t time.Time) bool { return !t.Before(from) }, nil
	case WindowMonth:
		from := now.AddDate(0, -1, 0)
		return func(t time.Time) bool { return !t.Before(from) }, nil
	}
	return nil, fmt.Errorf("%w: date %q", ErrInvalidFilter, window)
}

func (s *AdminService) ListOrders(f OrderFilter) ([]models.Order, error) {
	if f.Status != "" && f.Status != FilterAll && !models.OrderStatus(f.Status).Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidFilter, f.Status)
	}
	inWindow, err := s.windowMatcher(f.DateWindow)
	if err != nil {
		return nil, err
	}

	var less func(a, b models.Order) int
	switch f.SortField {
	case "", OrderSortCreatedAt:
		less = func(a, b models.Order) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case OrderSortStatus:
		less = func(a, b models.Order) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case OrderSortTotal:
		less = func(a, b models.Order) int {
			switch {
			case a.GrandTotal < b.GrandTotal:
				return -1
			case a.GrandTotal > b.GrandTotal:
				return 1
			}
			return 0
		}
	default:
		return nil, fmt.Errorf("%w: sort %q", ErrInvalidFilter, f.SortField)
	}

	query := strings.ToLower(f.Query)
	orders := s.db.Orders.List()
	res := orders[:0]
	for _, o := range orders {
		if query != "" &&
			!strings.Contains(strings.ToLower(o.ID), query) &&
			!strings.Contains(strings.ToLower(o.UserName), query) {
			continue
		}
		if f.Status != "" && f.Status != FilterAll && string(o.Status) != f.Status {
			continue
		}
		if !inWindow(o.CreatedAt) {
			continue
		}
		res = append(res, o)
	}

	sort.SliceStable(res, func(i, j int) bool {
		if f.Ascending {
			return less(res[i], res[j]) < 0
		}
		return less(res[i], res[j]) > 0
	})
	return res, nil
}

func (s *AdminService) OrderStats() models.OrderStats {
	orders := s.db.Orders.List()
	stats := models.OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusDelivered:
			stats.Delivered++
		case models.OrderStatusProcessing:
			stats.Processing++
		case models.OrderStatusPending:
			stats.Pending++
		}
	}
	return stats
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID, status string) (models.Order, error) {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return models.Order{}, ErrInvalidStatus
	}

	order, err := s.db.Orders.UpdateStatus(orderID, next, s.now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	s.logger.Info().Str("order_id", orderID).Str("status", status).Msg("Order status updated")
	return order, nil
}

func (s *AdminService) ListDesigns(f DesignFilter) ([]models.RoomDesign, error) {
	var less func(a, b models.RoomDesign) bool
	switch f.Sort {
	case "", DesignSortNewest:
		less = func(a, b models.RoomDesign) bool { return a.CreatedAt.After(b.CreatedAt) }
	case DesignSortOldest:
		less = func(a, b models.RoomDesign) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case DesignSortName:
		less = func(a, b models.RoomDesign) bool { return a.Name < b.Name }
	default:
		return nil, fmt.Errorf("%w: sort %q", ErrInvalidFilter, f.Sort)
	}

	query := strings.ToLower(f.Query)
	designs := s.db.Designs.List()
	res := designs[:0]
	for _, d := range designs {
		if query != "" &&
			!strings.Contains(strings.ToLower(d.Name), query) &&
			!strings.Contains(strings.ToLower(d.UserName), query) {
			continue
		}
		res = append(res, d)
	}

	sort.SliceStable(res, func(i, j int) bool { return less(res[i], res[j]) })
	return res, nil
}

func (s *AdminService) DeleteDesign(ctx context.Context, designID string) error {
	if err := s.db.Designs.Delete(designID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDesignNotFound
		}
		return err
	}
	s.logger.Info().Str("design_id", designID).Msg("Design deleted")
	return nil
}

// Dashboard summarises the last month of orders alongside catalog and design counts.
func (s *AdminService) Dashboard() Dashboard {
	lastMonth := s.now().AddDate(0, -1, 0)
	orders := s.db.Orders.List()

	d := Dashboard{
		Products:     s.db.Catalog.Len(),
		SavedDesigns: s.db.Designs.Len(),
		RecentOrders: []models.Order{},
	}
	for _, o := range orders {
		if o.CreatedAt.After(lastMonth) {
			d.OrdersThisMonth++
			d.RevenueThisMonth += o.GrandTotal
		}
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if len(orders) > recentOrdersLimit {
		orders = orders[:recentOrdersLimit]
	}
	d.RecentOrders = append(d.RecentOrders, orders...)
	return d
}

package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"dukkan/internal/domain/advisor"
	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

const (
	lowStockThreshold = 5
	statsTopN         = 5
)

type StatsUseCase struct {
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	withdrawRepo repository.WithdrawRepository
}

func NewStatsUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	withdrawRepo repository.WithdrawRepository,
) *StatsUseCase {
	return &StatsUseCase{
		userRepo:     userRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		withdrawRepo: withdrawRepo,
	}
}

// earned reports whether an order's money counts toward revenue and profit.
func earned(s entity.OrderStatus) bool {
	return s == entity.OrderDelivered || s == entity.OrderCompleted || s == entity.OrderWithdrawn
}

// Dashboard gathers the store-wide numbers shown to admins and fed to the advisor.
func (uc *StatsUseCase) Dashboard(ctx context.Context) (advisor.Stats, error) {
	stats := advisor.Stats{
		OrdersByStatus: map[string]int{},
		TopProducts:    []advisor.ProductSummary{},
		LowStock:       []advisor.ProductSummary{},
		TopProvinces:   []advisor.ProvinceCount{},
	}

	_, users, err := uc.userRepo.List(ctx, repository.UserFilter{}, nil)
	if err != nil {
		return stats, errors.Wrap("Failed to count users", err)
	}
	stats.TotalUsers = int(users)

	products, _, err := uc.productRepo.List(ctx, repository.ProductFilter{}, nil)
	if err != nil {
		return stats, errors.Wrap("Failed to load products", err)
	}
	stats.TotalProducts = len(products)
	for _, p := range products {
		if p.Status != entity.ProductStatusInactive && p.Stock <= lowStockThreshold {
			stats.LowStock = append(stats.LowStock, advisor.ProductSummary{ID: p.ID, Name: p.Name, Quantity: p.Stock})
		}
	}
	sort.SliceStable(stats.LowStock, func(i, j int) bool { return stats.LowStock[i].Quantity < stats.LowStock[j].Quantity })

	orders, _, err := uc.orderRepo.List(ctx, repository.OrderFilter{}, nil)
	if err != nil {
		return stats, errors.Wrap("Failed to load orders", err)
	}
	stats.TotalOrders = len(orders)

	revenue, profit := decimal.Zero, decimal.Zero
	sold := map[string]*advisor.ProductSummary{}
	provinces := map[string]int{}
	for _, o := range orders {
		stats.OrdersByStatus[string(o.Status)]++
		if o.Status == entity.OrderRejected || o.Status == entity.OrderCancelled {
			continue
		}
		if o.Customer.Province != "" {
			provinces[o.Customer.Province]++
		}
		for _, item := range o.Items {
			s, ok := sold[item.ProductID]
			if !ok {
				s = &advisor.ProductSummary{ID: item.ProductID, Name: item.Name}
				sold[item.ProductID] = s
			}
			s.Quantity += item.Quantity
		}
		if earned(o.Status) {
			revenue = revenue.Add(decimal.NewFromFloat(o.CustomerPrice))
			profit = profit.Add(decimal.NewFromFloat(o.Profit))
		}
	}
	stats.Revenue = revenue.Round(2).InexactFloat64()
	stats.Profit = profit.Round(2).InexactFloat64()

	for _, s := range sold {
		stats.TopProducts = append(stats.TopProducts, *s)
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		a, b := stats.TopProducts[i], stats.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	stats.TopProducts = truncate(stats.TopProducts, statsTopN)

	for province, n := range provinces {
		stats.TopProvinces = append(stats.TopProvinces, advisor.ProvinceCount{Province: province, Orders: n})
	}
	sort.Slice(stats.TopProvinces, func(i, j int) bool {
		a, b := stats.TopProvinces[i], stats.TopProvinces[j]
		if a.Orders != b.Orders {
			return a.Orders > b.Orders
		}
		return a.Province < b.Province
	})
	stats.TopProvinces = truncate(stats.TopProvinces, statsTopN)
	stats.LowStock = truncate(stats.LowStock, statsTopN*2)

	_, pending, err := uc.withdrawRepo.List(ctx, repository.WithdrawFilter{Status: entity.WithdrawPending}, nil)
	if err != nil {
		return stats, errors.Wrap("Failed to count withdrawals", err)
	}
	stats.PendingWithdraw = int(pending)

	return stats, nil
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/sampling"
)

var (
	ErrUnknownCustomer   = errors.New("customer id has no signup date")
	ErrUnresolvedProduct = errors.New("product id has no price")
)

// itemCountWeights[k-1] is the weight of a basket with k items.
var itemCountWeights = []float64{0.50, 0.25, 0.15, 0.07, 0.02, 0.01}

var (
	paymentTypes = sampling.MustCategorical(
		[]string{catalog.PaymentCard, catalog.PaymentInvoice, catalog.PaymentPaypal, catalog.PaymentSwish},
		[]float64{0.60, 0.15, 0.15, 0.10},
	)
	orderStatuses = sampling.MustCategorical(
		[]string{catalog.StatusCompleted, catalog.StatusCancelled, catalog.StatusReturned},
		[]float64{0.95, 0.03, 0.02},
	)
	quantities = sampling.MustCategorical(
		[]int{1, 1, 1, 2, 2, 3},
		[]float64{0.6, 0.1, 0.1, 0.1, 0.05, 0.05},
	)
	discounts = sampling.MustCategorical(
		[]decimal.Decimal{decimal.Zero, decimal.Zero, decimal.New(5, -2), decimal.New(10, -2)},
		[]float64{0.80, 0.10, 0.08, 0.02},
	)
)

// ItemCountDistribution restricts the basket size weights to [min, max].
func ItemCountDistribution(min, max int) (*sampling.Categorical[int], error) {
	if min < 1 || max < min || max > len(itemCountWeights) {
		return nil, fmt.Errorf("%w: item count range %d..%d", ErrInvalidConfig, min, max)
	}
	counts := make([]int, 0, max-min+1)
	weights := make([]float64, 0, max-min+1)
	for k := min; k <= max; k++ {
		counts = append(counts, k)
		weights = append(weights, itemCountWeights[k-1])
	}
	return sampling.NewCategorical(counts, weights)
}

// OrderResult is the outcome of synthesizing one order: either the order
// with its items, or the reason it was skipped.
type OrderResult struct {
	OrderID uint
	Order   models.Order
	Items   []models.OrderItem
	Err     error
}

func (r OrderResult) OK() bool { return r.Err == nil }

// OrderSynthesizer generates orders and their items against existing
// customers and products.
type OrderSynthesizer struct {
	cfg        Config
	rng        *rand.Rand
	customers  SignupLookup
	prices     PriceLookup
	itemCounts *sampling.Categorical[int]
	popularity *sampling.WeightedSet
	lastItemID uint
}

// NewOrderSynthesizer ranks products 1..cfg.Products by id for popularity.
func NewOrderSynthesizer(cfg Config, rng *rand.Rand, customers SignupLookup, prices PriceLookup) (*OrderSynthesizer, error) {
	itemCounts, err := ItemCountDistribution(cfg.MinItemsPerOrder, cfg.MaxItemsPerOrder)
	if err != nil {
		return nil, err
	}
	popularity, err := sampling.NewWeightedSet(sampling.RankWeights(cfg.Products))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &OrderSynthesizer{
		cfg:        cfg,
		rng:        rng,
		customers:  customers,
		prices:     prices,
		itemCounts: itemCounts,
		popularity: popularity,
	}, nil
}

// Next synthesizes order orderID. Item ids continue from the last
// successful order; a failed order consumes none.
func (s *OrderSynthesizer) Next(orderID uint) OrderResult {
	res := OrderResult{OrderID: orderID}

	customerID := uint(sampling.IntBetween(s.rng, 1, s.cfg.Customers))
	signup, ok := s.customers.SignupDate(customerID)
	if !ok {
		res.Err = fmt.Errorf("%w: %d", ErrUnknownCustomer, customerID)
		return res
	}

	orderDate := signup
	if signup.Before(s.cfg.Now) {
		orderDate = signup.AddDays(sampling.IntBetween(s.rng, 0, signup.DaysUntil(s.cfg.Now)))
	}

	order := models.Order{
		ID:          orderID,
		CustomerID:  customerID,
		OrderDate:   orderDate,
		PaymentType: paymentTypes.Sample(s.rng),
		Status:      orderStatuses.Sample(s.rng),
	}

	k := s.itemCounts.Sample(s.rng)
	picked, err := s.popularity.SampleDistinct(s.rng, k)
	if err != nil {
		res.Err = err
		return res
	}

	items := make([]models.OrderItem, 0, k)
	total := decimal.Zero
	itemID := s.lastItemID
	for _, idx := range picked {
		productID := uint(idx + 1)
		quantity := quantities.Sample(s.rng)
		price, ok := s.prices.Price(productID)
		if !ok {
			res.Err = fmt.Errorf("%w: %d", ErrUnresolvedProduct, productID)
			return res
		}
		discount := discounts.Sample(s.rng)

		unitPrice := price.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
		total = total.Add(lineTotal)

		itemID++
		items = append(items, models.OrderItem{
			ID:        itemID,
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	order.TotalAmount = total.Round(2)
	s.lastItemID = itemID
	res.Order = order
	res.Items = items
	return res
}

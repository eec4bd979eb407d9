package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/sampling"
	"github.com/yeremiapane/shop-dataset/utils"
)

const (
	ageMean    = 35
	ageStddev  = 10
	ageMin     = 18
	ageMax     = 90
	stockRate  = 120
	costLowest = 0.40
	costHigh   = 0.70
)

var minAmount = decimal.New(1, -2)

// NameSource supplies person names for generated customers.
type NameSource interface {
	FirstName() string
	LastName() string
}

// NewNameSource returns a gofakeit-backed source. gofakeit treats seed 0 as
// "random", so the seed is mapped to an odd value first.
func NewNameSource(seed uint64) NameSource {
	return gofakeit.New(seed*2 + 1)
}

// SignupLookup resolves a customer id to its signup date.
type SignupLookup interface {
	SignupDate(customerID uint) (models.Date, bool)
}

// PriceLookup resolves a product id to its list price.
type PriceLookup interface {
	Price(productID uint) (decimal.Decimal, bool)
}

// SignupIndex holds signup dates by customer id (index id-1).
type SignupIndex []models.Date

func (s SignupIndex) SignupDate(id uint) (models.Date, bool) {
	if id == 0 || int(id) > len(s) {
		return models.Date{}, false
	}
	return s[id-1], true
}

// PriceIndex holds list prices by product id (index id-1).
type PriceIndex []decimal.Decimal

func (p PriceIndex) Price(id uint) (decimal.Decimal, bool) {
	if id == 0 || int(id) > len(p) {
		return decimal.Decimal{}, false
	}
	return p[id-1], true
}

// EntitySampler produces the customer and product tables.
type EntitySampler struct {
	cfg      Config
	rng      *rand.Rand
	names    NameSource
	resolver *catalog.Resolver
	types    []string
}

func NewEntitySampler(cfg Config, rng *rand.Rand, names NameSource, resolver *catalog.Resolver) *EntitySampler {
	return &EntitySampler{
		cfg:      cfg,
		rng:      rng,
		names:    names,
		resolver: resolver,
		types:    resolver.Types(),
	}
}

// Customers samples cfg.Customers rows with ids 1..N.
func (s *EntitySampler) Customers() ([]models.Customer, SignupIndex) {
	start := s.cfg.Start()
	window := start.DaysUntil(s.cfg.Now)

	customers := make([]models.Customer, 0, s.cfg.Customers)
	signups := make(SignupIndex, 0, s.cfg.Customers)
	for i := 1; i <= s.cfg.Customers; i++ {
		id := uint(i)
		c := models.Customer{
			ID:         id,
			FirstName:  s.names.FirstName(),
			LastName:   s.names.LastName(),
			Email:      models.CustomerEmail(id),
			SignupDate: start.AddDays(sampling.IntBetween(s.rng, 0, window)),
		}
		c.Age = sampling.ClampInt(sampling.Normal(s.rng, ageMean, ageStddev), ageMin, ageMax)
		c.City = sampling.Pick(s.rng, catalog.Cities)

		customers = append(customers, c)
		signups = append(signups, c.SignupDate)
	}
	return customers, signups
}

// Products samples cfg.Products rows with ids 1..N. The category always
// comes from the resolver.
func (s *EntitySampler) Products() ([]models.Product, PriceIndex, error) {
	if len(s.types) == 0 {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, catalog.ErrEmptyCatalog)
	}

	products := make([]models.Product, 0, s.cfg.Products)
	prices := make(PriceIndex, 0, s.cfg.Products)
	for i := 1; i <= s.cfg.Products; i++ {
		productType := sampling.Pick(s.rng, s.types)
		category, err := s.resolver.Category(productType)
		if err != nil {
			return nil, nil, err
		}

		price := decimal.Max(utils.Round2(sampling.LogNormal(s.rng, s.cfg.PriceMean, s.cfg.PriceSigma)), minAmount)
		ratio := decimal.NewFromFloat(sampling.Uniform(s.rng, costLowest, costHigh))
		cost := decimal.Max(price.Mul(ratio).Round(2), minAmount)
		stock := sampling.Poisson(s.rng, stockRate)
		name := fmt.Sprintf("%s %s %s",
			sampling.Pick(s.rng, catalog.Adjectives), productType, sampling.Pick(s.rng, catalog.Sizes))

		products = append(products, models.Product{
			ID:             uint(i),
			ProductName:    name,
			ProductType:    productType,
			Category:       category,
			Price:          price,
			Cost:           cost,
			AvailableStock: stock,
		})
		prices = append(prices, price)
	}
	return products, prices, nil
}

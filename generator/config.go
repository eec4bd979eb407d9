package generator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yeremiapane/shop-dataset/models"
)

var ErrInvalidConfig = errors.New("invalid generator config")

// Config is the effective configuration of one generation run. It is
// recorded verbatim in the dataset metadata.
type Config struct {
	Seed             uint64
	Customers        int
	Products         int
	Orders           int
	MinItemsPerOrder int
	MaxItemsPerOrder int
	PriceMean        float64
	PriceSigma       float64
	// HistoryDays is the length of the signup window ending at Now.
	HistoryDays int
	Now         models.Date
}

func DefaultConfig() Config {
	return Config{
		Seed:             42,
		Customers:        10_000,
		Products:         2_000,
		Orders:           100_000,
		MinItemsPerOrder: 1,
		MaxItemsPerOrder: 6,
		PriceMean:        2.8,
		PriceSigma:       0.8,
		HistoryDays:      3 * 365,
		Now:              models.DateOf(time.Now()),
	}
}

// Start is the first day of the signup window.
func (c Config) Start() models.Date {
	return c.Now.AddDays(-c.HistoryDays)
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if c.Customers <= 0 {
		errs = append(errs, fmt.Errorf("customers must be positive, got %d", c.Customers))
	}
	if c.Products <= 0 {
		errs = append(errs, fmt.Errorf("products must be positive, got %d", c.Products))
	}
	if c.Orders <= 0 {
		errs = append(errs, fmt.Errorf("orders must be positive, got %d", c.Orders))
	}
	if c.MinItemsPerOrder < 1 {
		errs = append(errs, fmt.Errorf("min items per order must be at least 1, got %d", c.MinItemsPerOrder))
	}
	if c.MaxItemsPerOrder < c.MinItemsPerOrder {
		errs = append(errs, fmt.Errorf("max items per order (%d) is below min (%d)", c.MaxItemsPerOrder, c.MinItemsPerOrder))
	}
	if c.MaxItemsPerOrder > len(itemCountWeights) {
		errs = append(errs, fmt.Errorf("max items per order must be at most %d, got %d", len(itemCountWeights), c.MaxItemsPerOrder))
	}
	if c.Products > 0 && c.MaxItemsPerOrder > c.Products {
		errs = append(errs, fmt.Errorf("max items per order (%d) exceeds the number of products (%d)", c.MaxItemsPerOrder, c.Products))
	}
	if math.IsNaN(c.PriceMean) || math.IsInf(c.PriceMean, 0) {
		errs = append(errs, fmt.Errorf("price mean must be finite"))
	}
	if c.PriceSigma < 0 || math.IsNaN(c.PriceSigma) || math.IsInf(c.PriceSigma, 0) {
		errs = append(errs, fmt.Errorf("price sigma must be a finite non-negative number, got %v", c.PriceSigma))
	}
	if c.HistoryDays < 0 {
		errs = append(errs, fmt.Errorf("history days must not be negative, got %d", c.HistoryDays))
	}
	if c.Now.IsZero() {
		errs = append(errs, fmt.Errorf("reference date is not set"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

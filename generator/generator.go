// Package generator synthesizes the customers, products, orders and order
// items of a synthetic shop. Output is fully determined by the Config and the
// catalog it is given.
package generator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/sampling"
	"github.com/yeremiapane/shop-dataset/utils"
)

type Generator struct {
	cfg      Config
	resolver *catalog.Resolver
	names    NameSource
	info     logrus.FieldLogger
	errs     logrus.FieldLogger
}

type Option func(*Generator)

// WithLoggers routes progress to info and skipped orders to errs.
func WithLoggers(info, errs logrus.FieldLogger) Option {
	return func(g *Generator) {
		g.info = info
		g.errs = errs
	}
}

// WithNameSource replaces the seeded gofakeit name source.
func WithNameSource(names NameSource) Option {
	return func(g *Generator) {
		g.names = names
	}
}

// New validates cfg and prepares a generator. Configuration errors are
// returned here, before anything is produced.
func New(cfg Config, resolver *catalog.Resolver, opts ...Option) (*Generator, error) {
	if resolver == nil || resolver.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, catalog.ErrEmptyCatalog)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	discard := utils.DiscardLogger()
	g := &Generator{
		cfg:      cfg,
		resolver: resolver,
		info:     discard,
		errs:     discard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) Config() Config { return g.cfg }

// Result is a finished run.
type Result struct {
	Config   Config
	Dataset  models.Dataset
	Failures []OrderResult
}

// Run generates all four tables. Orders that fail are skipped, logged and
// kept in Result.Failures; the run continues with the next order id.
func (g *Generator) Run() (*Result, error) {
	names := g.names
	if names == nil {
		names = NewNameSource(g.cfg.Seed)
	}
	rng := sampling.NewSource(g.cfg.Seed)
	entities := NewEntitySampler(g.cfg, rng, names, g.resolver)

	g.info.WithField("rows", g.cfg.Customers).Info("generating customers")
	customers, signups := entities.Customers()

	g.info.WithField("rows", g.cfg.Products).Info("generating products")
	products, prices, err := entities.Products()
	if err != nil {
		return nil, err
	}

	synth, err := NewOrderSynthesizer(g.cfg, rng, signups, prices)
	if err != nil {
		return nil, err
	}
	return g.synthesize(synth, customers, products), nil
}

func (g *Generator) synthesize(synth *OrderSynthesizer, customers []models.Customer, products []models.Product) *Result {
	res := &Result{
		Config: g.cfg,
		Dataset: models.Dataset{
			Customers: customers,
			Products:  products,
			Orders:    make([]models.Order, 0, g.cfg.Orders),
		},
	}

	g.info.WithField("rows", g.cfg.Orders).Info("generating orders and order items")
	step := g.cfg.Orders / 10
	if step == 0 {
		step = 1
	}
	for i := 1; i <= g.cfg.Orders; i++ {
		r := synth.Next(uint(i))
		if r.OK() {
			res.Dataset.Orders = append(res.Dataset.Orders, r.Order)
			res.Dataset.OrderItems = append(res.Dataset.OrderItems, r.Items...)
		} else {
			res.Failures = append(res.Failures, r)
			g.errs.WithField("order_id", r.OrderID).WithError(r.Err).Error("skipping order")
		}
		if i%step == 0 || i == g.cfg.Orders {
			g.info.WithFields(logrus.Fields{
				"done":  i,
				"total": g.cfg.Orders,
			}).Info("orders progress")
		}
	}

	counts := res.Dataset.RowCounts()
	g.info.WithFields(logrus.Fields{
		models.TableCustomers:  counts[models.TableCustomers],
		models.TableProducts:   counts[models.TableProducts],
		models.TableOrders:     counts[models.TableOrders],
		models.TableOrderItems: counts[models.TableOrderItems],
		"failed_orders":        len(res.Failures),
	}).Info("generation complete")
	return res
}

// Metadata describes the run for the companion metadata record.
func (r *Result) Metadata(generatedAt time.Time) models.Metadata {
	return models.Metadata{
		RunID:            uuid.NewString(),
		Seed:             r.Config.Seed,
		NCustomers:       r.Config.Customers,
		NProducts:        r.Config.Products,
		NOrders:          r.Config.Orders,
		MinItemsPerOrder: r.Config.MinItemsPerOrder,
		MaxItemsPerOrder: r.Config.MaxItemsPerOrder,
		PriceMean:        r.Config.PriceMean,
		PriceSigma:       r.Config.PriceSigma,
		HistoryDays:      r.Config.HistoryDays,
		ReferenceDate:    r.Config.Now,
		GeneratedAt:      generatedAt.UTC().Format(time.RFC3339),
		RowsWritten:      r.Dataset.RowCounts(),
		FailedOrders:     len(r.Failures),
	}
}

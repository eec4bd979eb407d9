package validator_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/dataset"
	"github.com/yeremiapane/shop-dataset/generator"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/validator"
)

func generated(t *testing.T) *dataset.Snapshot {
	t.Helper()
	cfg := generator.DefaultConfig()
	cfg.Seed = 42
	cfg.Customers = 100
	cfg.Products = 20
	cfg.Orders = 50
	cfg.Now = models.NewDate(2025, time.January, 15)

	g, err := generator.New(cfg, catalog.Default())
	require.NoError(t, err)
	res, err := g.Run()
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	return dataset.FromDataset(&res.Dataset)
}

func table(t *testing.T, snap *dataset.Snapshot, name string) *dataset.Table {
	t.Helper()
	tbl, err := snap.Table(name)
	require.NoError(t, err)
	return tbl
}

func set(t *testing.T, tbl *dataset.Table, row int, col, value string) {
	t.Helper()
	i := tbl.Index(col)
	require.GreaterOrEqual(t, i, 0, col)
	tbl.Rows[row][i] = value
}

func get(t *testing.T, tbl *dataset.Table, row int, col string) string {
	t.Helper()
	i := tbl.Index(col)
	require.GreaterOrEqual(t, i, 0, col)
	return tbl.Rows[row][i]
}

func result(t *testing.T, r *validator.Report, name string) validator.CheckResult {
	t.Helper()
	res, ok := r.Result(name)
	require.True(t, ok, "no check %q", name)
	return res
}

func TestGeneratedDatasetPasses(t *testing.T) {
	report := validator.New(catalog.Default()).Validate(generated(t))
	assert.True(t, report.Passed(), "%+v", report.Problems())
	assert.Zero(t, report.Violations())
}

func TestCostAbovePrice(t *testing.T) {
	snap := generated(t)
	products := table(t, snap, models.TableProducts)
	price := decimal.RequireFromString(get(t, products, 0, "price"))
	set(t, products, 0, "cost", price.Add(decimal.NewFromInt(1)).StringFixed(2))

	report := validator.New(catalog.Default()).Validate(snap)
	res := result(t, report, "business/price_gte_cost")
	assert.Equal(t, validator.StatusFail, res.Status)
	assert.Equal(t, 1, res.Violations)
	assert.Len(t, report.Problems(), 1)
}

func TestInflatedLineTotal(t *testing.T) {
	snap := generated(t)
	items := table(t, snap, models.TableOrderItems)
	line := decimal.RequireFromString(get(t, items, 0, "line_total"))
	set(t, items, 0, "line_total", line.Add(decimal.NewFromInt(1)).StringFixed(2))

	report := validator.New(catalog.Default()).Validate(snap)
	assert.Equal(t, 1, result(t, report, "business/line_total").Violations)
	assert.Equal(t, 1, result(t, report, "business/order_total").Violations)
	assert.Len(t, report.Problems(), 2)
}

func TestRoundingWithinEpsilonIsAccepted(t *testing.T) {
	snap := generated(t)
	items := table(t, snap, models.TableOrderItems)
	line := decimal.RequireFromString(get(t, items, 0, "line_total"))
	set(t, items, 0, "line_total", line.Add(decimal.New(1, -2)).StringFixed(2))

	report := validator.New(catalog.Default()).Validate(snap)
	assert.Zero(t, result(t, report, "business/line_total").Violations)
}

func TestRemovedCustomerLeavesDanglingOrders(t *testing.T) {
	snap := generated(t)
	customers := table(t, snap, models.TableCustomers)
	orders := table(t, snap, models.TableOrders)

	removed := get(t, orders, 0, "customer_id")
	kept := customers.Rows[:0]
	for _, row := range customers.Rows {
		if row[customers.Index("id")] != removed {
			kept = append(kept, row)
		}
	}
	customers.Rows = kept

	report := validator.New(catalog.Default()).Validate(snap)
	res := result(t, report, "integrity/orders.customer_id")
	assert.Equal(t, validator.StatusFail, res.Status)
	assert.Equal(t, 1, res.Violations)
	assert.Equal(t, []string{removed}, res.Details)
	assert.Len(t, report.Problems(), 1)
}

func TestRemovedProductLeavesDanglingItems(t *testing.T) {
	snap := generated(t)
	products := table(t, snap, models.TableProducts)
	products.Rows = products.Rows[1:] // product 1 is the most popular

	report := validator.New(catalog.Default()).Validate(snap)
	res := result(t, report, "integrity/order_items.product_id")
	assert.Equal(t, 1, res.Violations)
	assert.Equal(t, []string{"1"}, res.Details)
}

func TestMissingTableIsReportedAsError(t *testing.T) {
	snap := generated(t)
	snap.Fail(models.TableOrders, dataset.ErrMissingTable)

	report := validator.New(catalog.Default()).Validate(snap)
	assert.False(t, report.Passed())
	for _, name := range []string{
		"schema/orders",
		"integrity/orders.customer_id",
		"integrity/order_items.order_id",
		"business/order_after_signup",
		"business/order_total",
		"unique/orders.id",
		"complete/orders",
		"format/orders",
	} {
		assert.Equal(t, validator.StatusError, result(t, report, name).Status, name)
	}
	// checks that never read orders still run
	assert.Equal(t, validator.StatusPass, result(t, report, "business/price_gte_cost").Status)
	assert.Equal(t, validator.StatusPass, result(t, report, "integrity/order_items.product_id").Status)
}

func TestOrderBeforeSignup(t *testing.T) {
	snap := generated(t)
	orders := table(t, snap, models.TableOrders)
	customers := table(t, snap, models.TableCustomers)

	customerID := get(t, orders, 0, "customer_id")
	for i, row := range customers.Rows {
		if row[customers.Index("id")] == customerID {
			signup, err := models.ParseDate(get(t, customers, i, "signup_date"))
			require.NoError(t, err)
			set(t, orders, 0, "order_date", signup.AddDays(-1).String())
		}
	}

	report := validator.New(catalog.Default()).Validate(snap)
	assert.Equal(t, 1, result(t, report, "business/order_after_signup").Violations)
}

func TestValidatorAcceptsAlternateCatalog(t *testing.T) {
	resolver, err := catalog.NewResolver([]catalog.Entry{{ProductType: "widget", Category: "Gadgets"}})
	require.NoError(t, err)

	report := validator.New(resolver).Validate(generated(t))
	res := result(t, report, "business/category_mapping")
	assert.Equal(t, validator.StatusFail, res.Status)
	assert.Equal(t, 20, res.Violations)
	assert.NotEmpty(t, res.Details)
}

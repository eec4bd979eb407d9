package validator

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/shop-dataset/dataset"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/utils"
)

type input struct {
	snap *dataset.Snapshot
	v    *Validator
}

func newInput(snap *dataset.Snapshot, v *Validator) *input {
	return &input{snap: snap, v: v}
}

// columns returns the table and the header position of each named column.
func (in *input) columns(table string, names ...string) (*dataset.Table, []int, error) {
	t, err := in.snap.Table(table)
	if err != nil {
		return nil, nil, err
	}
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = t.Index(n)
		if idx[i] < 0 {
			return nil, nil, fmt.Errorf("%s has no column %q", table, n)
		}
	}
	return t, idx, nil
}

func errored(name, category string, err error) CheckResult {
	return CheckResult{Name: name, Category: category, Status: StatusError, Message: err.Error()}
}

func counted(name, category string, n int) CheckResult {
	res := CheckResult{Name: name, Category: category, Status: StatusPass, Violations: n}
	if n > 0 {
		res.Status = StatusFail
	}
	return res
}

func (in *input) schemaChecks() []CheckResult {
	out := make([]CheckResult, 0, len(models.TableNames))
	for _, name := range models.TableNames {
		check := "schema/" + name
		t, err := in.snap.Table(name)
		if err != nil {
			out = append(out, errored(check, CategorySchema, err))
			continue
		}

		expected := make(map[string]bool)
		for _, c := range models.Schema[name] {
			expected[c] = true
		}
		actual := make(map[string]bool)
		for _, c := range t.Columns {
			actual[c] = true
		}

		var details []string
		for _, c := range models.Schema[name] {
			if !actual[c] {
				details = append(details, "missing column "+c)
			}
		}
		for _, c := range t.Columns {
			if !expected[c] {
				details = append(details, "unexpected column "+c)
			}
		}
		res := counted(check, CategorySchema, len(details))
		res.Details = details
		out = append(out, res)
	}
	return out
}

func (in *input) customerReference() CheckResult {
	return in.reference("integrity/orders.customer_id", models.TableOrders, "customer_id", models.TableCustomers)
}

func (in *input) orderReference() CheckResult {
	return in.reference("integrity/order_items.order_id", models.TableOrderItems, "order_id", models.TableOrders)
}

func (in *input) productReference() CheckResult {
	return in.reference("integrity/order_items.product_id", models.TableOrderItems, "product_id", models.TableProducts)
}

// reference reports the ids in child.col that have no row in parent.
func (in *input) reference(name, child, col, parent string) CheckResult {
	ct, ci, err := in.columns(child, col)
	if err != nil {
		return errored(name, CategoryIntegrity, err)
	}
	ids, err := in.idSet(parent)
	if err != nil {
		return errored(name, CategoryIntegrity, err)
	}

	dangling := make(map[string]bool)
	rows := 0
	for _, row := range ct.Rows {
		key, ok := idKey(ct.Cell(row, ci[0]))
		if !ok {
			continue
		}
		if !ids[key] {
			dangling[key] = true
			rows++
		}
	}

	res := counted(name, CategoryIntegrity, len(dangling))
	if len(dangling) > 0 {
		res.Details = sortedIDs(dangling)
		res.Message = fmt.Sprintf("%d row(s) reference missing %s", rows, parent)
	}
	return res
}

func (in *input) idSet(table string) (map[string]bool, error) {
	t, idx, err := in.columns(table, "id")
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, t.Len())
	for _, row := range t.Rows {
		if key, ok := idKey(t.Cell(row, idx[0])); ok {
			ids[key] = true
		}
	}
	return ids, nil
}

func (in *input) priceAboveCost() CheckResult {
	const name = "business/price_gte_cost"
	t, idx, err := in.columns(models.TableProducts, "price", "cost")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}
	bad := 0
	for _, row := range t.Rows {
		price, ok1 := parseMoney(t.Cell(row, idx[0]))
		cost, ok2 := parseMoney(t.Cell(row, idx[1]))
		if ok1 && ok2 && price.LessThan(cost) {
			bad++
		}
	}
	res := counted(name, CategoryBusiness, bad)
	if bad > 0 {
		res.Message = "products have price < cost"
	}
	return res
}

func (in *input) categoryMapping() CheckResult {
	const name = "business/category_mapping"
	t, idx, err := in.columns(models.TableProducts, "product_type", "category")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}
	bad := 0
	unknown := make(map[string]bool)
	for _, row := range t.Rows {
		productType, category := t.Cell(row, idx[0]), t.Cell(row, idx[1])
		if missing(productType) || missing(category) {
			continue
		}
		want, err := in.v.resolver.Category(productType)
		if err != nil {
			unknown[productType] = true
			bad++
			continue
		}
		if want != category {
			bad++
		}
	}
	res := counted(name, CategoryBusiness, bad)
	if len(unknown) > 0 {
		res.Details = make([]string, 0, len(unknown))
		for pt := range unknown {
			res.Details = append(res.Details, "unknown product type "+strconv.Quote(pt))
		}
		sort.Strings(res.Details)
	}
	return res
}

func (in *input) orderAfterSignup() CheckResult {
	const name = "business/order_after_signup"
	orders, oi, err := in.columns(models.TableOrders, "customer_id", "order_date")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}
	customers, ci, err := in.columns(models.TableCustomers, "id", "signup_date")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}

	signups := make(map[string]models.Date, customers.Len())
	for _, row := range customers.Rows {
		key, ok := idKey(customers.Cell(row, ci[0]))
		if !ok {
			continue
		}
		if d, ok := parseDate(customers.Cell(row, ci[1])); ok {
			if _, seen := signups[key]; !seen {
				signups[key] = d
			}
		}
	}

	bad := 0
	for _, row := range orders.Rows {
		key, ok := idKey(orders.Cell(row, oi[0]))
		if !ok {
			continue
		}
		signup, joined := signups[key]
		orderDate, ok := parseDate(orders.Cell(row, oi[1]))
		if joined && ok && orderDate.Before(signup) {
			bad++
		}
	}
	res := counted(name, CategoryBusiness, bad)
	if bad > 0 {
		res.Message = "orders dated before the customer signed up"
	}
	return res
}

func (in *input) lineTotals() CheckResult {
	const name = "business/line_total"
	t, idx, err := in.columns(models.TableOrderItems, "quantity", "unit_price", "line_total")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}
	bad := 0
	for _, row := range t.Rows {
		qty, ok1 := parseMoney(t.Cell(row, idx[0]))
		unit, ok2 := parseMoney(t.Cell(row, idx[1]))
		line, ok3 := parseMoney(t.Cell(row, idx[2]))
		if ok1 && ok2 && ok3 && !utils.WithinEpsilon(qty.Mul(unit), line) {
			bad++
		}
	}
	res := counted(name, CategoryBusiness, bad)
	if bad > 0 {
		res.Message = "line_total differs from quantity * unit_price"
	}
	return res
}

func (in *input) orderTotals() CheckResult {
	const name = "business/order_total"
	orders, oi, err := in.columns(models.TableOrders, "id", "total_amount")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}
	items, ii, err := in.columns(models.TableOrderItems, "order_id", "line_total")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}

	sums := make(map[string]decimal.Decimal)
	unknown := make(map[string]bool)
	for _, row := range items.Rows {
		key, ok := idKey(items.Cell(row, ii[0]))
		if !ok {
			continue
		}
		line, ok := parseMoney(items.Cell(row, ii[1]))
		if !ok {
			unknown[key] = true
			continue
		}
		sums[key] = sums[key].Add(line)
	}

	bad := 0
	for _, row := range orders.Rows {
		key, ok := idKey(orders.Cell(row, oi[0]))
		if !ok || unknown[key] {
			continue
		}
		total, ok := parseMoney(orders.Cell(row, oi[1]))
		if ok && !utils.WithinEpsilon(sums[key], total) {
			bad++
		}
	}
	res := counted(name, CategoryBusiness, bad)
	if bad > 0 {
		res.Message = "total_amount differs from the sum of line totals"
	}
	return res
}

func (in *input) distinctProducts() CheckResult {
	const name = "business/distinct_products"
	t, idx, err := in.columns(models.TableOrderItems, "order_id", "product_id")
	if err != nil {
		return errored(name, CategoryBusiness, err)
	}
	seen := make(map[string]map[string]bool)
	repeated := make(map[string]bool)
	for _, row := range t.Rows {
		order, ok1 := idKey(t.Cell(row, idx[0]))
		product, ok2 := idKey(t.Cell(row, idx[1]))
		if !ok1 || !ok2 {
			continue
		}
		if seen[order] == nil {
			seen[order] = make(map[string]bool)
		}
		if seen[order][product] {
			repeated[order] = true
		}
		seen[order][product] = true
	}
	res := counted(name, CategoryBusiness, len(repeated))
	if len(repeated) > 0 {
		res.Details = sortedIDs(repeated)
		res.Message = "orders list the same product more than once"
	}
	return res
}

func (in *input) uniquenessChecks() []CheckResult {
	out := make([]CheckResult, 0, len(models.TableNames))
	for _, table := range models.TableNames {
		name := "unique/" + table + ".id"
		t, idx, err := in.columns(table, "id")
		if err != nil {
			out = append(out, errored(name, CategoryUniqueness, err))
			continue
		}
		seen := make(map[string]bool, t.Len())
		dups := make(map[string]bool)
		n := 0
		for _, row := range t.Rows {
			key, ok := idKey(t.Cell(row, idx[0]))
			if !ok {
				continue
			}
			if seen[key] {
				dups[key] = true
				n++
			}
			seen[key] = true
		}
		res := counted(name, CategoryUniqueness, n)
		if n > 0 {
			res.Details = sortedIDs(dups)
			res.Message = "duplicated ids"
		}
		out = append(out, res)
	}
	return out
}

func (in *input) completenessChecks() []CheckResult {
	out := make([]CheckResult, 0, len(models.TableNames))
	for _, table := range models.TableNames {
		name := "complete/" + table
		t, err := in.snap.Table(table)
		if err != nil {
			out = append(out, errored(name, CategoryComplete, err))
			continue
		}
		perColumn := make([]int, len(t.Columns))
		total := 0
		for _, row := range t.Rows {
			for i := range t.Columns {
				if missing(t.Cell(row, i)) {
					perColumn[i]++
					total++
				}
			}
		}
		res := counted(name, CategoryComplete, total)
		for i, n := range perColumn {
			if n > 0 {
				res.Details = append(res.Details, fmt.Sprintf("%s: %d missing", t.Columns[i], n))
			}
		}
		out = append(out, res)
	}
	return out
}

func (in *input) formatChecks() []CheckResult {
	out := make([]CheckResult, 0, len(models.TableNames))
	for _, table := range models.TableNames {
		name := "format/" + table
		t, err := in.snap.Table(table)
		if err != nil {
			out = append(out, errored(name, CategoryFormat, err))
			continue
		}
		total := 0
		var details []string
		for i, col := range t.Columns {
			k, typed := columnKinds[table][col]
			if !typed {
				continue
			}
			n := 0
			for _, row := range t.Rows {
				cell := t.Cell(row, i)
				if !missing(cell) && !parses(k, cell) {
					n++
				}
			}
			if n > 0 {
				details = append(details, fmt.Sprintf("%s: %d malformed", col, n))
				total += n
			}
		}
		res := counted(name, CategoryFormat, total)
		res.Details = details
		out = append(out, res)
	}
	return out
}

// sortedIDs orders numeric ids numerically and anything else after them.
func sortedIDs(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.ParseInt(out[i], 10, 64)
		b, errB := strconv.ParseInt(out[j], 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return out[i] < out[j]
	})
	return out
}

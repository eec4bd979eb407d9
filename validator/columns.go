package validator

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/shop-dataset/models"
)

type kind int

const (
	kindText kind = iota
	kindInt
	kindMoney
	kindDate
)

// columnKinds gives the expected type of every typed column.
var columnKinds = map[string]map[string]kind{
	models.TableCustomers: {
		"id": kindInt, "signup_date": kindDate, "age": kindInt,
	},
	models.TableProducts: {
		"id": kindInt, "price": kindMoney, "cost": kindMoney, "available_stock": kindInt,
	},
	models.TableOrders: {
		"id": kindInt, "customer_id": kindInt, "order_date": kindDate, "total_amount": kindMoney,
	},
	models.TableOrderItems: {
		"id": kindInt, "order_id": kindInt, "product_id": kindInt,
		"quantity": kindInt, "unit_price": kindMoney, "line_total": kindMoney,
	},
}

func missing(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseInt accepts "12" and integral floats such as "12.0".
func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

func parseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseDate(s string) (models.Date, bool) {
	if missing(s) {
		return models.Date{}, false
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, false
	}
	return d, true
}

func parses(k kind, s string) bool {
	switch k {
	case kindInt:
		_, ok := parseInt(s)
		return ok
	case kindMoney:
		_, ok := parseMoney(s)
		return ok
	case kindDate:
		_, ok := parseDate(s)
		return ok
	}
	return true
}

// idKey normalizes an id cell so "7" and "7.0" collide.
func idKey(s string) (string, bool) {
	if missing(s) {
		return "", false
	}
	if n, ok := parseInt(s); ok {
		return strconv.FormatInt(n, 10), true
	}
	return strings.TrimSpace(s), true
}

package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const TableOrderItems = "order_items"

var OrderItemColumns = []string{"id", "order_id", "product_id", "quantity", "unit_price", "line_total"}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

func (OrderItem) TableName() string { return TableOrderItems }

func (i OrderItem) Record() []string {
	return []string{
		strconv.FormatUint(uint64(i.ID), 10),
		strconv.FormatUint(uint64(i.OrderID), 10),
		strconv.FormatUint(uint64(i.ProductID), 10),
		strconv.Itoa(i.Quantity),
		i.UnitPrice.StringFixed(2),
		i.LineTotal.StringFixed(2),
	}
}

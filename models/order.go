package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const TableOrders = "orders"

var OrderColumns = []string{"id", "customer_id", "order_date", "total_amount", "payment_type", "status"}

type Order struct {
	ID          uint            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CustomerID  uint            `gorm:"not null;index" json:"customer_id"`
	OrderDate   Date            `gorm:"not null" json:"order_date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentType string          `gorm:"type:varchar(20);not null" json:"payment_type"`
	Status      string          `gorm:"type:varchar(20);not null" json:"status"`
}

func (Order) TableName() string { return TableOrders }

func (o Order) Record() []string {
	return []string{
		strconv.FormatUint(uint64(o.ID), 10),
		strconv.FormatUint(uint64(o.CustomerID), 10),
		o.OrderDate.String(),
		o.TotalAmount.StringFixed(2),
		o.PaymentType,
		o.Status,
	}
}

package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const TableProducts = "products"

var ProductColumns = []string{"id", "product_name", "product_type", "category", "price", "cost", "available_stock"}

type Product struct {
	ID             uint            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ProductName    string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductType    string          `gorm:"type:varchar(100);not null" json:"product_type"`
	Category       string          `gorm:"type:varchar(100);not null" json:"category"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	AvailableStock int             `gorm:"not null" json:"available_stock"`
}

func (Product) TableName() string { return TableProducts }

func (p Product) Record() []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.ProductName,
		p.ProductType,
		p.Category,
		p.Price.StringFixed(2),
		p.Cost.StringFixed(2),
		strconv.Itoa(p.AvailableStock),
	}
}

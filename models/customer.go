package models

import (
	"fmt"
	"strconv"
)

const TableCustomers = "customers"

var CustomerColumns = []string{"id", "first_name", "last_name", "email", "signup_date", "city", "age"}

type Customer struct {
	ID         uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FirstName  string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email      string `gorm:"type:varchar(255);not null" json:"email"`
	SignupDate Date   `gorm:"not null" json:"signup_date"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	Age        int    `gorm:"not null" json:"age"`
}

func (Customer) TableName() string { return TableCustomers }

// CustomerEmail derives the address a generated customer signs up with.
func CustomerEmail(id uint) string {
	return fmt.Sprintf("user%d@example.com", id)
}

// Record renders the row in CustomerColumns order.
func (c Customer) Record() []string {
	return []string{
		strconv.FormatUint(uint64(c.ID), 10),
		c.FirstName,
		c.LastName,
		c.Email,
		c.SignupDate.String(),
		c.City,
		strconv.Itoa(c.Age),
	}
}

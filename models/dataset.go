package models

// Dataset is the four generated tables held in memory.
type Dataset struct {
	Customers  []Customer
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
}

// TableNames lists the tables in dependency order.
var TableNames = []string{TableCustomers, TableProducts, TableOrders, TableOrderItems}

// Schema maps each table to its exact column set.
var Schema = map[string][]string{
	TableCustomers:  CustomerColumns,
	TableProducts:   ProductColumns,
	TableOrders:     OrderColumns,
	TableOrderItems: OrderItemColumns,
}

// RowCounts reports the number of rows per table.
func (d *Dataset) RowCounts() map[string]int {
	return map[string]int{
		TableCustomers:  len(d.Customers),
		TableProducts:   len(d.Products),
		TableOrders:     len(d.Orders),
		TableOrderItems: len(d.OrderItems),
	}
}

// Records renders every table in column order, keyed by table name.
func (d *Dataset) Records() map[string][][]string {
	out := make(map[string][][]string, 4)

	rows := make([][]string, 0, len(d.Customers))
	for _, c := range d.Customers {
		rows = append(rows, c.Record())
	}
	out[TableCustomers] = rows

	rows = make([][]string, 0, len(d.Products))
	for _, p := range d.Products {
		rows = append(rows, p.Record())
	}
	out[TableProducts] = rows

	rows = make([][]string, 0, len(d.Orders))
	for _, o := range d.Orders {
		rows = append(rows, o.Record())
	}
	out[TableOrders] = rows

	rows = make([][]string, 0, len(d.OrderItems))
	for _, i := range d.OrderItems {
		rows = append(rows, i.Record())
	}
	out[TableOrderItems] = rows

	return out
}

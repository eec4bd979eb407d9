package catalog

// DefaultEntries is the beauty-store catalog the generator ships with.
var DefaultEntries = []Entry{
	// Hair care
	{"Shampoo", "Shampoo"},
	{"Conditioner", "Conditioner"},
	{"Hair Mask", "Hair Mask"},
	{"Leave-in Treatment", "Hair Treatment"},
	{"Scalp Serum", "Hair Treatment"},
	{"Dry Shampoo", "Shampoo"},
	{"Hair Oil", "Hair Treatment"},
	{"Hair Serum", "Hair Treatment"},
	// Body care
	{"Body Lotion", "Body Care"},
	{"Body Wash", "Body Care"},
	{"Body Scrub", "Body Care"},
	{"Hand Cream", "Hand Care"},
	// Face care
	{"Face Cleanser", "Face Care"},
	{"Face Cream", "Face Care"},
	{"Face Serum", "Face Care"},
	{"Toner", "Face Care"},
	{"BB Cream", "Face Care"},
	// Makeup
	{"Foundation", "Makeup"},
	{"Blush", "Makeup"},
	{"Mascara", "Makeup"},
	{"Lip Balm", "Makeup"},
	{"Lipstick", "Makeup"},
	// Nail care and tools
	{"Nail Polish", "Nail Care"},
	{"Base Coat", "Nail Care"},
	{"Top Coat", "Nail Care"},
	{"Cuticle Oil", "Nail Care"},
	{"Nail Strengthener", "Nail Care"},
	{"Nail File", "Nail Tools"},
	{"Nail Clippers", "Nail Tools"},
	{"Nail Brush", "Nail Tools"},
}

var Cities = []string{
	"Stockholm",
	"Göteborg",
	"Malmö",
	"Uppsala",
	"Västerås",
	"Örebro",
	"Linköping",
	"Helsingborg",
	"Jönköping",
	"Norrköping",
	"Lund",
	"Umeå",
	"Gävle",
	"Borås",
	"Södertälje",
	"Eskilstuna",
	"Halmstad",
	"Växjö",
	"Karlstad",
	"Täby",
}

// Adjectives and Sizes are combined with the product type into a product name.
var Adjectives = []string{
	"Hydra", "Silk", "Pure", "Gentle", "Revive", "Nourish",
	"Balance", "Glow", "Radiant", "Calming", "Repair", "Botanical",
	"Fresh", "Velvet", "Luxe", "Bright", "Soothing", "Clarifying",
}

var Sizes = []string{"30ml", "50ml", "75ml", "100ml", "150ml", "200ml", "250ml"}

const (
	PaymentCard    = "card"
	PaymentInvoice = "invoice"
	PaymentPaypal  = "paypal"
	PaymentSwish   = "swish"

	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusReturned  = "returned"
)

// Default returns a resolver over DefaultEntries.
func Default() *Resolver {
	r, err := NewResolver(DefaultEntries)
	if err != nil {
		panic(err)
	}
	return r
}

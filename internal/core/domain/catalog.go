package domain

import (
	"slices"
	"strings"
	"time"
)

// Currency is the single currency every price is quoted in.
const Currency = "EGP"

// ProductType is the category a product is listed under.
type ProductType string

const (
	TypeLaptop      ProductType = "laptop"
	TypeGPU         ProductType = "gpu"
	TypeCPU         ProductType = "cpu"
	TypeHDD         ProductType = "hdd"
	TypeMotherboard ProductType = "motherboard"
)

var productTypeAliases = map[string]ProductType{
	"laptop":       TypeLaptop,
	"laptops":      TypeLaptop,
	"gpu":          TypeGPU,
	"gpus":         TypeGPU,
	"cpu":          TypeCPU,
	"cpus":         TypeCPU,
	"hdd":          TypeHDD,
	"hdds":         TypeHDD,
	"motherboard":  TypeMotherboard,
	"motherboards": TypeMotherboard,
}

// NormalizeProductType maps a category name (singular or plural, any case) to
// its ProductType. Unknown values yield "".
func NormalizeProductType(raw string) ProductType {
	return productTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
}

// Brand is a manufacturer products are grouped under.
type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
}

// LaptopSpecs holds the fields only laptops carry.
type LaptopSpecs struct {
	GPU     string
	CPU     string
	RAM     string
	Storage string
	Display string
}

func (s LaptopSpecs) values() []string {
	return []string{s.GPU, s.CPU, s.RAM, s.Storage, s.Display}
}

// Product is a catalogue item.
type Product struct {
	ID          string
	Type        ProductType
	BrandID     string
	ShortName   string
	Title       string
	Price       float64
	Description string
	Images      []string
	Warranty    int
	Specs       LaptopSpecs
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Brand is hydrated by the catalogue service; nil when the brand is gone.
	Brand *Brand
}

func (p *Product) IsLaptop() bool {
	return p.Type == TypeLaptop
}

// ProductPatch carries a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	BrandID     *string
	ShortName   *string
	Title       *string
	Price       *float64
	Description *string
	Images      []string
	ImagesSet   bool
	Warranty    *int
	GPU         *string
	CPU         *string
	RAM         *string
	Storage     *string
	Display     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.BrandID == nil && p.ShortName == nil && p.Title == nil && p.Price == nil &&
		p.Description == nil && !p.ImagesSet && p.Warranty == nil &&
		p.GPU == nil && p.CPU == nil && p.RAM == nil && p.Storage == nil && p.Display == nil
}

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	IDs      []string
	Type     ProductType
	BrandID  string
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

// Matches reports whether p satisfies every filter criterion. Search is a
// case-insensitive substring match over the product's text fields, its brand
// name, its type and, for laptops, its specs.
func (f ProductFilter) Matches(p *Product) bool {
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, p.ID) {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.BrandID != "" && p.BrandID != f.BrandID {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return f.matchesSearch(p)
}

func (f ProductFilter) matchesSearch(p *Product) bool {
	needle := strings.ToLower(f.Search)
	if needle == "" {
		return true
	}

	fields := []string{p.Title, p.ShortName, p.Description, string(p.Type)}
	if p.Brand != nil {
		fields = append(fields, p.Brand.Name)
	}
	if p.IsLaptop() {
		fields = append(fields, p.Specs.values()...)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

package models

type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Product struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Category    string            `json:"category" yaml:"category"`
	Price       float64           `json:"price" yaml:"price"`
	Discount    float64           `json:"discount" yaml:"discount"`
	Rating      float64           `json:"rating" yaml:"rating"`
	Reviews     int               `json:"reviews" yaml:"reviews"`
	InStock     bool              `json:"in_stock" yaml:"in_stock"`
	Description string            `json:"description" yaml:"description"`
	Details     map[string]string `json:"details" yaml:"details"`
	Features    []string          `json:"features" yaml:"features"`
	Images      []string          `json:"images" yaml:"images"`
	ModelPath   string            `json:"model_path" yaml:"model_path"`
}

// FinalPrice is the price after discount. Negative results are not rejected.
func (p Product) FinalPrice() float64 {
	if p.Discount > 0 {
		return p.Price - p.Discount
	}
	return p.Price
}

// Clone copies the product including its maps and slices.
func (p Product) Clone() Product {
	if p.Details != nil {
		details := make(map[string]string, len(p.Details))
		for k, v := range p.Details {
			details[k] = v
		}
		p.Details = details
	}
	p.Features = append([]string(nil), p.Features...)
	p.Images = append([]string(nil), p.Images...)
	return p
}

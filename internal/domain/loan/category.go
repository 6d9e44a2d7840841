package loan

type Category string

const (
	CategoryInstant  Category = "instant"
	CategorySalary   Category = "salary"
	CategoryConsumer Category = "consumer"
	CategoryBusiness Category = "business"
)

// CategoryConfig is the sole source of amount/tenure bounds and the
// interest rate for a loan category. Nothing else may hard-code these.
type CategoryConfig struct {
	MinAmount    int64   `json:"min_amount"`
	MaxAmount    int64   `json:"max_amount"`
	MinTenure    int     `json:"min_tenure"`
	MaxTenure    int     `json:"max_tenure"`
	InterestRate float64 `json:"interest_rate"`
}

var categoryConfigs = map[Category]CategoryConfig{
	CategoryInstant:  {MinAmount: 5_000, MaxAmount: 50_000, MinTenure: 1, MaxTenure: 12, InterestRate: 18},
	CategorySalary:   {MinAmount: 50_000, MaxAmount: 1_000_000, MinTenure: 12, MaxTenure: 60, InterestRate: 15},
	CategoryConsumer: {MinAmount: 100_000, MaxAmount: 2_000_000, MinTenure: 24, MaxTenure: 84, InterestRate: 16},
	CategoryBusiness: {MinAmount: 25_000, MaxAmount: 500_000, MinTenure: 6, MaxTenure: 36, InterestRate: 20},
}

// ConfigFor returns the configuration for cat, ok=false for unknown categories.
func ConfigFor(cat Category) (CategoryConfig, bool) {
	cfg, ok := categoryConfigs[cat]
	return cfg, ok
}

// Configs returns a copy of the full category table (read endpoint payload).
func Configs() map[Category]CategoryConfig {
	out := make(map[Category]CategoryConfig, len(categoryConfigs))
	for k, v := range categoryConfigs {
		out[k] = v
	}
	return out
}

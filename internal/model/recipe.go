package model

// Recipe is the normalized summary of one recipe as shown in a result grid.
type Recipe struct {
	ID             int      `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Image          string   `json:"image" yaml:"image"`
	ReadyInMinutes int      `json:"ready_in_minutes" yaml:"ready_in_minutes"`
	Servings       int      `json:"servings" yaml:"servings"`
	Summary        string   `json:"summary" yaml:"summary"`
	DishTypes      []string `json:"dish_types" yaml:"dish_types"`
	Diets          []string `json:"diets" yaml:"diets"`
	HealthScore    *int     `json:"health_score,omitempty" yaml:"health_score"`
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Amount   float64 `json:"amount" yaml:"amount"`
	Unit     string  `json:"unit" yaml:"unit"`
	Original string  `json:"original" yaml:"original"`
}

// Step is one numbered instruction
type Step struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"step" yaml:"step"`
}

// Nutrient is one nutrition fact
type Nutrient struct {
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
	Unit   string  `json:"unit" yaml:"unit"`
}

// Detail extends Recipe with ingredients, instructions and nutrition
type Detail struct {
	Recipe       `yaml:",inline"`
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients"`
	Instructions []Step       `json:"instructions" yaml:"instructions"`
	Nutrition    []Nutrient   `json:"nutrition" yaml:"nutrition"`
}

// Clone returns a deep copy so callers can never mutate shared records.
func (s Recipe) Clone() Recipe {
	out := s
	out.DishTypes = cloneStrings(s.DishTypes)
	out.Diets = cloneStrings(s.Diets)
	if s.HealthScore != nil {
		score := *s.HealthScore
		out.HealthScore = &score
	}
	return out
}

// Clone returns a deep copy of the detail record.
func (d Detail) Clone() Detail {
	out := Detail{Recipe: d.Recipe.Clone()}
	out.Ingredients = append(make([]Ingredient, 0, len(d.Ingredients)), d.Ingredients...)
	out.Instructions = append(make([]Step, 0, len(d.Instructions)), d.Instructions...)
	out.Nutrition = append(make([]Nutrient, 0, len(d.Nutrition)), d.Nutrition...)
	return out
}

// BadgeDishTypes returns at most n dish types, in display order.
func (s Recipe) BadgeDishTypes(n int) []string {
	if n < 0 || len(s.DishTypes) <= n {
		return s.DishTypes
	}
	return s.DishTypes[:n]
}

// Score returns the health score, or zero when the record has none.
func (s Recipe) Score() int {
	if s.HealthScore == nil {
		return 0
	}
	return *s.HealthScore
}

// TopNutrients returns the first n nutrition facts.
func (d Detail) TopNutrients(n int) []Nutrient {
	if n < 0 || len(d.Nutrition) <= n {
		return d.Nutrition
	}
	return d.Nutrition[:n]
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

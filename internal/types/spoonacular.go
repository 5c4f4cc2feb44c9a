package types

// SpoonacularRecipe is a recipe record as returned by the Spoonacular
// complexSearch and information endpoints. Optional blocks are pointers or
// nil slices when absent from the payload.
type SpoonacularRecipe struct {
	ID                   int                      `json:"id"`
	Title                string                   `json:"title"`
	Image                string                   `json:"image"`
	ReadyInMinutes       int                      `json:"readyInMinutes"`
	Servings             int                      `json:"servings"`
	Summary              string                   `json:"summary"`
	DishTypes            []string                 `json:"dishTypes"`
	Diets                []string                 `json:"diets"`
	HealthScore          *float64                 `json:"healthScore,omitempty"`
	ExtendedIngredients  []SpoonacularIngredient  `json:"extendedIngredients,omitempty"`
	AnalyzedInstructions []SpoonacularInstruction `json:"analyzedInstructions,omitempty"`
	Nutrition            *SpoonacularNutrition    `json:"nutrition,omitempty"`
}

// SpoonacularIngredient is one entry of extendedIngredients
type SpoonacularIngredient struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
}

// SpoonacularInstruction is one analyzed instruction block
type SpoonacularInstruction struct {
	Name  string            `json:"name"`
	Steps []SpoonacularStep `json:"steps"`
}

// SpoonacularStep is a numbered instruction step
type SpoonacularStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// SpoonacularNutrition wraps the nutrient list returned with includeNutrition=true
type SpoonacularNutrition struct {
	Nutrients []SpoonacularNutrient `json:"nutrients"`
}

// SpoonacularNutrient is one nutrition fact
type SpoonacularNutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ComplexSearchResponse is the body of GET /recipes/complexSearch
type ComplexSearchResponse struct {
	Results      []SpoonacularRecipe `json:"results"`
	Offset       int                 `json:"offset"`
	Number       int                 `json:"number"`
	TotalResults int                 `json:"totalResults"`
}

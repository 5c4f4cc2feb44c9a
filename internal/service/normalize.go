package service

import (
	"math"

	"github.com/pageza/recipebrowser/internal/model"
	"github.com/pageza/recipebrowser/internal/types"
)

// toRecipe maps a remote record onto the display summary. Absent tag lists
// become empty slices.
func toRecipe(r types.SpoonacularRecipe) model.Recipe {
	recipe := model.Recipe{
		ID:             r.ID,
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       r.Servings,
		Summary:        r.Summary,
		DishTypes:      nonNil(r.DishTypes),
		Diets:          nonNil(r.Diets),
	}
	if r.HealthScore != nil {
		score := int(math.Round(*r.HealthScore))
		recipe.HealthScore = &score
	}
	return recipe
}

// toDetail maps an information record. Instructions come from the first
// analyzed block only.
func toDetail(r types.SpoonacularRecipe) model.Detail {
	detail := model.Detail{
		Recipe:       toRecipe(r),
		Ingredients:  make([]model.Ingredient, 0, len(r.ExtendedIngredients)),
		Instructions: []model.Step{},
		Nutrition:    []model.Nutrient{},
	}

	for _, ing := range r.ExtendedIngredients {
		detail.Ingredients = append(detail.Ingredients, model.Ingredient{
			ID:       ing.ID,
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
			Original: ing.Original,
		})
	}

	if len(r.AnalyzedInstructions) > 0 {
		for _, step := range r.AnalyzedInstructions[0].Steps {
			detail.Instructions = append(detail.Instructions, model.Step{Number: step.Number, Text: step.Step})
		}
	}

	if r.Nutrition != nil {
		for _, n := range r.Nutrition.Nutrients {
			detail.Nutrition = append(detail.Nutrition, model.Nutrient{Name: n.Name, Amount: n.Amount, Unit: n.Unit})
		}
	}

	return detail
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipeClone(t *testing.T) {
	score := 75
	original := Recipe{
		ID:          1,
		Title:       "Pasta",
		DishTypes:   []string{"main course", "pasta"},
		Diets:       []string{},
		HealthScore: &score,
	}

	clone := original.Clone()
	clone.DishTypes[0] = "changed"
	*clone.HealthScore = 10

	assert.Equal(t, "main course", original.DishTypes[0])
	assert.Equal(t, 75, *original.HealthScore)
	assert.NotNil(t, clone.Diets)
}

func TestBadgeDishTypes(t *testing.T) {
	s := Recipe{DishTypes: []string{"lunch", "main course", "main dish", "dinner"}}

	assert.Equal(t, []string{"lunch", "main course", "main dish"}, s.BadgeDishTypes(3))
	assert.Equal(t, s.DishTypes, s.BadgeDishTypes(10))
	assert.Empty(t, Recipe{DishTypes: []string{}}.BadgeDishTypes(3))
}

func TestTopNutrients(t *testing.T) {
	d := Detail{Nutrition: make([]Nutrient, 12)}
	assert.Len(t, d.TopNutrients(8), 8)

	d = Detail{Nutrition: make([]Nutrient, 3)}
	assert.Len(t, d.TopNutrients(8), 3)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Recipe{}.Score())
	score := 42
	assert.Equal(t, 42, Recipe{HealthScore: &score}.Score())
}

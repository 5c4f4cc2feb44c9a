// Package demo holds the fixed recipe records shown when no Spoonacular
// API key is stored or a remote call fails.
package demo

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pageza/recipebrowser/internal/model"
)

//go:embed recipes.yaml
var rawDataset []byte

type dataset struct {
	Recipes []model.Recipe `yaml:"recipes"`
	Detail  struct {
		Ingredients  []model.Ingredient `yaml:"ingredients"`
		Instructions []model.Step       `yaml:"instructions"`
		Nutrition    []model.Nutrient   `yaml:"nutrition"`
	} `yaml:"detail"`
}

var (
	loadOnce sync.Once
	loaded   dataset
	loadErr  error
)

func load() dataset {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(rawDataset, &loaded)
	})
	if loadErr != nil {
		// The file is embedded at build time; a parse failure is a programming error.
		panic(fmt.Sprintf("demo: invalid embedded dataset: %v", loadErr))
	}
	return loaded
}

// Recipes returns the demo recipe list in its fixed order.
func Recipes() []model.Recipe {
	ds := load()
	out := make([]model.Recipe, len(ds.Recipes))
	for i, r := range ds.Recipes {
		out[i] = r.Clone()
	}
	return out
}

// Detail returns the demo detail record. Its summary fields come from the
// demo recipe with the given id, or the first demo recipe when none matches.
func Detail(id int) model.Detail {
	ds := load()
	summary := ds.Recipes[0]
	for _, r := range ds.Recipes {
		if r.ID == id {
			summary = r
			break
		}
	}
	d := model.Detail{
		Recipe:       summary,
		Ingredients:  ds.Detail.Ingredients,
		Instructions: ds.Detail.Instructions,
		Nutrition:    ds.Detail.Nutrition,
	}
	return d.Clone()
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/markup"
	"github.com/pageza/recipebrowser/internal/model"
	"github.com/pageza/recipebrowser/internal/service"
)

type opener func() (keystore.Backend, service.RecipeAPI, error)

// cli holds what the subcommands share once the root command has run
type cli struct {
	open    opener
	profile string
	recipes service.IRecipeService
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	cmd := &cobra.Command{
		Use:           "recipectl",
		Short:         "Search recipes and manage the Spoonacular API key",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			keys, api, err := c.open()
			if err != nil {
				return err
			}
			c.recipes = service.NewRecipeService(api, keystore.Scoped(keys, c.profile))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&c.profile, "profile", "cli", "Profile the API key is stored under")

	cmd.AddCommand(c.searchCmd(), c.showCmd(), c.downloadCmd(), c.keyCmd())
	return cmd
}

func (c *cli) searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := c.recipes.Search(cmd.Context(), strings.Join(args, " "), limit)

			out := cmd.OutOrStdout()
			printSource(out, result.Outcome)
			for _, r := range result.Recipes {
				fmt.Fprintf(out, "%d\t%s\t%d min\t%d servings", r.ID, r.Title, r.ReadyInMinutes, r.Servings)
				if badges := r.BadgeDishTypes(3); len(badges) > 0 {
					fmt.Fprintf(out, "\t[%s]", strings.Join(badges, ", "))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultSearchLimit, "Maximum number of results")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe with ingredients, instructions and nutrition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			result := c.recipes.Details(cmd.Context(), id)
			out := cmd.OutOrStdout()
			printSource(out, result.Outcome)
			printDetail(out, result.Recipe)
			return nil
		},
	}
}

func (c *cli) downloadCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Save a recipe as a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			recipe := c.recipes.Details(cmd.Context(), id).Recipe.Recipe
			path := filepath.Join(dir, service.DownloadFilename(recipe.Title))
			if err := os.WriteFile(path, []byte(service.DownloadText(recipe)), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write the file to")
	return cmd
}

func (c *cli) keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored Spoonacular API key",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <api-key>",
			Short: "Store an API key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value := strings.TrimSpace(args[0])
				if value == "" {
					return errors.New("api key must not be empty")
				}
				if err := c.recipes.SetAPIKey(cmd.Context(), value); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.recipes.SetAPIKey(cmd.Context(), ""); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "API key removed")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether an API key is stored",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				if c.recipes.HasAPIKey(cmd.Context()) {
					fmt.Fprintln(cmd.OutOrStdout(), "API key set")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "no API key set")
				}
			},
		},
	)
	return cmd
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", raw)
	}
	return id, nil
}

func printSource(out io.Writer, outcome service.Outcome) {
	if outcome.IsFallback() {
		fmt.Fprintf(out, "(demo data: %s)\n", outcome.Reason)
	}
}

func printDetail(out io.Writer, d model.Detail) {
	fmt.Fprintf(out, "%s\n%d minutes, %d servings", d.Title, d.ReadyInMinutes, d.Servings)
	if d.HealthScore != nil {
		fmt.Fprintf(out, ", health score %d/100", *d.HealthScore)
	}
	fmt.Fprintln(out)

	if summary, err := markup.ToText(d.Summary); err == nil && summary != "" {
		fmt.Fprintf(out, "\n%s\n", summary)
	}

	if len(d.Ingredients) > 0 {
		fmt.Fprintln(out, "\nIngredients:")
		for _, ing := range d.Ingredients {
			fmt.Fprintf(out, "  - %s: %s %s\n", ing.Name, strconv.FormatFloat(ing.Amount, 'f', -1, 64), ing.Unit)
		}
	}

	if len(d.Instructions) > 0 {
		fmt.Fprintln(out, "\nInstructions:")
		for _, step := range d.Instructions {
			fmt.Fprintf(out, "  %d. %s\n", step.Number, step.Text)
		}
	}

	if nutrients := d.TopNutrients(8); len(nutrients) > 0 {
		fmt.Fprintln(out, "\nNutrition:")
		for _, n := range nutrients {
			fmt.Fprintf(out, "  %s: %.0f%s\n", n.Name, n.Amount, n.Unit)
		}
	}
}

// cookctl is a maintenance CLI over the cook data core: inspect and edit
// recipes, replay the offline queue, and preview menu composition from the
// terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cook "github.com/tinkeroneo/cook-go"
)

var (
	serviceURL string
	apiKey     string
	userID     string
	spaceID    string
	debug      bool
)

const commandTimeout = 30 * time.Second

func dbg(v interface{}) {
	if !debug {
		return
	}
	log.Debug().Interface("data", v).Msg("debug output")
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cookctl",
		Short: "cookctl manages recipes, menus and the offline queue",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("COOK_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", os.Getenv("COOK_BACKEND_URL"), "Base URL of the cook backend (empty for local-only)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("COOK_API_KEY"), "API key for the backend")
	rootCmd.PersistentFlags().StringVar(&userID, "user-id", "local", "User id for the session scope")
	rootCmd.PersistentFlags().StringVar(&spaceID, "space-id", "", "Space id for the session scope")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newListRecipesCmd())
	rootCmd.AddCommand(newUpsertRecipeCmd())
	rootCmd.AddCommand(newDeleteRecipeCmd())
	rootCmd.AddCommand(newQueueStatusCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAddPartCmd())
	rootCmd.AddCommand(newRemovePartCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newLogCookCmd())
	rootCmd.AddCommand(newUploadImageCmd())

	return rootCmd
}

// newSessionClient builds a client from the persistent flags and opens the
// session scope. Callers must Close it.
func newSessionClient() (*cook.Client, error) {
	var c *cook.Client
	var err error
	if serviceURL == "" {
		c, err = cook.NewLocal()
	} else {
		c, err = cook.New(serviceURL, apiKey)
	}
	if err != nil {
		return nil, err
	}
	c.SetSession(userID, spaceID)
	return c, nil
}

func newListRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-recipes",
		Short: "List all recipes in the active space",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			recipes, err := c.GetAll(ctx)
			if err != nil {
				return err
			}
			dbg(recipes)
			for _, r := range recipes {
				marker := " "
				if r.Pending {
					marker = "*"
				}
				menu := ""
				if c.IsMenuRecipe(r.ID) {
					menu = " [menu]"
				}
				fmt.Printf("%s %s - %s%s\n", marker, r.ID, r.Title, menu)
			}
			fmt.Printf("%d recipes (* = pending sync)\n", len(recipes))
			return nil
		},
	}
}

func newUpsertRecipeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "upsert-recipe",
		Short: "Insert or replace a recipe from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var recipe cook.Recipe
			if err := json.Unmarshal(data, &recipe); err != nil {
				return fmt.Errorf("parse recipe file: %w", err)
			}

			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			start := time.Now()
			all, err := c.Upsert(ctx, recipe, true)
			if err != nil {
				log.Error().Err(err).Str("recipe_id", recipe.ID).Dur("elapsed", time.Since(start)).Msg("upsert failed")
				return err
			}
			fmt.Printf("Recipe stored: %s - %s (%d total)\n", recipe.ID, recipe.Title, len(all))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the recipe JSON (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteRecipeCmd() *cobra.Command {
	var recipeID string

	cmd := &cobra.Command{
		Use:   "delete-recipe",
		Short: "Delete a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if err := c.Remove(ctx, recipeID); err != nil {
				return err
			}
			fmt.Printf("Recipe deleted: %s\n", recipeID)
			return nil
		},
	}

	cmd.Flags().StringVar(&recipeID, "recipe-id", "", "Recipe ID (required)")
	_ = cmd.MarkFlagRequired("recipe-id")
	return cmd
}

func newQueueStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue-status",
		Short: "Show recipes with pending offline writes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			pending := c.PendingRecipeIDs()
			if len(pending) == 0 {
				fmt.Println("Queue empty")
				return nil
			}
			for id := range pending {
				fmt.Println(id)
			}
			fmt.Printf("%d pending\n", len(pending))
			return nil
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay the offline queue against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			start := time.Now()
			replayed, err := c.Sync(ctx)
			elapsed := time.Since(start)
			if err != nil {
				log.Error().Err(err).Int("replayed", replayed).Dur("elapsed", elapsed).Msg("sync stopped")
				return err
			}
			fmt.Printf("Synced %d queued actions in %s\n", replayed, elapsed.Round(time.Millisecond))
			return nil
		},
	}
}

func newAddPartCmd() *cobra.Command {
	var parentID, childID string
	var order int

	cmd := &cobra.Command{
		Use:   "add-part",
		Short: "Attach a recipe as a component of a menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if _, err := c.LoadParts(ctx); err != nil {
				return err
			}
			if err := c.AddPart(ctx, parentID, childID, order); err != nil {
				return err
			}
			fmt.Printf("Part added: %s -> %s\n", parentID, childID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent-id", "", "Menu recipe ID (required)")
	cmd.Flags().StringVar(&childID, "child-id", "", "Component recipe ID (required)")
	cmd.Flags().IntVar(&order, "order", 0, "Sort position among siblings")
	_ = cmd.MarkFlagRequired("parent-id")
	_ = cmd.MarkFlagRequired("child-id")
	return cmd
}

func newRemovePartCmd() *cobra.Command {
	var parentID, childID string

	cmd := &cobra.Command{
		Use:   "remove-part",
		Short: "Detach a component from a menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if _, err := c.LoadParts(ctx); err != nil {
				return err
			}
			if err := c.RemovePart(ctx, parentID, childID); err != nil {
				return err
			}
			fmt.Printf("Part removed: %s -> %s\n", parentID, childID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent-id", "", "Menu recipe ID (required)")
	cmd.Flags().StringVar(&childID, "child-id", "", "Component recipe ID (required)")
	_ = cmd.MarkFlagRequired("parent-id")
	_ = cmd.MarkFlagRequired("child-id")
	return cmd
}

func newMenuCmd() *cobra.Command {
	var recipeID string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Preview the combined ingredients and steps of a menu recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if _, err := c.LoadParts(ctx); err != nil {
				return err
			}
			ingredients, err := c.MenuIngredients(ctx, recipeID)
			if err != nil {
				return err
			}
			steps, err := c.MenuSteps(ctx, recipeID)
			if err != nil {
				return err
			}

			fmt.Println("Ingredients")
			for _, sec := range ingredients {
				fmt.Printf("  %s\n", sec.Title)
				for _, item := range sec.Items {
					fmt.Printf("    %s\n", item)
				}
			}
			fmt.Println("Steps")
			for _, sec := range steps {
				fmt.Printf("  %s\n", sec.Title)
				for _, card := range sec.Cards {
					fmt.Printf("    %s\n", card.Title)
					for _, line := range card.Body {
						fmt.Printf("      %s\n", line)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recipeID, "recipe-id", "", "Menu recipe ID (required)")
	_ = cmd.MarkFlagRequired("recipe-id")
	return cmd
}

func newLogCookCmd() *cobra.Command {
	var recipeID, note string
	var rating int

	cmd := &cobra.Command{
		Use:   "log-cook",
		Short: "Record that a recipe was cooked",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			event, err := c.CookLog().Add(recipeID, rating, note)
			if err != nil {
				return err
			}
			dbg(event)
			fmt.Printf("Logged: %s cooked at %s\n", recipeID, event.At.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&recipeID, "recipe-id", "", "Recipe ID (required)")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating 1-5 (0 = unrated)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	_ = cmd.MarkFlagRequired("recipe-id")
	return cmd
}

func newUploadImageCmd() *cobra.Command {
	var recipeID, file string

	cmd := &cobra.Command{
		Use:   "upload-image",
		Short: "Upload a recipe image to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serviceURL == "" {
				return fmt.Errorf("upload-image needs --service-url")
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			c, err := newSessionClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			name := file
			if i := strings.LastIndexByte(file, '/'); i >= 0 {
				name = file[i+1:]
			}
			result, err := c.Media().UploadImage(ctx, spaceID, recipeID, name, f)
			if err != nil {
				return err
			}
			fmt.Printf("Image stored: %s\n", result.Reference)
			return nil
		},
	}

	cmd.Flags().StringVar(&recipeID, "recipe-id", "", "Recipe ID (required)")
	cmd.Flags().StringVar(&file, "file", "", "Image file path (required)")
	_ = cmd.MarkFlagRequired("recipe-id")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

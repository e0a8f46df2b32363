package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/recipematch/pkg/catalog"
	"github.com/korjavin/recipematch/pkg/config"
	"github.com/korjavin/recipematch/pkg/engine"
	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/messages"
	"github.com/korjavin/recipematch/pkg/openai"
	"github.com/korjavin/recipematch/pkg/pantry"
	"github.com/korjavin/recipematch/pkg/scheduler"
	"github.com/korjavin/recipematch/pkg/state"
	"github.com/korjavin/recipematch/pkg/stats"
	"github.com/korjavin/recipematch/pkg/storage"
	"github.com/korjavin/recipematch/pkg/telegram"
)

func main() {
	// Initialize logger
	log := logger.Global
	log.Info("Starting RecipeMatch bot...")

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// Start BadgerDB garbage collection
	store.StartGCRoutine(10 * time.Minute)

	// Initialize OpenAI client (optional)
	var openaiClient *openai.Client
	if cfg.OpenAIAPIKey != "" {
		openaiClient = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)
	} else {
		log.Warn("OPENAI_API_KEY not set, using built-in seed recipes and static messages")
	}

	// Initialize services
	catalogService := catalog.New(store)
	pantryService := pantry.New(store)
	statsService := stats.New(store)
	messageService := messages.New(openaiClient)
	stateManager := state.New()
	matchEngine := engine.New(catalogService)

	// Seed the catalog on first start
	var seedProvider catalog.RecipeInfoProvider
	if openaiClient != nil {
		seedProvider = openaiClient
	}
	if err := catalogService.EnsureSeeded(context.Background(), seedProvider); err != nil {
		log.Error("Failed to seed catalog: %v", err)
		os.Exit(1)
	}

	// Initialize Telegram bot
	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	matchOpts := engine.MatchOptions{
		MinMatchPercentage: cfg.MinMatchPercentage,
		MaxResults:         cfg.MaxResults,
	}

	// Setup command handlers
	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, messageService.GenerateWelcomeMessage())
		},
		"help": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, helpText)
		},
		"add": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			args := strings.TrimSpace(message.CommandArguments())
			if args == "" {
				stateManager.SetState(chatID, state.StateAddingIngredients)
				bot.SendMessage(chatID, "Send me ingredients (one message, comma separated). Say /done when finished.")
				return
			}
			addIngredients(bot, pantryService, messageService, chatID, args)
		},
		"done": func(message *tgbotapi.Message) {
			stateManager.ClearState(message.Chat.ID)
			bot.SendMessage(message.Chat.ID, "Got it. Run /match to see what you can cook!")
		},
		"remove": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /remove <ingredient>")
				return
			}
			if err := pantryService.RemoveIngredient(chatID, name); err != nil {
				log.Error("Failed to remove ingredient: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("remove ingredient"))
				return
			}
			bot.SendMessage(chatID, fmt.Sprintf("Removed %s from your pantry.", name))
		},
		"pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			names, err := pantryService.Names(chatID)
			if err != nil {
				log.Error("Failed to list pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("list pantry"))
				return
			}
			if len(names) == 0 {
				bot.SendMessage(chatID, messageService.GenerateEmptyPantryMessage())
				return
			}
			bot.SendMessage(chatID, messageService.GeneratePantryContentsMessage(names))
		},
		"reset": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			if err := pantryService.ResetPantry(chatID); err != nil {
				log.Error("Failed to reset pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("reset pantry"))
				return
			}
			bot.SendMessage(chatID, "Pantry emptied.")
		},
		"match": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			names, err := pantryService.Names(chatID)
			if err != nil {
				log.Error("Failed to load pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("load pantry"))
				return
			}

			matches, err := matchEngine.FindMatchingRecipes(context.Background(), names, matchOpts)
			if err != nil {
				var inputErr *engine.InputValidationError
				if errors.As(err, &inputErr) {
					bot.SendMessage(chatID, messageService.GenerateEmptyPantryMessage())
					return
				}
				// A failed search must not read as "no matches".
				log.Error("Recipe search failed: %v", err)
				bot.SendMessage(chatID, messageService.GenerateSearchFailedMessage())
				return
			}

			if err := statsService.RecordSearch(chatID, names, matches); err != nil {
				log.Error("Failed to record search stats: %v", err)
			}

			if len(matches) == 0 {
				bot.SendMessage(chatID, messageService.GenerateNoMatchesMessage())
				return
			}
			bot.SendMessageWithKeyboard(chatID, messageService.FormatMatchResults(matches), telegram.MatchKeyboard(matches))
		},
		"find": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				bot.SendMessage(chatID, "Usage: /find <ingredient>")
				return
			}

			ids, err := matchEngine.FindRecipesByIngredient(context.Background(), name)
			if err != nil {
				log.Error("Ingredient lookup failed: %v", err)
				bot.SendMessage(chatID, messageService.GenerateSearchFailedMessage())
				return
			}
			if len(ids) == 0 {
				bot.SendMessage(chatID, fmt.Sprintf("No recipes use %s.", name))
				return
			}

			// Enrich ids with titles; a single bad recipe degrades to
			// its id instead of failing the whole answer.
			var b strings.Builder
			fmt.Fprintf(&b, "Recipes using %s:\n", name)
			for _, id := range ids {
				recipe, err := catalogService.RecipeByID(context.Background(), id)
				if err != nil {
					log.Error("Failed to load recipe %s: %v", id, err)
					fmt.Fprintf(&b, "• %s\n", id)
					continue
				}
				fmt.Fprintf(&b, "• %s (/analyze %s)\n", recipe.Title, recipe.ID)
			}
			bot.SendMessage(chatID, b.String())
		},
		"analyze": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			recipeID := strings.TrimSpace(message.CommandArguments())
			if recipeID == "" {
				bot.SendMessage(chatID, "Usage: /analyze <recipe-id> (ids are shown by /recipes)")
				return
			}

			names, err := pantryService.Names(chatID)
			if err != nil {
				log.Error("Failed to load pantry: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("load pantry"))
				return
			}

			analysis, err := matchEngine.AnalyzeIngredientMatching(context.Background(), names, recipeID)
			if err != nil {
				if errors.Is(err, catalog.ErrRecipeNotFound) {
					bot.SendMessage(chatID, fmt.Sprintf("I don't know a recipe with id %s.", recipeID))
					return
				}
				var inputErr *engine.InputValidationError
				if errors.As(err, &inputErr) {
					bot.SendMessage(chatID, messageService.GenerateEmptyPantryMessage())
					return
				}
				log.Error("Analysis failed: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("analyze recipe"))
				return
			}
			bot.SendMessage(chatID, messageService.FormatAnalysis(analysis))
		},
		"recipes": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			recipes, err := catalogService.AllRecipes(context.Background())
			if err != nil {
				log.Error("Failed to list recipes: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("list recipes"))
				return
			}
			var b strings.Builder
			b.WriteString("📖 Recipe catalog:\n")
			for _, recipe := range recipes {
				fmt.Fprintf(&b, "• %s (%s) — id %s\n", recipe.Title, recipe.Cuisine, recipe.ID)
			}
			bot.SendMessage(chatID, b.String())
		},
		"stats": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			searchStats, err := statsService.GetStats(chatID)
			if err != nil {
				log.Error("Failed to load stats: %v", err)
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("load stats"))
				return
			}
			topIngredients, _ := statsService.TopIngredients(chatID, 5)
			topRecipes, _ := statsService.TopRecipes(chatID, 5)

			var b strings.Builder
			fmt.Fprintf(&b, "📊 %d searches so far.\n", searchStats.SearchCount)
			if len(topIngredients) > 0 {
				b.WriteString("Most searched ingredients:\n")
				for _, c := range topIngredients {
					fmt.Fprintf(&b, "• %s (%d)\n", c.Name, c.Count)
				}
			}
			if len(topRecipes) > 0 {
				b.WriteString("Most matched recipes:\n")
				for _, c := range topRecipes {
					fmt.Fprintf(&b, "• %s (%d)\n", c.Name, c.Count)
				}
			}
			bot.SendMessage(chatID, b.String())
		},
	}

	// Setup callback handlers for the buttons under /match results.
	// The recipe card keeps its analyze button so both views stay one
	// tap away; the analysis view replaces the message outright.
	callbackHandlers := map[string]telegram.CallbackHandler{
		telegram.CallbackRecipePrefix: func(callback *tgbotapi.CallbackQuery) {
			if callback.Message == nil {
				return
			}
			chatID := callback.Message.Chat.ID
			recipeID := strings.TrimPrefix(callback.Data, telegram.CallbackRecipePrefix)

			recipe, err := catalogService.RecipeByID(context.Background(), recipeID)
			if err != nil {
				log.Error("Failed to load recipe %s: %v", recipeID, err)
				bot.AnswerCallbackQuery(callback.ID, "Sorry, I couldn't load that recipe.")
				return
			}

			bot.AnswerCallbackQuery(callback.ID, recipe.Title)
			edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID,
				messageService.FormatRecipe(recipe),
				tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("📊 Analyze", telegram.CallbackAnalyzePrefix+recipe.ID),
				)))
			if _, err := bot.Send(edit); err != nil {
				log.Error("Failed to edit message: %v", err)
			}
		},
		telegram.CallbackAnalyzePrefix: func(callback *tgbotapi.CallbackQuery) {
			if callback.Message == nil {
				return
			}
			chatID := callback.Message.Chat.ID
			recipeID := strings.TrimPrefix(callback.Data, telegram.CallbackAnalyzePrefix)

			names, err := pantryService.Names(chatID)
			if err != nil {
				log.Error("Failed to load pantry: %v", err)
				bot.AnswerCallbackQuery(callback.ID, "Sorry, I couldn't load your pantry.")
				return
			}

			analysis, err := matchEngine.AnalyzeIngredientMatching(context.Background(), names, recipeID)
			if err != nil {
				log.Error("Analysis failed for recipe %s: %v", recipeID, err)
				bot.AnswerCallbackQuery(callback.ID, "Sorry, I couldn't analyze that recipe.")
				return
			}

			bot.AnswerCallbackQuery(callback.ID, "")
			if _, err := bot.EditMessage(chatID, callback.Message.MessageID, messageService.FormatAnalysis(analysis)); err != nil {
				log.Error("Failed to edit message: %v", err)
			}
		},
	}

	// Plain messages add ingredients while the chat is in adding mode
	defaultHandler := func(update tgbotapi.Update) {
		if update.Message == nil || update.Message.Text == "" {
			return
		}
		chatID := update.Message.Chat.ID
		if stateManager.GetState(chatID) != state.StateAddingIngredients {
			return
		}
		addIngredients(bot, pantryService, messageService, chatID, update.Message.Text)
	}

	// Start the daily suggestion scheduler
	var sched *scheduler.Service
	if cfg.DailySuggestionHour >= 0 {
		sched = scheduler.New(bot, pantryService, matchEngine, messageService, cfg.DailySuggestionHour)
		sched.Start()
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("Received signal %v, shutting down...", sig)
		if sched != nil {
			sched.Stop()
		}
		bot.StopReceivingUpdates()
	}()

	log.Info("Bot is running. Press Ctrl+C to stop.")
	if err := bot.Start(commandHandlers, callbackHandlers, defaultHandler); err != nil {
		log.Error("Bot stopped with error: %v", err)
		os.Exit(1)
	}
	log.Info("Bot stopped.")
}

const helpText = `Commands:
/add <ingredients> — add comma-separated ingredients to your pantry
/remove <ingredient> — remove one ingredient
/pantry — show your pantry
/reset — empty your pantry
/match — rank recipes against your pantry
/find <ingredient> — recipes using an ingredient
/analyze <recipe-id> — per-ingredient match breakdown
/recipes — list the catalog
/stats — your search statistics`

// addIngredients parses a comma-separated list and stores it.
func addIngredients(bot *telegram.Bot, pantryService *pantry.Service, messageService *messages.Service, chatID int64, text string) {
	parts := strings.Split(text, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		bot.SendMessage(chatID, "I couldn't find any ingredient names in that.")
		return
	}

	if err := pantryService.AddIngredients(chatID, names); err != nil {
		logger.Global.Error("Failed to add ingredients: %v", err)
		bot.SendMessage(chatID, messageService.GenerateErrorMessage("add ingredients"))
		return
	}
	bot.SendMessage(chatID, fmt.Sprintf("Added %d ingredient(s). Run /match when you're ready!", len(names)))
}

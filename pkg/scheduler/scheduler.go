package scheduler

import (
	"context"
	"time"

	"github.com/korjavin/recipematch/pkg/engine"
	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/messages"
	"github.com/korjavin/recipematch/pkg/pantry"
	"github.com/korjavin/recipematch/pkg/telegram"
)

// suggestionCount caps how many recipes a daily push lists.
const suggestionCount = 3

// Service runs the daily suggestion push
type Service struct {
	bot            *telegram.Bot
	pantryService  *pantry.Service
	matchEngine    *engine.Engine
	messageService *messages.Service
	logger         *logger.Logger
	hour           int
	stopChan       chan struct{}
}

// New creates a new scheduler service. hour is the local hour of day
// (0-23) to push at.
func New(
	bot *telegram.Bot,
	pantryService *pantry.Service,
	matchEngine *engine.Engine,
	messageService *messages.Service,
	hour int,
) *Service {
	return &Service{
		bot:            bot,
		pantryService:  pantryService,
		matchEngine:    matchEngine,
		messageService: messageService,
		logger:         logger.New("scheduler"),
		hour:           hour,
		stopChan:       make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Service) Start() {
	s.logger.Info("Starting daily suggestion scheduler (hour %d)", s.hour)
	go s.run()
}

// Stop stops the scheduler
func (s *Service) Stop() {
	s.logger.Info("Stopping daily suggestion scheduler")
	close(s.stopChan)
}

func (s *Service) run() {
	for {
		next := s.nextRun(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			s.pushSuggestions()
		case <-s.stopChan:
			timer.Stop()
			return
		}
	}
}

// nextRun returns the next occurrence of the configured hour.
func (s *Service) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// pushSuggestions runs a match for every chat with a pantry. Each chat
// is its own failure boundary: a failed search is logged and skipped
// rather than aborting the rest of the push.
func (s *Service) pushSuggestions() {
	chatIDs, err := s.pantryService.ChatIDs()
	if err != nil {
		s.logger.Error("Failed to list pantries for daily push: %v", err)
		return
	}

	s.logger.Info("Running daily suggestion push for %d chats", len(chatIDs))
	for _, chatID := range chatIDs {
		if err := s.pushForChat(chatID); err != nil {
			s.logger.Error("Daily push failed for chat %d: %v", chatID, err)
		}
	}
}

func (s *Service) pushForChat(chatID int64) error {
	names, err := s.pantryService.Names(chatID)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	opts := engine.DefaultMatchOptions()
	opts.MaxResults = suggestionCount
	matches, err := s.matchEngine.FindMatchingRecipes(context.Background(), names, opts)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	text := "🌅 Daily suggestion!\n\n" + s.messageService.FormatMatchResults(matches)
	_, err = s.bot.SendMessage(chatID, text)
	return err
}

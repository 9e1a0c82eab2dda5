// Package telegram is the thin chat adapter: it routes inbound messages
// to the services and renders their results as chat replies. All quiz
// logic lives behind the service interfaces; this package only shuttles
// text, tracks the per-chat conversation step, and implements
// service.Notifier for outbound delivery.
package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"github.com/sardorbek/kalit/config"
	"github.com/sardorbek/kalit/internal/codec"
	"github.com/sardorbek/kalit/internal/dto"
	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/report"
	"github.com/sardorbek/kalit/internal/service"
)

// Conversation steps. The pending test code for edits and bonus scores
// is carried in the session explicitly, never inferred from the user's
// most recently created test.
type step int

const (
	stepIdle step = iota
	stepAwaitName
	stepAwaitPhone
	stepAwaitCreation
	stepAwaitSubmission
	stepAwaitEdit
	stepAwaitScores
	stepAwaitBroadcast
	stepAwaitSearch
	stepAwaitPurgeDays
)

type session struct {
	step        step
	pendingName string // captured between name and phone steps
	pendingCode string // test being edited or annotated
}

type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	registry service.RegistryService
	subs     service.SubmissionService
	stats    service.StatsService
	users    service.UserService

	mu       sync.Mutex
	sessions map[int64]*session
}

func NewBot(
	cfg *config.Config,
	registry service.RegistryService,
	subs service.SubmissionService,
	stats service.StatsService,
	users service.UserService,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	log.Info().Str("username", api.Self.UserName).Msg("Telegram bot authorized")
	return &Bot{
		api:      api,
		cfg:      cfg,
		registry: registry,
		subs:     subs,
		stats:    stats,
		users:    users,
		sessions: make(map[int64]*session),
	}, nil
}

// Send implements service.Notifier.
func (b *Bot) Send(recipientID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(recipientID, text))
	return err
}

// Run polls for updates until Stop is called.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for update := range b.api.GetUpdatesChan(u) {
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	userID := msg.From.ID
	b.users.TouchUsername(userID, msg.From.UserName)
	sess := b.session(userID)

	if msg.IsCommand() {
		b.handleCommand(msg, sess)
		return
	}

	switch sess.step {
	case stepAwaitName:
		b.handleName(msg, sess)
	case stepAwaitPhone:
		b.handlePhone(msg, sess)
	case stepAwaitCreation:
		b.handleCreation(msg, sess)
	case stepAwaitSubmission:
		b.handleSubmission(msg, sess)
	case stepAwaitEdit:
		b.handleEdit(msg, sess)
	case stepAwaitScores:
		b.handleScores(msg, sess)
	case stepAwaitBroadcast:
		b.handleBroadcast(msg, sess)
	case stepAwaitSearch:
		b.handleSearch(msg, sess)
	case stepAwaitPurgeDays:
		b.handlePurgeDays(msg, sess)
	default:
		// Bare CODE*ANSWERS outside any flow is accepted as a submission.
		if strings.Count(msg.Text, "*") == 1 {
			b.handleSubmission(msg, sess)
			return
		}
		b.reply(msg, "Use /help to see what I can do.")
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message, sess *session) {
	userID := msg.From.ID
	switch msg.Command() {
	case "start":
		registered, err := b.users.IsRegistered(userID)
		if err != nil {
			log.Error().Err(err).Int64("userID", userID).Msg("Registration check failed")
			b.reply(msg, "Something went wrong, try again.")
			return
		}
		if !registered {
			sess.step = stepAwaitName
			b.reply(msg, "Welcome! Please send your full name.")
			return
		}
		sess.step = stepIdle
		b.reply(msg, "Welcome back! Use /create, /take, /mytests or /leaderboard.")
	case "cancel":
		sess.step = stepIdle
		sess.pendingCode = ""
		b.reply(msg, "Cancelled.")
	case "create":
		sess.step = stepAwaitCreation
		b.reply(msg, "Send the new test as:\nCODE|NAME+answers\n\nExample: MATH101|Algebra+abcdabcd\nThe code must be letters and digits only; case does not matter.\nLeave the code out (NAME+answers) to get a generated one.")
	case "take":
		sess.step = stepAwaitSubmission
		b.reply(msg, "Send your answers as:\nCODE*answers\n\nExample: MATH101*abcdabcd\nEach test can be taken only once.")
	case "mytests":
		b.sendMyTests(msg)
	case "edit":
		code := strings.TrimSpace(msg.CommandArguments())
		if code == "" {
			b.reply(msg, "Usage: /edit CODE")
			return
		}
		if !b.requireOwnership(msg, code) {
			return
		}
		sess.step = stepAwaitEdit
		sess.pendingCode = code
		b.reply(msg, fmt.Sprintf("Editing %s. Send the new name and key as:\nNAME+answers", strings.ToUpper(code)))
	case "scores":
		code := strings.TrimSpace(msg.CommandArguments())
		if code == "" {
			b.reply(msg, "Usage: /scores CODE")
			return
		}
		if !b.requireOwnership(msg, code) {
			return
		}
		sess.step = stepAwaitScores
		sess.pendingCode = code
		b.reply(msg, "Send the bonus scores separated by ';', decimals with '.'\nExample: 1.1;2;3.5")
	case "stats":
		b.sendStatistics(msg, strings.TrimSpace(msg.CommandArguments()))
	case "leaderboard":
		b.sendLeaderboard(msg)
	case "help":
		b.reply(msg, "/create — create a test (CODE|NAME+answers)\n/take — take a test (CODE*answers)\n/mytests — your tests\n/edit CODE — replace name and key\n/scores CODE — attach bonus scores\n/stats CODE — results of your test\n/leaderboard — top users\n/cancel — abort the current step")
	case "admin":
		if !b.cfg.IsAdmin(userID) {
			b.reply(msg, "You are not allowed to do that.")
			return
		}
		b.sendPlatformStats(msg)
	case "broadcast":
		if !b.cfg.IsAdmin(userID) {
			b.reply(msg, "You are not allowed to do that.")
			return
		}
		sess.step = stepAwaitBroadcast
		b.reply(msg, "Send the message to deliver to every user.")
	case "users":
		if !b.cfg.IsAdmin(userID) {
			b.reply(msg, "You are not allowed to do that.")
			return
		}
		b.sendUsersCSV(msg)
	case "search":
		if !b.cfg.IsAdmin(userID) {
			b.reply(msg, "You are not allowed to do that.")
			return
		}
		sess.step = stepAwaitSearch
		b.reply(msg, "Send a test code or name to search for.")
	case "purge":
		if !b.cfg.IsAdmin(userID) {
			b.reply(msg, "You are not allowed to do that.")
			return
		}
		sess.step = stepAwaitPurgeDays
		b.reply(msg, fmt.Sprintf("Delete tests older than how many days? (default %d)", b.cfg.RetentionDays))
	default:
		b.reply(msg, "Unknown command, see /help.")
	}
}

func (b *Bot) handleName(msg *tgbotapi.Message, sess *session) {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		b.reply(msg, "Please send your name as text.")
		return
	}
	sess.pendingName = name
	sess.step = stepAwaitPhone

	prompt := tgbotapi.NewMessage(msg.Chat.ID, "Now share your phone number:")
	prompt.ReplyMarkup = tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact("Share phone number")),
	)
	if _, err := b.api.Send(prompt); err != nil {
		log.Error().Err(err).Int64("chatID", msg.Chat.ID).Msg("Failed to send phone prompt")
	}
}

func (b *Bot) handlePhone(msg *tgbotapi.Message, sess *session) {
	if msg.Contact == nil {
		b.reply(msg, "Please use the button to share your phone number.")
		return
	}
	err := b.users.Register(dto.RegisterUserRequest{
		ID:       msg.From.ID,
		Name:     sess.pendingName,
		Phone:    msg.Contact.PhoneNumber,
		Username: msg.From.UserName,
	})
	if err != nil {
		log.Error().Err(err).Int64("userID", msg.From.ID).Msg("Registration failed")
		b.reply(msg, "Registration failed, try /start again.")
		return
	}
	sess.step = stepIdle
	b.reply(msg, fmt.Sprintf("Thanks, %s! You are registered. Use /create or /take.", sess.pendingName))
	sess.pendingName = ""
}

func (b *Bot) handleCreation(msg *tgbotapi.Message, sess *session) {
	raw := msg.Text
	// NAME+answers without a code gets a server-issued one.
	if !strings.Contains(raw, "|") {
		raw = codec.GenerateCode() + "|" + raw
	}
	created, err := b.registry.Create(msg.From.ID, raw)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	sess.step = stepIdle
	b.reply(msg, fmt.Sprintf(
		"Test is ready!\nName: %s\nQuestions: %d\nCode: %s\n\nParticipants answer with:\n%s*their answers\n\nUse /stats %s to follow the results and /scores %s to attach bonus scores.",
		created.Name, created.QuestionCount, created.Code, created.Code, created.Code, created.Code))
}

func (b *Bot) handleSubmission(msg *tgbotapi.Message, sess *session) {
	result, err := b.subs.Submit(msg.From.ID, msg.Text)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	sess.step = stepIdle
	b.reply(msg, fmt.Sprintf("Submitted!\nTest: %s\nCorrect answers: %d of %d\nScore: %.2f%%",
		result.TestName, result.CorrectCount, result.Total, result.Score))
}

func (b *Bot) handleEdit(msg *tgbotapi.Message, sess *session) {
	if err := b.registry.Edit(sess.pendingCode, msg.Text); err != nil {
		b.replyError(msg, err)
		return
	}
	b.reply(msg, fmt.Sprintf("Test %s updated.", strings.ToUpper(sess.pendingCode)))
	sess.step = stepIdle
	sess.pendingCode = ""
}

func (b *Bot) handleScores(msg *tgbotapi.Message, sess *session) {
	scores, err := codec.ParseBonusScores(msg.Text)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	if err := b.registry.AttachBonusScores(sess.pendingCode, scores); err != nil {
		b.replyError(msg, err)
		return
	}
	b.reply(msg, "Bonus scores attached.")
	sess.step = stepIdle
	sess.pendingCode = ""
}

func (b *Bot) handleBroadcast(msg *tgbotapi.Message, sess *session) {
	sess.step = stepIdle
	broadcastReport, err := b.users.Broadcast(msg.Text)
	if err != nil {
		log.Error().Err(err).Msg("Broadcast failed")
		b.reply(msg, "Broadcast failed.")
		return
	}
	b.reply(msg, fmt.Sprintf("Delivered to %d of %d users.", broadcastReport.Sent, broadcastReport.Total))
}

func (b *Bot) handleSearch(msg *tgbotapi.Message, sess *session) {
	sess.step = stepIdle
	hits, err := b.stats.SearchTests(strings.TrimSpace(msg.Text))
	if err != nil {
		log.Error().Err(err).Msg("Search failed")
		b.reply(msg, "Search failed.")
		return
	}
	if len(hits) == 0 {
		b.reply(msg, "No tests match that query.")
		return
	}
	var sb strings.Builder
	sb.WriteString("Search results:\n")
	for _, hit := range hits {
		fmt.Fprintf(&sb, "%s — %s (by %s)\n", hit.Code, hit.Name, hit.CreatorName)
	}
	b.reply(msg, sb.String())
}

func (b *Bot) handlePurgeDays(msg *tgbotapi.Message, sess *session) {
	days := b.cfg.RetentionDays
	if raw := strings.TrimSpace(msg.Text); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			b.reply(msg, "Please send a positive number of days.")
			return
		}
		days = v
	}
	sess.step = stepIdle
	deleted, err := b.registry.Purge(days)
	if err != nil {
		log.Error().Err(err).Msg("Purge failed")
		b.reply(msg, "Purge failed.")
		return
	}
	b.reply(msg, fmt.Sprintf("%d tests deleted.", deleted))
}

func (b *Bot) sendMyTests(msg *tgbotapi.Message) {
	tests, err := b.registry.ListByCreator(msg.From.ID)
	if err != nil {
		log.Error().Err(err).Int64("userID", msg.From.ID).Msg("Listing tests failed")
		b.reply(msg, "Could not load your tests.")
		return
	}
	if len(tests) == 0 {
		b.reply(msg, "You have not created any tests yet. Use /create.")
		return
	}
	var sb strings.Builder
	sb.WriteString("Your tests:\n")
	for _, t := range tests {
		fmt.Fprintf(&sb, "%s — %s (%s)\n", t.Code, t.Name, t.CreatedAt.Format("2006-01-02"))
	}
	sb.WriteString("\nUse /stats CODE, /edit CODE or /scores CODE.")
	b.reply(msg, sb.String())
}

func (b *Bot) sendStatistics(msg *tgbotapi.Message, code string) {
	if code == "" {
		b.reply(msg, "Usage: /stats CODE")
		return
	}
	// Admins may inspect any test; everyone else only their own.
	if !b.cfg.IsAdmin(msg.From.ID) && !b.requireOwnership(msg, code) {
		return
	}
	statsReport, err := b.stats.TestStatistics(code)
	if err != nil {
		b.replyError(msg, err)
		return
	}
	if len(statsReport.Entries) == 0 {
		b.reply(msg, "Nobody has taken this test yet.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Results for %s:\n\n", statsReport.TestCode)
	for _, e := range statsReport.Entries {
		fmt.Fprintf(&sb, "%s (@%s)\nScore: %.2f%%\nAnswers: %s\nSubmitted: %s\nAttempts: %d\n\n",
			e.Name, e.Username, e.Score, e.UserAnswers, e.SubmittedAt.Format("2006-01-02 15:04"), e.AttemptCount)
	}
	b.reply(msg, sb.String())

	data, err := report.TestStatisticsExcel(statsReport)
	if err != nil {
		log.Error().Err(err).Str("code", statsReport.TestCode).Msg("Excel report failed")
		return
	}
	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("test_%s_results.xlsx", statsReport.TestCode),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("Results for %s", statsReport.TestCode)
	if _, err := b.api.Send(doc); err != nil {
		log.Error().Err(err).Int64("chatID", msg.Chat.ID).Msg("Failed to send Excel report")
	}
}

func (b *Bot) sendLeaderboard(msg *tgbotapi.Message) {
	entries, err := b.stats.Leaderboard(b.cfg.LeaderboardLimit)
	if err != nil {
		log.Error().Err(err).Msg("Leaderboard failed")
		b.reply(msg, "Could not load the leaderboard.")
		return
	}
	if len(entries) == 0 {
		b.reply(msg, "No results yet.")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Top %d users:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&sb, "%d. %s (@%s)\n   Average score: %.2f%%\n   Tests taken: %d\n\n",
			e.Rank, e.Name, e.Username, e.AvgScore, e.TestsTaken)
	}
	b.reply(msg, sb.String())
}

func (b *Bot) sendPlatformStats(msg *tgbotapi.Message) {
	stats, err := b.stats.PlatformStats()
	if err != nil {
		log.Error().Err(err).Msg("Platform stats failed")
		b.reply(msg, "Could not load counters.")
		return
	}
	b.reply(msg, fmt.Sprintf("Users: %d\nTests: %d\nResults: %d\n\nAdmin commands: /broadcast /users /search /purge",
		stats.Users, stats.Tests, stats.Results))
}

func (b *Bot) sendUsersCSV(msg *tgbotapi.Message) {
	users, err := b.stats.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("User listing failed")
		b.reply(msg, "Could not list users.")
		return
	}
	data, err := report.UsersCSV(users)
	if err != nil {
		log.Error().Err(err).Msg("Users CSV failed")
		b.reply(msg, "Could not build the CSV.")
		return
	}
	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{Name: "users.csv", Bytes: data})
	doc.Caption = fmt.Sprintf("All %d registered users", len(users))
	if _, err := b.api.Send(doc); err != nil {
		log.Error().Err(err).Int64("chatID", msg.Chat.ID).Msg("Failed to send users CSV")
	}
}

// requireOwnership resolves the code and replies with a refusal unless
// the sender created the test.
func (b *Bot) requireOwnership(msg *tgbotapi.Message, code string) bool {
	test, err := b.registry.Lookup(code)
	if err != nil {
		b.replyError(msg, err)
		return false
	}
	if test.CreatorID != msg.From.ID {
		b.reply(msg, "Only the test creator may do this.")
		return false
	}
	return true
}

func (b *Bot) session(userID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess, ok := b.sessions[userID]
	if !ok {
		sess = &session{}
		b.sessions[userID] = sess
	}
	return sess
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	if err := b.Send(msg.Chat.ID, text); err != nil {
		log.Error().Err(err).Int64("chatID", msg.Chat.ID).Msg("Failed to send reply")
	}
}

func (b *Bot) replyError(msg *tgbotapi.Message, err error) {
	switch {
	case errors.Is(err, model.ErrBadFormat):
		b.reply(msg, "That does not look right. Check the format and try again.")
	case errors.Is(err, model.ErrDuplicateCode):
		b.reply(msg, "This test code already exists, pick another one.")
	case errors.Is(err, model.ErrTestNotFound):
		b.reply(msg, "Unknown test code. Check it and try again.")
	case errors.Is(err, model.ErrAlreadyAttempted):
		b.reply(msg, "You already took this test. Each test can be taken only once.")
	case errors.Is(err, model.ErrEmptyAnswerKey):
		b.reply(msg, "This test has no answer key; ask its creator to fix it.")
	case errors.Is(err, model.ErrUserNotFound):
		b.reply(msg, "Please register first with /start.")
	default:
		log.Error().Err(err).Msg("Unhandled error in chat handler")
		b.reply(msg, "Something went wrong, try again.")
	}
}

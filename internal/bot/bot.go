package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recur-tracker/internal/model"
	"recur-tracker/internal/repository"
	"recur-tracker/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageName
	stageDescription
	stageCategory
	stageFreqKind
	stageOnDate
	stagePeriod
	stageAmount
	stageCalendar
	stageWeekday
	stageAtTime
	stageUntilKind
	stageUntilDate
	stageUntilAmount
)

type conversationMode int

const (
	modeCreate conversationMode = iota
	modeEditFrequency
	modeEditUntil
)

const (
	cbLogPrefix     = "log:"
	cbDeletePrefix  = "delete:"
	cbConfirmPrefix = "confirm:"
	cbCancelPrefix  = "cancel:"
	cbPausePrefix   = "pause:"
	cbUnpausePrefix = "unpause:"
)

const (
	btnSkip         = "⏭️ Пропустить"
	btnYes          = "Да"
	btnNo           = "Нет"
	btnConfirm      = "✅ Подтвердить"
	btnCancel       = "↩️ Отмена"
	btnCancelDialog = "⏪ Отменить ввод"

	btnFreqOn   = "📅 На дату"
	btnFreqPer  = "🔁 Регулярно"
	btnFreqThis = "🎯 Несколько за период"

	btnUntilStopped   = "♾ Пока не остановлю"
	btnUntilDate      = "📆 До даты"
	btnUntilAmount    = "🔢 Количество раз"
	btnUntilCompleted = "✅ Пока не завершу"

	noCategory = "Без категории"

	menuLabelNewTask = "➕ Новая задача"
	menuLabelTasks   = "📋 Задачи"
	menuLabelReport  = "📊 Отчёт"
	menuLabelHelp    = "ℹ️ Помощь"
)

var periodButtons = map[string]model.Period{
	"день":    model.PeriodDay,
	"неделя":  model.PeriodWeek,
	"месяц":   model.PeriodMonth,
	"квартал": model.PeriodQuarter,
	"год":     model.PeriodYear,
}

var periodLabels = map[model.Period]string{
	model.PeriodDay:     "день",
	model.PeriodWeek:    "неделю",
	model.PeriodMonth:   "месяц",
	model.PeriodQuarter: "квартал",
	model.PeriodYear:    "год",
}

var weekdayButtons = map[string]model.Weekday{
	"пн": model.Monday,
	"вт": model.Tuesday,
	"ср": model.Wednesday,
	"чт": model.Thursday,
	"пт": model.Friday,
	"сб": model.Saturday,
	"вс": model.Sunday,
}

var weekdayLabels = map[model.Weekday]string{
	model.Monday:    "понедельникам",
	model.Tuesday:   "вторникам",
	model.Wednesday: "средам",
	model.Thursday:  "четвергам",
	model.Friday:    "пятницам",
	model.Saturday:  "субботам",
	model.Sunday:    "воскресеньям",
}

type conversationState struct {
	stage      conversationStage
	mode       conversationMode
	editTaskID uint
	input      service.TaskInput
}

type confirmationRequest struct {
	taskID uint
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api           *tgbotapi.BotAPI
	userRepo      *repository.UserRepository
	categorySvc   *service.CategoryService
	taskSvc       *service.TaskService
	eventSvc      *service.EventService
	reminderSvc   *service.ReminderService
	conversations map[int64]*conversationState
	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

func New(token string, userRepo *repository.UserRepository, categorySvc *service.CategoryService, taskSvc *service.TaskService, eventSvc *service.EventService, reminderSvc *service.ReminderService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		userRepo:      userRepo,
		categorySvc:   categorySvc,
		taskSvc:       taskSvc,
		eventSvc:      eventSvc,
		reminderSvc:   reminderSvc,
		conversations: make(map[int64]*conversationState),
		confirmations: make(map[int64]confirmationRequest),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Ввод отменён. Начни заново, когда будешь готов.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if pending, ok := b.getConfirmation(msg.From.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "Я пока не понял сообщение. Набери /newtask, чтобы добавить задачу, или /help для списка команд.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "newtask":
		return b.startNewTaskConversation(ctx, msg)
	case "tasks":
		return b.handleListTasks(ctx, msg)
	case "done":
		return b.handleDone(ctx, msg)
	case "events":
		return b.handleEvents(ctx, msg)
	case "delevent":
		return b.handleDeleteEvent(ctx, msg)
	case "pause":
		return b.handlePause(ctx, msg)
	case "unpause":
		return b.handleUnpause(ctx, msg)
	case "complete":
		return b.handleComplete(ctx, msg)
	case "delete":
		return b.handleDelete(ctx, msg)
	case "setfreq":
		return b.startFrequencyEdit(ctx, msg)
	case "setuntil":
		return b.startUntilEdit(ctx, msg)
	case "categories":
		return b.handleCategories(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Диалог отменён.")
	default:
		return b.sendText(msg.Chat.ID, "Команда не поддерживается. Загляни в /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "друг"
	}

	text := fmt.Sprintf(
		"👋 Привет, %s!\n<b>Я трекер повторяющихся задач: слежу, когда что пора сделать.</b>\n\nКоманды:\n"+
			"• /newtask — добавить задачу с правилом повторения\n"+
			"• /tasks — список задач с ближайшими ориентирами\n"+
			"• /done &lt;id&gt; — записать выполнение (сегодня)\n"+
			"• /events &lt;id&gt; — история выполнений\n"+
			"• /pause, /unpause, /complete &lt;id&gt; — пауза и завершение\n"+
			"• /report — отчёт прямо сейчас\n"+
			"• /help — все подсказки",
		escape(name),
	)

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Подсказки</b>\n" +
		"• /newtask — добавить задачу пошагово (как часто + до каких пор)\n" +
		"• /tasks — показать задачи и ближайшие ориентиры\n" +
		"• /done &lt;id&gt; — записать выполнение сегодня\n" +
		"• /done &lt;id&gt; вчера — записать за вчера\n" +
		"• /done &lt;id&gt; 2025-11-30 14:00 — записать на точное время\n" +
		"• /events &lt;id&gt; — история выполнений задачи\n" +
		"• /delevent &lt;id события&gt; — удалить запись (статус пересчитается)\n" +
		"• /pause &lt;id&gt; / /unpause &lt;id&gt; — пауза и возврат\n" +
		"• /complete &lt;id&gt; — завершить вручную (без автo-возврата)\n" +
		"• /setfreq &lt;id&gt; — поменять правило повторения\n" +
		"• /setuntil &lt;id&gt; — поменять условие окончания\n" +
		"• /delete &lt;id&gt; — удалить задачу со всей историей\n" +
		"• /categories — список категорий\n" +
		"• /report — отчёт о просроченном и ближайшем\n" +
		"• /cancel — отменить текущий ввод"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reminderSvc.DailySummary(ctx, *user, time.Now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось сформировать отчёт: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

// SendDailyReports sends a summary to every known user.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		text, err := b.reminderSvc.DailySummary(ctx, user, now)
		if err != nil {
			log.Printf("build summary for user %d: %v", user.TelegramID, err)
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("send summary to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

// --- task creation and rule editing conversations ---

func (b *Bot) startNewTaskConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	b.setConversation(msg.From.ID, &conversationState{stage: stageName, mode: modeCreate})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 Создаём новую задачу.\n<b>Шаг 1:</b> как её назвать?", cancelKeyboard())
}

func (b *Bot) startFrequencyEdit(ctx context.Context, msg *tgbotapi.Message) error {
	task, err := b.taskFromArgs(ctx, msg)
	if err != nil || task == nil {
		return err
	}
	b.setConversation(msg.From.ID, &conversationState{
		stage:      stageFreqKind,
		mode:       modeEditFrequency,
		editTaskID: task.ID,
	})
	return b.sendWithReplyMarkup(msg.Chat.ID,
		fmt.Sprintf("🔁 Меняем правило повторения для «%s».\nКак задача должна повторяться?", escape(task.Name)),
		freqKindKeyboard())
}

func (b *Bot) startUntilEdit(ctx context.Context, msg *tgbotapi.Message) error {
	task, err := b.taskFromArgs(ctx, msg)
	if err != nil || task == nil {
		return err
	}
	b.setConversation(msg.From.ID, &conversationState{
		stage:      stageUntilKind,
		mode:       modeEditUntil,
		editTaskID: task.ID,
	})
	return b.sendWithReplyMarkup(msg.Chat.ID,
		fmt.Sprintf("🏁 Меняем условие окончания для «%s».\nКогда задача должна закончиться?", escape(task.Name)),
		untilKindKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageName:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Название не может быть пустым. Попробуй ещё раз.", cancelKeyboard())
		}
		state.input.Name = text
		state.stage = stageDescription
		return b.sendWithReplyMarkup(msg.Chat.ID, "✏️ Добавь короткое описание (или нажми «Пропустить»).", skipKeyboard())

	case stageDescription:
		if !isSkipInput(text) {
			state.input.Description = text
		}
		state.stage = stageCategory
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 Укажи категорию или отправь свою (можно «Пропустить»).", categoryKeyboard())

	case stageCategory:
		if !isSkipInput(text) {
			state.input.Category = text
		}
		state.stage = stageFreqKind
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 Как задача должна повторяться?", freqKindKeyboard())

	case stageFreqKind:
		switch text {
		case btnFreqOn:
			state.input.Frequency = service.FrequencyInput{Type: model.FrequencyOn, Amount: 1}
			state.stage = stageOnDate
			return b.sendWithReplyMarkup(msg.Chat.ID, "📅 На какую дату? Формат <code>2025-11-30</code>.", cancelKeyboard())
		case btnFreqPer:
			state.input.Frequency = service.FrequencyInput{Type: model.FrequencyPer}
			state.stage = stagePeriod
			return b.sendWithReplyMarkup(msg.Chat.ID, "📐 За какой период считать?", periodKeyboard())
		case btnFreqThis:
			state.input.Frequency = service.FrequencyInput{Type: model.FrequencyThis}
			state.stage = stagePeriod
			return b.sendWithReplyMarkup(msg.Chat.ID, "📐 В рамках какого периода?", periodKeyboard())
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Выбери один из вариантов на клавиатуре.", freqKindKeyboard())
		}

	case stageOnDate:
		parsed, err := time.ParseInLocation("2006-01-02", text, time.Local)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Не могу распознать дату. Используй формат <code>2025-11-30</code>.", cancelKeyboard())
		}
		state.input.Frequency.OnceOnDate = &parsed
		state.stage = stageAtTime
		return b.sendWithReplyMarkup(msg.Chat.ID, "🕐 Во сколько? Формат <code>14:30</code> (или «Пропустить»).", skipKeyboard())

	case stagePeriod:
		period, ok := periodButtons[strings.ToLower(text)]
		if !ok {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Выбери период на клавиатуре.", periodKeyboard())
		}
		state.input.Frequency.Period = period
		state.stage = stageAmount
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔢 Сколько раз за период? (число, например 1 или 3)", cancelKeyboard())

	case stageAmount:
		amount, err := strconv.Atoi(text)
		if err != nil || amount < 1 {
			return b.sendText(msg.Chat.ID, "Нужно целое число не меньше 1.")
		}
		state.input.Frequency.Amount = amount
		if state.input.Frequency.Type == model.FrequencyThis {
			state.stage = stageCalendar
			return b.sendWithReplyMarkup(msg.Chat.ID, "🗓 Считать по календарному периоду? «Нет» — период отсчитывается от создания задачи.", yesNoKeyboard())
		}
		if amount == 1 && state.input.Frequency.Period == model.PeriodWeek {
			state.stage = stageWeekday
			return b.sendWithReplyMarkup(msg.Chat.ID, "📆 В какой день недели? (или «Пропустить»)", weekdayKeyboard())
		}
		if amount == 1 {
			state.stage = stageAtTime
			return b.sendWithReplyMarkup(msg.Chat.ID, "🕐 Во сколько напоминать? Формат <code>14:30</code> (или «Пропустить»).", skipKeyboard())
		}
		return b.advanceToUntil(ctx, msg, state)

	case stageCalendar:
		switch strings.ToLower(text) {
		case strings.ToLower(btnYes), "да", "yes", "y":
			state.input.Frequency.UseCalendarPeriod = true
		case strings.ToLower(btnNo), "нет", "no", "n":
			state.input.Frequency.UseCalendarPeriod = false
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Нажми «Да» или «Нет».", yesNoKeyboard())
		}
		return b.advanceToUntil(ctx, msg, state)

	case stageWeekday:
		if !isSkipInput(text) {
			weekday, ok := weekdayButtons[strings.ToLower(text)]
			if !ok {
				return b.sendWithReplyMarkup(msg.Chat.ID, "Выбери день недели на клавиатуре или «Пропустить».", weekdayKeyboard())
			}
			state.input.Frequency.OncePerWeekday = &weekday
		}
		state.stage = stageAtTime
		return b.sendWithReplyMarkup(msg.Chat.ID, "🕐 Во сколько напоминать? Формат <code>14:30</code> (или «Пропустить»).", skipKeyboard())

	case stageAtTime:
		if !isSkipInput(text) {
			if _, _, err := model.ParseClock(text); err != nil {
				return b.sendWithReplyMarkup(msg.Chat.ID, "Не могу распознать время. Используй формат <code>14:30</code> или «Пропустить».", skipKeyboard())
			}
			atTime := text
			state.input.Frequency.OnceAtTime = &atTime
		}
		if state.mode == modeEditFrequency {
			return b.finishFrequencyEdit(ctx, msg, state)
		}
		return b.advanceToUntil(ctx, msg, state)

	case stageUntilKind:
		switch text {
		case btnUntilStopped:
			state.input.Until = service.UntilInput{Type: model.UntilStopped}
		case btnUntilCompleted:
			state.input.Until = service.UntilInput{Type: model.UntilCompleted}
		case btnUntilDate:
			state.input.Until = service.UntilInput{Type: model.UntilDate}
			state.stage = stageUntilDate
			return b.sendWithReplyMarkup(msg.Chat.ID, "📆 До какой даты? Формат <code>2025-12-31</code>.", cancelKeyboard())
		case btnUntilAmount:
			state.input.Until = service.UntilInput{Type: model.UntilAmount}
			state.stage = stageUntilAmount
			return b.sendWithReplyMarkup(msg.Chat.ID, "🔢 После скольких выполнений закончить? (число)", cancelKeyboard())
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Выбери вариант на клавиатуре.", untilKindKeyboard())
		}
		return b.finishUntilStage(ctx, msg, state)

	case stageUntilDate:
		parsed, err := time.ParseInLocation("2006-01-02", text, time.Local)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Не могу распознать дату. Используй формат <code>2025-12-31</code>.", cancelKeyboard())
		}
		state.input.Until.Date = &parsed
		return b.finishUntilStage(ctx, msg, state)

	case stageUntilAmount:
		amount, err := strconv.Atoi(text)
		if err != nil || amount < 1 {
			return b.sendText(msg.Chat.ID, "Нужно целое число не меньше 1.")
		}
		state.input.Until.Amount = amount
		return b.finishUntilStage(ctx, msg, state)

	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Диалог сброшен. Попробуй ещё раз через /newtask.")
	}
}

func (b *Bot) advanceToUntil(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	if state.mode == modeEditFrequency {
		return b.finishFrequencyEdit(ctx, msg, state)
	}
	state.stage = stageUntilKind
	return b.sendWithReplyMarkup(msg.Chat.ID, "🏁 Когда задача должна закончиться?", untilKindKeyboard())
}

func (b *Bot) finishUntilStage(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	if state.mode == modeEditUntil {
		return b.finishUntilEdit(ctx, msg, state)
	}
	return b.finishTaskCreation(ctx, msg, state)
}

func (b *Bot) finishTaskCreation(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	defer b.clearConversation(msg.From.ID)

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	task, err := b.taskSvc.CreateTask(ctx, user, state.input)
	if err != nil {
		return b.sendTextWithRemove(msg.Chat.ID, fmt.Sprintf("Не удалось сохранить задачу: %s", escape(err.Error())))
	}

	log.Printf("[info] task created id=%d user=%d freq=%s until=%s", task.ID, user.ID, task.Frequency.Type, task.Until.Type)

	var summary strings.Builder
	summary.WriteString("✅ <b>Задача сохранена</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>ID:</b> %d\n", task.ID))
	summary.WriteString(fmt.Sprintf("• <b>Название:</b> %s\n", escape(task.Name)))
	if task.Description != "" {
		summary.WriteString(fmt.Sprintf("• <b>Описание:</b> %s\n", escape(task.Description)))
	}
	summary.WriteString(fmt.Sprintf("• <b>Повтор:</b> %s\n", frequencyLabel(task.Frequency)))
	summary.WriteString(fmt.Sprintf("• <b>Конец:</b> %s\n", untilLabel(task.Until)))
	if task.NextEventAt != nil {
		summary.WriteString(fmt.Sprintf("• <b>Ориентир:</b> %s\n", task.NextEventAt.Format("2006-01-02 15:04")))
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, strings.TrimSpace(summary.String()))
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	reply.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(reply); err != nil {
		return err
	}
	return b.sendTaskList(ctx, msg.Chat.ID, user)
}

func (b *Bot) finishFrequencyEdit(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	defer b.clearConversation(msg.From.ID)

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	if err := b.taskSvc.UpdateFrequency(ctx, user, state.editTaskID, state.input.Frequency); err != nil {
		return b.sendTextWithRemove(msg.Chat.ID, fmt.Sprintf("Не удалось обновить правило: %s", escape(err.Error())))
	}
	log.Printf("[info] frequency replaced task=%d user=%d", state.editTaskID, user.ID)
	return b.sendTextWithRemove(msg.Chat.ID, "🔁 Правило повторения обновлено, ориентир пересчитан.")
}

func (b *Bot) finishUntilEdit(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	defer b.clearConversation(msg.From.ID)

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	if err := b.taskSvc.UpdateUntil(ctx, user, state.editTaskID, state.input.Until); err != nil {
		return b.sendTextWithRemove(msg.Chat.ID, fmt.Sprintf("Не удалось обновить условие: %s", escape(err.Error())))
	}
	log.Printf("[info] until replaced task=%d user=%d", state.editTaskID, user.ID)
	return b.sendTextWithRemove(msg.Chat.ID, "🏁 Условие окончания обновлено, статус пересчитан.")
}

// --- event and lifecycle commands ---

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(strings.TrimSpace(msg.CommandArguments()))
	if len(args) == 0 {
		return b.sendText(msg.Chat.ID, "Укажи ID задачи: /done 12, /done 12 вчера или /done 12 2025-11-30 14:00")
	}

	taskID, err := parseID(args[0])
	if err != nil {
		return b.sendText(msg.Chat.ID, "ID задачи должен быть числом.")
	}

	input := service.EventInput{Around: model.AroundToday}
	switch {
	case len(args) == 1:
	case len(args) == 2 && (strings.EqualFold(args[1], "вчера") || strings.EqualFold(args[1], "yesterday")):
		input.Around = model.AroundYesterday
	case len(args) == 3:
		at, err := time.ParseInLocation("2006-01-02 15:04", args[1]+" "+args[2], time.Local)
		if err != nil {
			return b.sendText(msg.Chat.ID, "Не могу распознать время. Формат: /done 12 2025-11-30 14:00")
		}
		input.Around = model.AroundSpecifically
		input.At = &at
	default:
		return b.sendText(msg.Chat.ID, "Форматы: /done 12, /done 12 вчера, /done 12 2025-11-30 14:00")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	if _, err := b.eventSvc.LogEvent(ctx, user, taskID, input); err != nil {
		return b.replyServiceError(msg.Chat.ID, err)
	}

	task, err := b.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		return b.replyServiceError(msg.Chat.ID, err)
	}

	log.Printf("[info] event logged task=%d user=%d around=%s", taskID, user.ID, input.Around)
	if task.Status == model.StatusCompleted {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("🎉 Записал! Задача «%s» выполнена полностью.", escape(task.Name)))
	}
	if task.NextEventAt != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("✅ Записал! Следующий ориентир для «%s»: %s.",
			escape(task.Name), task.NextEventAt.Format("2006-01-02 15:04")))
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("✅ Записал выполнение «%s».", escape(task.Name)))
}

func (b *Bot) handleEvents(ctx context.Context, msg *tgbotapi.Message) error {
	task, err := b.taskFromArgs(ctx, msg)
	if err != nil || task == nil {
		return err
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	events, err := b.eventSvc.ListEvents(ctx, user, task.ID)
	if err != nil {
		return b.replyServiceError(msg.Chat.ID, err)
	}
	if len(events) == 0 {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("По задаче «%s» ещё нет выполнений.", escape(task.Name)))
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🗂 <b>История «%s»</b>\n", escape(task.Name)))
	for _, event := range events {
		builder.WriteString(fmt.Sprintf("• #%d — %s (%s)\n",
			event.ID, event.EffectiveAt.Format("2006-01-02 15:04"), aroundLabel(event.Around)))
	}
	builder.WriteString("\nУдалить запись: /delevent &lt;id&gt;")
	return b.sendText(msg.Chat.ID, strings.TrimSpace(builder.String()))
}

func (b *Bot) handleDeleteEvent(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendText(msg.Chat.ID, "Укажи ID записи: /delevent 7 (ID видно в /events)")
	}
	eventID, err := parseID(args)
	if err != nil {
		return b.sendText(msg.Chat.ID, "ID записи должен быть числом.")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	if err := b.eventSvc.DeleteEvent(ctx, user, eventID); err != nil {
		return b.replyServiceError(msg.Chat.ID, err)
	}
	log.Printf("[info] event deleted id=%d user=%d", eventID, user.ID)
	return b.sendText(msg.Chat.ID, "🗑 Запись удалена, статус и ориентир пересчитаны.")
}

func (b *Bot) handlePause(ctx context.Context, msg *tgbotapi.Message) error {
	return b.lifecycleCommand(ctx, msg, "pause", func(user *model.User, taskID uint) error {
		return b.taskSvc.PauseTask(ctx, user, taskID)
	}, "⏸ Задача на паузе. Вернуть: /unpause %d")
}

func (b *Bot) handleUnpause(ctx context.Context, msg *tgbotapi.Message) error {
	return b.lifecycleCommand(ctx, msg, "unpause", func(user *model.User, taskID uint) error {
		return b.taskSvc.UnpauseTask(ctx, user, taskID)
	}, "▶️ Задача снова в работе, ориентир пересчитан.")
}

func (b *Bot) handleComplete(ctx context.Context, msg *tgbotapi.Message) error {
	return b.lifecycleCommand(ctx, msg, "complete", func(user *model.User, taskID uint) error {
		return b.taskSvc.CompleteTask(ctx, user, taskID)
	}, "🏁 Задача завершена вручную.")
}

func (b *Bot) lifecycleCommand(ctx context.Context, msg *tgbotapi.Message, name string, action func(*model.User, uint) error, successText string) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Укажи ID задачи: /%s 12", name))
	}
	taskID, err := parseID(args)
	if err != nil {
		return b.sendText(msg.Chat.ID, "ID задачи должен быть числом.")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	if err := action(user, taskID); err != nil {
		return b.replyServiceError(msg.Chat.ID, err)
	}
	log.Printf("[info] %s task=%d user=%d", name, taskID, user.ID)
	if strings.Contains(successText, "%d") {
		return b.sendText(msg.Chat.ID, fmt.Sprintf(successText, taskID))
	}
	return b.sendText(msg.Chat.ID, successText)
}

func (b *Bot) handleDelete(ctx context.Context, msg *tgbotapi.Message) error {
	task, err := b.taskFromArgs(ctx, msg)
	if err != nil || task == nil {
		return err
	}

	text := fmt.Sprintf("Удалить задачу «%s» (#%d) вместе со всей историей?", escape(task.Name), task.ID)
	b.setConfirmation(msg.From.ID, confirmationRequest{taskID: task.ID})
	return b.sendWithReplyMarkup(msg.Chat.ID, text, confirmKeyboard())
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.deleteTaskAndRefresh(ctx, msg.Chat.ID, msg.From, req.taskID)
	case isCancelInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.sendTextWithRemove(msg.Chat.ID, "Удаление отменено.")
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Подтверди или отмени удаление задачи.", confirmKeyboard())
	}
}

func (b *Bot) deleteTaskAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, taskID uint) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	task, err := b.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		return b.replyServiceError(chatID, err)
	}

	if err := b.taskSvc.DeleteTask(ctx, user, taskID); err != nil {
		return b.replyServiceError(chatID, err)
	}

	log.Printf("[info] task deleted id=%d user=%d", task.ID, user.ID)
	if err := b.sendTextWithRemove(chatID, fmt.Sprintf("🗑 Задача «%s» удалена.", escape(task.Name))); err != nil {
		return err
	}
	return b.sendTaskList(ctx, chatID, user)
}

func (b *Bot) handleCategories(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	categories, err := b.categorySvc.List(ctx, user)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось получить категории: %s", escape(err.Error())))
	}
	if len(categories) == 0 {
		return b.sendText(msg.Chat.ID, "Категории пока пусты. Добавь их при создании задачи.")
	}
	var builder strings.Builder
	builder.WriteString("📂 <b>Категории</b>\n")
	for _, cat := range categories {
		builder.WriteString(fmt.Sprintf("• %s\n", escape(strings.TrimSpace(cat.Name))))
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(builder.String()))
}

// --- task list ---

func (b *Bot) handleListTasks(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	return b.sendTaskList(ctx, msg.Chat.ID, user)
}

func (b *Bot) sendTaskList(ctx context.Context, chatID int64, user *model.User) error {
	tasks, err := b.taskSvc.ListTasks(ctx, user, repository.TaskFilter{})
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Не удалось получить задачи: %s", escape(err.Error())))
	}

	if len(tasks) == 0 {
		return b.sendText(chatID, "У тебя пока нет задач. Добавь первую через /newtask.")
	}

	categories, _ := b.categorySvc.List(ctx, user)
	catNames := make(map[uint]string)
	for _, cat := range categories {
		catNames[cat.ID] = cat.Name
	}

	now := time.Now()
	var builder strings.Builder
	builder.WriteString("📋 <b>Задачи</b>\n")
	builder.WriteString("Кнопки: отметить выполнение, пауза, удаление.\n\n")

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		builder.WriteString(formatTaskLine(task, catNames, now))

		var row []tgbotapi.InlineKeyboardButton
		switch task.Status {
		case model.StatusOngoing:
			row = append(row,
				tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✅ #%d", task.ID), fmt.Sprintf("%s%d", cbLogPrefix, task.ID)),
				tgbotapi.NewInlineKeyboardButtonData("⏸", fmt.Sprintf("%s%d", cbPausePrefix, task.ID)),
			)
		case model.StatusPaused:
			row = append(row,
				tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("▶️ #%d", task.ID), fmt.Sprintf("%s%d", cbUnpausePrefix, task.ID)),
			)
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("%s%d", cbDeletePrefix, task.ID)))
		buttons = append(buttons, row)
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	data := cb.Data
	chatID := cb.Message.Chat.ID

	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(data, cbLogPrefix):
		taskID, err := parseCallbackID(data, cbLogPrefix)
		if err != nil {
			return nil
		}
		if _, err := b.eventSvc.LogEvent(ctx, user, taskID, service.EventInput{Around: model.AroundToday}); err != nil {
			return b.replyServiceError(chatID, err)
		}
		log.Printf("[info] callback event logged task=%d user=%d", taskID, user.ID)
		return b.sendTaskList(ctx, chatID, user)

	case strings.HasPrefix(data, cbPausePrefix):
		taskID, err := parseCallbackID(data, cbPausePrefix)
		if err != nil {
			return nil
		}
		if err := b.taskSvc.PauseTask(ctx, user, taskID); err != nil {
			return b.replyServiceError(chatID, err)
		}
		return b.sendTaskList(ctx, chatID, user)

	case strings.HasPrefix(data, cbUnpausePrefix):
		taskID, err := parseCallbackID(data, cbUnpausePrefix)
		if err != nil {
			return nil
		}
		if err := b.taskSvc.UnpauseTask(ctx, user, taskID); err != nil {
			return b.replyServiceError(chatID, err)
		}
		return b.sendTaskList(ctx, chatID, user)

	case strings.HasPrefix(data, cbDeletePrefix):
		taskID, err := parseCallbackID(data, cbDeletePrefix)
		if err != nil {
			return nil
		}
		task, err := b.taskSvc.GetTask(ctx, user, taskID)
		if err != nil {
			return b.replyServiceError(chatID, err)
		}
		b.setConfirmation(cb.From.ID, confirmationRequest{taskID: task.ID})
		text := fmt.Sprintf("Удалить задачу «%s» (#%d) вместе со всей историей?", escape(task.Name), task.ID)
		return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())

	default:
		return nil
	}
}

// --- shared plumbing ---

func (b *Bot) taskFromArgs(ctx context.Context, msg *tgbotapi.Message) (*model.Task, error) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return nil, b.sendText(msg.Chat.ID, fmt.Sprintf("Укажи ID задачи: /%s 12", msg.Command()))
	}
	taskID, err := parseID(args)
	if err != nil {
		return nil, b.sendText(msg.Chat.ID, "ID задачи должен быть числом.")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return nil, err
	}

	task, err := b.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		return nil, b.replyServiceError(msg.Chat.ID, err)
	}
	return task, nil
}

func (b *Bot) replyServiceError(chatID int64, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return b.sendText(chatID, "Задача не найдена.")
	case service.IsValidation(err):
		return b.sendText(chatID, fmt.Sprintf("⚠️ %s", escape(err.Error())))
	default:
		return b.sendText(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendTextWithRemove(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNewTask):
		return true, b.startNewTaskConversation(ctx, msg)
	case strings.ToLower(menuLabelTasks):
		return true, b.handleListTasks(ctx, msg)
	case strings.ToLower(menuLabelReport):
		return true, b.handleReport(ctx, msg)
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

func (b *Bot) getConfirmation(userID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[userID]
	return req, ok
}

func (b *Bot) setConfirmation(userID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[userID] = req
}

func (b *Bot) clearConfirmation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, userID)
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

// --- formatting helpers ---

func parseID(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parseCallbackID(data, prefix string) (uint, error) {
	return parseID(strings.TrimPrefix(data, prefix))
}

func statusIcon(task model.Task, now time.Time) string {
	switch task.Status {
	case model.StatusPaused:
		return "⏸"
	case model.StatusCompleted:
		return "🏁"
	}
	if task.NextEventAt != nil && task.NextEventAt.Before(now) {
		return "⚠️"
	}
	return "🟢"
}

func formatTaskLine(task model.Task, catNames map[uint]string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s <b>#%d</b> %s", statusIcon(task, now), task.ID, escape(strings.TrimSpace(task.Name))))
	if task.CategoryID != nil {
		if name, ok := catNames[*task.CategoryID]; ok && strings.TrimSpace(name) != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", escape(strings.TrimSpace(name))))
		}
	}
	sb.WriteByte('\n')

	sb.WriteString(fmt.Sprintf("   🔁 %s · %s\n", frequencyLabel(task.Frequency), untilLabel(task.Until)))

	switch {
	case task.Status == model.StatusPaused:
		sb.WriteString("   ⏸ на паузе\n")
	case task.Status == model.StatusCompleted:
		sb.WriteString("   🏁 завершена\n")
	case task.NextEventAt == nil:
		sb.WriteString("   ⏰ без ориентира\n")
	case task.NextEventAt.Before(now):
		sb.WriteString(fmt.Sprintf("   ⏰ ориентир был %s — <b>пора!</b>\n", task.NextEventAt.Format("2006-01-02 15:04")))
	default:
		sb.WriteString(fmt.Sprintf("   ⏰ ориентир: %s\n", task.NextEventAt.Format("2006-01-02 15:04")))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func frequencyLabel(f model.Frequency) string {
	switch f.Type {
	case model.FrequencyOn:
		label := "однажды"
		if f.OnceOnDate != nil {
			label += " " + f.OnceOnDate.Format("2006-01-02")
		}
		if f.OnceAtTime != nil {
			label += " в " + *f.OnceAtTime
		}
		return label
	case model.FrequencyPer:
		if f.OncePerWeekday != nil {
			label := "по " + weekdayLabels[*f.OncePerWeekday]
			if f.OnceAtTime != nil {
				label += " в " + *f.OnceAtTime
			}
			return label
		}
		if f.Amount == 1 {
			label := fmt.Sprintf("раз в %s", periodLabels[f.Period])
			if f.OnceAtTime != nil {
				label += " в " + *f.OnceAtTime
			}
			return label
		}
		return fmt.Sprintf("%d раз(а) в %s", f.Amount, periodLabels[f.Period])
	case model.FrequencyThis:
		kind := "скользящий"
		if f.UseCalendarPeriod {
			kind = "календарный"
		}
		return fmt.Sprintf("%d раз(а) за %s (%s)", f.Amount, periodLabels[f.Period], kind)
	}
	return string(f.Type)
}

func untilLabel(u model.Until) string {
	switch u.Type {
	case model.UntilStopped:
		return "пока не остановлю"
	case model.UntilCompleted:
		return "пока не завершу"
	case model.UntilDate:
		if u.Date != nil {
			return "до " + u.Date.Format("2006-01-02")
		}
		return "до даты"
	case model.UntilAmount:
		return fmt.Sprintf("до %d выполнений", u.Amount)
	}
	return string(u.Type)
}

func aroundLabel(a model.EventAround) string {
	switch a {
	case model.AroundToday:
		return "сегодня"
	case model.AroundYesterday:
		return "вчера"
	case model.AroundSpecifically:
		return "точное время"
	}
	return string(a)
}

// --- keyboards ---

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelReport),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Учеба"),
			tgbotapi.NewKeyboardButton("Работа"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Покупки"),
			tgbotapi.NewKeyboardButton("Здоровье"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func yesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnYes),
			tgbotapi.NewKeyboardButton(btnNo),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func freqKindKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFreqOn),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFreqPer),
			tgbotapi.NewKeyboardButton(btnFreqThis),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func periodKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("День"),
			tgbotapi.NewKeyboardButton("Неделя"),
			tgbotapi.NewKeyboardButton("Месяц"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Квартал"),
			tgbotapi.NewKeyboardButton("Год"),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func weekdayKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Пн"),
			tgbotapi.NewKeyboardButton("Вт"),
			tgbotapi.NewKeyboardButton("Ср"),
			tgbotapi.NewKeyboardButton("Чт"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Пт"),
			tgbotapi.NewKeyboardButton("Сб"),
			tgbotapi.NewKeyboardButton("Вс"),
			tgbotapi.NewKeyboardButton(btnSkip),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func untilKindKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnUntilStopped),
			tgbotapi.NewKeyboardButton(btnUntilCompleted),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnUntilDate),
			tgbotapi.NewKeyboardButton(btnUntilAmount),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "пропустить" || value == "skip"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "подтвердить" || value == "да"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "отмена"
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "отменить ввод" || value == "отмена"
}

func escape(s string) string {
	return html.EscapeString(s)
}

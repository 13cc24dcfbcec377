package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dgallion1/docsbot/internal/docpath"
	"github.com/dgallion1/docsbot/internal/fetch"
	"github.com/dgallion1/docsbot/internal/render"
	"github.com/dgallion1/docsbot/internal/store"
	"github.com/dgallion1/docsbot/internal/telegram"
)

const (
	usageReply    = "Usage: /docs <item path>"
	notFoundReply = "Cannot find that item."

	pathFormatReply = "<b>Item Path Format</b>\n" +
		"&lt;package&gt;::&lt;module&gt;::…::&lt;item&gt;\n\n" +
		"every segment of the path should <i>only</i> contain alphanumerics, " +
		"underscore (<code>_</code>), or hyphen (<code>-</code>)."
)

// Bot resolves incoming updates against the documentation cache and the
// paging sessions.
type Bot struct {
	tg        *telegram.Client
	fetcher   *fetch.Client
	docs      *store.DocStore
	sessions  *store.SessionStore
	pageLimit int
	log       *slog.Logger
}

func New(tg *telegram.Client, fetcher *fetch.Client, docs *store.DocStore, sessions *store.SessionStore, pageLimit int, log *slog.Logger) *Bot {
	return &Bot{
		tg:        tg,
		fetcher:   fetcher,
		docs:      docs,
		sessions:  sessions,
		pageLimit: pageLimit,
		log:       log,
	}
}

// HandleUpdate routes one update to its handler.
func (b *Bot) HandleUpdate(ctx context.Context, up telegram.Update) {
	switch {
	case up.Message != nil:
		b.handleMessage(ctx, up.Message)
	case up.CallbackQuery != nil:
		b.handleCallback(ctx, up.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) {
	cmd, ok := ParseCommand(msg.Text)
	if !ok || cmd.Label != "/docs" {
		return
	}

	path, err := docpath.Parse(cmd.Rest)
	var invalidChar *docpath.InvalidCharError
	switch {
	case errors.Is(err, docpath.ErrEmpty):
		b.reply(ctx, msg, usageReply, "")
		return
	case errors.As(err, &invalidChar):
		b.reply(ctx, msg, pathFormatReply, "HTML")
		return
	}

	key := path.Key()
	doc := b.docs.Get(key)
	if doc == nil {
		parsed, finalURL, err := b.fetcher.Fetch(ctx, path)
		if err != nil {
			b.log.Error("cannot fetch documentation", "path", key, "error", err)
			return
		}
		if parsed == nil {
			b.reply(ctx, msg, notFoundReply, "")
			return
		}
		doc = render.Build(parsed, finalURL, b.pageLimit)
		b.docs.Put(key, doc)
	}

	if len(doc.Pages) == 0 {
		b.reply(ctx, msg, notFoundReply, "")
		return
	}
	page := &doc.Pages[0]

	sent, err := b.tg.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:                   msg.Chat.ID,
		Text:                     page.Text,
		ParseMode:                "HTML",
		ReplyToMessageID:         msg.MessageID,
		AllowSendingWithoutReply: true,
		DisableWebPagePreview:    true,
		ReplyMarkup:              page.BuildKeyboard(0),
	})
	if err != nil {
		b.log.Error("send documentation", "path", key, "error", err)
		return
	}
	b.sessions.Put(sent.Chat.ID, sent.MessageID, store.Session{Path: key, Page: 0})
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	// Always answered, even for no-ops, to stop the client spinner.
	defer func() {
		if err := b.tg.AnswerCallbackQuery(ctx, telegram.AnswerCallbackQueryRequest{CallbackQueryID: cb.ID}); err != nil {
			b.log.Warn("answer callback", "error", err)
		}
	}()

	msg := cb.Message
	if msg == nil {
		return
	}
	session, ok := b.sessions.Get(msg.Chat.ID, msg.MessageID)
	if !ok {
		return
	}

	data := cb.Data
	switch {
	case data == render.NoopCallback:
		return
	case strings.HasPrefix(data, render.GroupPrefix):
		group, err := strconv.Atoi(data[len(render.GroupPrefix):])
		if err != nil {
			return
		}
		b.switchGroup(ctx, msg, session, group)
	default:
		index, err := strconv.Atoi(data)
		if err != nil {
			return
		}
		b.jumpToPage(ctx, msg, session, index)
	}
}

// jumpToPage shows another page of the session's document and resets
// the displayed additional group to 0.
func (b *Bot) jumpToPage(ctx context.Context, msg *telegram.Message, session store.Session, index int) {
	doc := b.docs.Get(session.Path)
	if doc == nil || index < 0 || index >= len(doc.Pages) {
		return
	}
	page := &doc.Pages[index]
	err := b.tg.EditMessageText(ctx, telegram.EditMessageTextRequest{
		ChatID:                msg.Chat.ID,
		MessageID:             msg.MessageID,
		Text:                  page.Text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
		ReplyMarkup:           page.BuildKeyboard(0),
	})
	if err != nil {
		b.log.Error("edit page", "path", session.Path, "page", index, "error", err)
		return
	}
	session.Page = index
	b.sessions.Put(msg.Chat.ID, msg.MessageID, session)
}

// switchGroup swaps the keyboard of the current page for another
// additional group, leaving the page text alone.
func (b *Bot) switchGroup(ctx context.Context, msg *telegram.Message, session store.Session, group int) {
	doc := b.docs.Get(session.Path)
	if doc == nil || session.Page < 0 || session.Page >= len(doc.Pages) {
		return
	}
	keyboard := doc.Pages[session.Page].BuildKeyboard(group)
	if keyboard == nil {
		return
	}
	err := b.tg.EditMessageReplyMarkup(ctx, telegram.EditMessageReplyMarkupRequest{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.MessageID,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		b.log.Error("edit keyboard", "path", session.Path, "group", group, "error", err)
	}
}

func (b *Bot) reply(ctx context.Context, msg *telegram.Message, text, parseMode string) {
	_, err := b.tg.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:                   msg.Chat.ID,
		Text:                     text,
		ParseMode:                parseMode,
		ReplyToMessageID:         msg.MessageID,
		AllowSendingWithoutReply: true,
	})
	if err != nil {
		b.log.Error("send reply", "error", err)
	}
}

// Package telegram is the messaging-handler layer: it drains the bot API
// update feed, maps commands onto the core services, and formats replies.
// One update is processed at a time.
package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmitrijs2005/trustbot/internal/bot/health"
	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/bot/services"
	"github.com/dmitrijs2005/trustbot/internal/common"
	"github.com/dmitrijs2005/trustbot/internal/logging"
	"github.com/dmitrijs2005/trustbot/internal/netx"
)

// botAPI is the slice of tgbotapi.BotAPI the handler uses; a seam for
// tests.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetFileDirectURL(fileID string) (string, error)
	StopReceivingUpdates()
}

// Handler routes inbound commands to the core services.
type Handler struct {
	bot     botAPI
	logger  logging.Logger
	roles   *services.RoleService
	access  *services.AccessService
	records *services.RecordService
	proofs  *services.ProofService
	status  *health.Status
}

// NewHandler connects to the Bot API and builds the handler.
func NewHandler(token string, l logging.Logger, roles *services.RoleService, access *services.AccessService,
	records *services.RecordService, proofs *services.ProofService, status *health.Status) (*Handler, error) {

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Handler{
		bot:     bot,
		logger:  l.With("module", "telegram"),
		roles:   roles,
		access:  access,
		records: records,
		proofs:  proofs,
		status:  status,
	}, nil
}

// Run drains the update feed until ctx is cancelled. Updates are handled
// sequentially on this goroutine.
func (h *Handler) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := h.bot.GetUpdatesChan(u)

	h.logger.Info(ctx, "Starting update loop")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info(ctx, "Stopping update loop...")
			h.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	h.status.IncUpdates()

	if !msg.IsCommand() {
		if len(msg.Photo) > 0 && strings.HasPrefix(msg.Caption, "/proof") {
			if err := h.handleProofPhoto(ctx, msg); err != nil {
				h.replyError(ctx, msg, msg.From.ID, "proof", err)
			}
			return
		}
		if text, ok := keyboardCommand(msg.Text); ok {
			h.dispatch(ctx, msg, text, "")
		}
		return
	}

	h.dispatch(ctx, msg, msg.Command(), msg.CommandArguments())
}

func (h *Handler) dispatch(ctx context.Context, msg *tgbotapi.Message, command, args string) {
	actorID := msg.From.ID

	var err error
	switch command {
	case "start", "help":
		h.reply(ctx, msg, helpText, true)
	case "check":
		err = h.handleCheck(ctx, msg, args)
	case "scam":
		err = h.handleScam(ctx, msg, args)
	case "unscam":
		err = h.handleUnscam(ctx, msg, args)
	case "garant":
		err = h.handleGarant(ctx, msg, args)
	case "ungarant":
		err = h.handleUngarant(ctx, msg, args)
	case "admin":
		err = h.handleAdmin(ctx, msg, args)
	case "unadmin":
		err = h.handleUnadmin(ctx, msg, args)
	case "garants":
		err = h.handleGarants(ctx, msg)
	case "stats":
		err = h.handleStats(ctx, msg)
	case "proof":
		err = h.handleProof(ctx, msg)
	default:
		h.reply(ctx, msg, unknownCommandText, false)
	}

	if err != nil {
		h.replyError(ctx, msg, actorID, command, err)
	}
}

// replyError maps expected outcomes onto user-facing lines; anything else
// is a storage fault: log details, answer a generic failure.
func (h *Handler) replyError(ctx context.Context, msg *tgbotapi.Message, actorID int64, command string, err error) {
	switch {
	case errors.Is(err, common.ErrPermissionDenied):
		h.reply(ctx, msg, permissionDeniedText, false)
	case errors.Is(err, common.ErrDuplicate):
		h.reply(ctx, msg, duplicateText, false)
	case errors.Is(err, common.ErrNotFound):
		h.reply(ctx, msg, notFoundText, false)
	case errors.Is(err, common.ErrInvalidUserID):
		h.reply(ctx, msg, invalidTargetText, false)
	default:
		h.logger.Error(ctx, "command failed", "command", command, "actor", actorID, "error", err)
		h.reply(ctx, msg, genericFailureText, false)
	}
}

func (h *Handler) handleCheck(ctx context.Context, msg *tgbotapi.Message, args string) error {
	targetID, targetName, err := parseTarget(msg, args)
	if err != nil {
		return err
	}

	res, err := h.roles.CheckUser(ctx, targetID, targetName)
	if err != nil {
		return err
	}
	h.status.IncLookups()

	text := formatProfile(res, targetID, targetName)

	// Scammer profiles with an attached proof photo are sent as a photo
	// with the profile as caption.
	if res.Scammer != nil && res.Scammer.ProofKey != "" {
		url, err := h.proofs.ViewURL(ctx, res.Scammer.ProofKey)
		if err == nil {
			photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileURL(url))
			photo.Caption = text
			if _, err := h.bot.Send(photo); err == nil {
				return nil
			}
		}
		h.logger.Warn(ctx, "proof photo unavailable, sending text only", "key", res.Scammer.ProofKey)
	}

	h.reply(ctx, msg, text, false)
	return nil
}

func (h *Handler) handleScam(ctx context.Context, msg *tgbotapi.Message, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		h.reply(ctx, msg, "Usage: /scam <id> <reason>", false)
		return nil
	}
	targetID, targetName, err := parseTarget(msg, fields[0])
	if err != nil {
		return err
	}

	rec := &models.ScammerRecord{
		UserID:      targetID,
		DisplayName: targetName,
		Reason:      strings.Join(fields[1:], " "),
	}
	if err := h.records.AddScammer(ctx, msg.From.ID, rec); err != nil {
		return err
	}
	h.reply(ctx, msg, scammerAddedText, false)
	return nil
}

func (h *Handler) handleUnscam(ctx context.Context, msg *tgbotapi.Message, args string) error {
	targetID, _, err := parseTarget(msg, args)
	if err != nil {
		return err
	}
	if err := h.records.RemoveScammer(ctx, msg.From.ID, targetID); err != nil {
		return err
	}
	h.reply(ctx, msg, scammerRemovedText, false)
	return nil
}

func (h *Handler) handleGarant(ctx context.Context, msg *tgbotapi.Message, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		h.reply(ctx, msg, "Usage: /garant <id> <info_link> <proofs_link>", false)
		return nil
	}
	targetID, targetName, err := parseTarget(msg, fields[0])
	if err != nil {
		return err
	}

	rec := &models.GuarantorRecord{
		UserID:      targetID,
		DisplayName: targetName,
		InfoLink:    fields[1],
		ProofsLink:  fields[2],
	}
	if err := h.records.AddGuarantor(ctx, msg.From.ID, rec); err != nil {
		return err
	}
	h.reply(ctx, msg, guarantorAddedText, false)
	return nil
}

func (h *Handler) handleUngarant(ctx context.Context, msg *tgbotapi.Message, args string) error {
	targetID, _, err := parseTarget(msg, args)
	if err != nil {
		return err
	}
	if err := h.records.RemoveGuarantor(ctx, msg.From.ID, targetID); err != nil {
		return err
	}
	h.reply(ctx, msg, guarantorRemovedText, false)
	return nil
}

func (h *Handler) handleAdmin(ctx context.Context, msg *tgbotapi.Message, args string) error {
	targetID, targetName, err := parseTarget(msg, args)
	if err != nil {
		return err
	}
	rec := &models.AdminRecord{UserID: targetID, DisplayName: targetName}
	if err := h.records.AddAdmin(ctx, msg.From.ID, rec); err != nil {
		return err
	}
	h.reply(ctx, msg, adminAddedText, false)
	return nil
}

func (h *Handler) handleUnadmin(ctx context.Context, msg *tgbotapi.Message, args string) error {
	targetID, _, err := parseTarget(msg, args)
	if err != nil {
		return err
	}
	if err := h.records.RemoveAdmin(ctx, msg.From.ID, targetID); err != nil {
		return err
	}
	h.reply(ctx, msg, adminRemovedText, false)
	return nil
}

func (h *Handler) handleGarants(ctx context.Context, msg *tgbotapi.Message) error {
	list, err := h.records.ListGuarantors(ctx)
	if err != nil {
		return err
	}
	h.reply(ctx, msg, formatGuarantors(list), false)
	return nil
}

func (h *Handler) handleStats(ctx context.Context, msg *tgbotapi.Message) error {
	count, err := h.records.CountScammersAddedBy(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	h.reply(ctx, msg, formatStats(count), false)
	return nil
}

func (h *Handler) handleProof(ctx context.Context, msg *tgbotapi.Message) error {
	key, url, err := h.proofs.UploadURL(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	h.reply(ctx, msg, formatProofUpload(key, url), false)
	return nil
}

// handleProofPhoto processes a photo message captioned "/proof <id>":
// the photo goes to object storage, the key lands on the scammer record.
func (h *Handler) handleProofPhoto(ctx context.Context, msg *tgbotapi.Message) error {
	fields := strings.Fields(msg.Caption)
	if len(fields) < 2 && msg.ReplyToMessage == nil {
		h.reply(ctx, msg, proofUsageText, false)
		return nil
	}
	args := ""
	if len(fields) > 1 {
		args = fields[1]
	}
	targetID, _, err := parseTarget(msg, args)
	if err != nil {
		return err
	}

	// The last size variant is the largest one.
	photo := msg.Photo[len(msg.Photo)-1]
	fileURL, err := h.bot.GetFileDirectURL(photo.FileID)
	if err != nil {
		return err
	}

	data, err := netx.DownloadFile(ctx, fileURL)
	if err != nil {
		return err
	}

	key, err := h.proofs.StoreProof(ctx, msg.From.ID, data, "image/jpeg")
	if err != nil {
		return err
	}

	if err := h.records.AttachScammerProof(ctx, msg.From.ID, targetID, key); err != nil {
		return err
	}
	h.reply(ctx, msg, proofAttachedText, false)
	return nil
}

func (h *Handler) reply(ctx context.Context, msg *tgbotapi.Message, text string, withKeyboard bool) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	if withKeyboard {
		out.ReplyMarkup = mainKeyboard()
	}
	if _, err := h.bot.Send(out); err != nil {
		h.logger.Error(ctx, "send failed", "chat", msg.Chat.ID, "error", err)
	}
}

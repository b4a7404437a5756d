package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/bot/services"
	"github.com/dmitrijs2005/trustbot/internal/common"
)

const (
	helpText = "Trust check bot.\n\n" +
		"/check <id> — look up a user (or reply to their message)\n" +
		"/garants — list verified guarantors\n\n" +
		"Admin commands: /scam, /unscam, /garant, /ungarant, /stats, /proof\n" +
		"Owner commands: /admin, /unadmin"

	unknownCommandText   = "Unknown command. Try /help."
	permissionDeniedText = "You are not allowed to do that."
	duplicateText        = "That user is already recorded."
	notFoundText         = "No record for that user."
	invalidTargetText    = "Give me a numeric user id or reply to the user's message."
	genericFailureText   = "Something went wrong, try again later."

	scammerAddedText     = "Recorded as scammer."
	scammerRemovedText   = "Scammer record removed."
	guarantorAddedText   = "Recorded as guarantor."
	guarantorRemovedText = "Guarantor record removed."
	adminAddedText       = "Admin added."
	adminRemovedText     = "Admin removed."
	proofAttachedText    = "Proof photo attached to the report."
	proofUsageText       = "Send a photo with the caption /proof <scammer_id>, or use /proof to get an upload link."
)

// parseTarget extracts the target user id and display name: from the
// replied-to message when there is one, otherwise from the first argument.
func parseTarget(msg *tgbotapi.Message, args string) (int64, string, error) {
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		from := msg.ReplyToMessage.From
		return from.ID, displayName(from), nil
	}

	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, "", common.ErrInvalidUserID
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", common.ErrInvalidUserID
	}
	return id, "", nil
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// formatProfile renders one of the four role templates.
func formatProfile(res *services.CheckResult, userID int64, name string) string {
	var b strings.Builder

	header := name
	if header == "" {
		header = strconv.FormatInt(userID, 10)
	}

	switch res.Role {
	case models.RoleScammer:
		fmt.Fprintf(&b, "⛔ SCAMMER — %s (id %d)\n", header, userID)
		fmt.Fprintf(&b, "Reason: %s\n", res.Scammer.Reason)
		if res.Scammer.Proofs != "" {
			fmt.Fprintf(&b, "Proofs: %s\n", res.Scammer.Proofs)
		}
	case models.RoleGuarantor:
		fmt.Fprintf(&b, "✅ Verified guarantor — %s (id %d)\n", header, userID)
		fmt.Fprintf(&b, "Info: %s\n", res.Guarantor.InfoLink)
		fmt.Fprintf(&b, "Proofs: %s\n", res.Guarantor.ProofsLink)
	case models.RoleAdmin:
		fmt.Fprintf(&b, "🛡 Administrator — %s (id %d)\n", header, userID)
	default:
		fmt.Fprintf(&b, "👤 %s (id %d)\n", header, userID)
		b.WriteString("No scam or guarantee records.\n")
	}

	fmt.Fprintf(&b, "Checked %d time(s).", res.SearchCount)
	return b.String()
}

func formatGuarantors(list []*models.GuarantorRecord) string {
	if len(list) == 0 {
		return "No guarantors registered yet."
	}

	var b strings.Builder
	b.WriteString("Verified guarantors:\n")
	for i, g := range list {
		name := g.DisplayName
		if name == "" {
			name = strconv.FormatInt(g.UserID, 10)
		}
		fmt.Fprintf(&b, "%d. %s (id %d) — %s\n", i+1, name, g.UserID, g.InfoLink)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatStats(count int64) string {
	return fmt.Sprintf("You have reported %d scammer(s).", count)
}

func formatProofUpload(key, url string) string {
	return fmt.Sprintf("Upload the proof photo with an HTTP PUT to the link below, "+
		"then attach the key to the report.\nKey: %s\n%s", key, url)
}

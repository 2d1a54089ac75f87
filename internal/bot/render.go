package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/Speed10x/premiumSMM/internal/catalog"
	"github.com/Speed10x/premiumSMM/internal/order"
	"github.com/Speed10x/premiumSMM/internal/telegram/format"
	"github.com/Speed10x/premiumSMM/internal/telegram/keyboard"
)

// renderPrompt maps an engine prompt to the message text and inline keyboard
// for the user's current step. Catalog names are trusted; anything the user
// typed is escaped before it lands in Markdown.
func renderPrompt(cat *catalog.Catalog, p order.Prompt) (string, *tele.ReplyMarkup) {
	var text string
	var markup *tele.ReplyMarkup

	switch p.State {
	case order.StatePlatform:
		text = textChoosePlatform
		markup = selectionKeyboard(platformButtons(cat), 2, false)

	case order.StateService:
		text = fmt.Sprintf(textChooseService, p.Draft.Platform)
		markup = selectionKeyboard(serviceButtons(cat, p.Draft.Platform), 1, true)

	case order.StateQuantity:
		text = fmt.Sprintf(textAskQuantity, order.MinQuantity, order.MaxQuantity)
		markup = navKeyboard()

	case order.StateAccount:
		text = textAskTarget
		markup = navKeyboard()

	case order.StatePayment:
		text = fmt.Sprintf(textAskProof, draftSummary(p.Draft), p.Draft.Price.StringFixed(2))
		markup = navKeyboard()

	default: // main menu
		if p.Order != nil {
			text = fmt.Sprintf(textOrderSubmitted, submittedSummary(*p.Order))
		} else {
			text = textWelcome
		}
		markup = menuKeyboard()
	}

	if n := noticeText(p.Notice); n != "" {
		text = n + "\n\n" + text
	}
	return text, markup
}

func noticeText(n order.Notice) string {
	switch n {
	case order.NoticeQuantityNotNumber:
		return noticeQuantityNotNumber
	case order.NoticeQuantityOutOfRange:
		return fmt.Sprintf(noticeQuantityOutOfRange, order.MinQuantity, order.MaxQuantity)
	case order.NoticeTargetEmpty:
		return noticeTargetEmpty
	case order.NoticeProofRequired:
		return noticeProofRequired
	}
	return ""
}

func platformButtons(cat *catalog.Catalog) []keyboard.InlineBtn {
	platforms := cat.Platforms()
	buttons := make([]keyboard.InlineBtn, 0, len(platforms))
	for _, p := range platforms {
		buttons = append(buttons, keyboard.InlineBtn{Text: p, Unique: cbOrderPlatform, Data: p})
	}
	return buttons
}

func serviceButtons(cat *catalog.Catalog, platform string) []keyboard.InlineBtn {
	services := cat.Services(platform)
	buttons := make([]keyboard.InlineBtn, 0, len(services))
	for _, svc := range services {
		label := svc
		if e, ok := cat.Lookup(platform, svc); ok {
			label = svc + " — " + priceLabel(e)
		}
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   label,
			Unique: cbOrderService,
			Data:   svc,
		})
	}
	return buttons
}

func priceLabel(e catalog.Entry) string {
	if e.Basis == catalog.PerThousand {
		return e.UnitPrice.StringFixed(2) + " / 1k"
	}
	return e.UnitPrice.StringFixed(2) + " each"
}

// selectionKeyboard lays out choice buttons n per row with a navigation row
// underneath. The platform step has no back target besides the menu, so it
// gets a lone cancel button.
func selectionKeyboard(buttons []keyboard.InlineBtn, perRow int, withBack bool) *tele.ReplyMarkup {
	markup := keyboard.InlineButtonsNPerRow(buttons, perRow)
	nav := keyboard.InlineButtonsRows(navRow(withBack))
	markup.InlineKeyboard = append(markup.InlineKeyboard, nav.InlineKeyboard...)
	return markup
}

func navKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(navRow(true))
}

func navRow(withBack bool) []keyboard.InlineBtn {
	row := []keyboard.InlineBtn{}
	if withBack {
		row = append(row, keyboard.InlineBtn{Text: btnBack, Unique: cbOrderBack})
	}
	return append(row, keyboard.InlineBtn{Text: btnCancel, Unique: cbOrderCancel})
}

func menuKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnNewOrder, Unique: cbOrderNew},
		{Text: btnSupport, Unique: cbMenuSupport},
	})
}

func draftSummary(d order.Draft) string {
	return summaryLines(d.Platform, d.Service, d.Quantity, d.Target)
}

func submittedSummary(o order.Order) string {
	var b strings.Builder
	b.WriteString(summaryLines(o.Platform, o.Service, o.Quantity, o.Target))
	fmt.Fprintf(&b, "Price: *%s*\n", o.Price.StringFixed(2))
	return b.String()
}

func summaryLines(platform, service string, quantity int, target string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Platform: %s\n", platform)
	fmt.Fprintf(&b, "Service: %s\n", service)
	fmt.Fprintf(&b, "Quantity: %d\n", quantity)
	fmt.Fprintf(&b, "Target: %s\n", format.EscapeV1(target))
	return b.String()
}

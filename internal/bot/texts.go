package bot

// User-facing copy lives here so handlers and renderers stay free of
// string literals.
const (
	textWelcome = "Welcome to the boost shop! 🚀\n" +
		"Pick a platform, a service and a quantity, and our operators will take it from there.\n\n" +
		"Tap the button below or send /order to get started."

	textHelp = "Available commands:\n" +
		"/order — start a new order\n" +
		"/cancel — abandon the current order\n" +
		"/support — contact support\n" +
		"/help — this message"

	textSupportFallback = "Write to our support operators and they will help you out."

	textOrderCancelled = "Order cancelled. Send /order whenever you are ready to start again."
	textNothingToDo    = "Nothing in progress. Send /order to start a new order."
	textUnknownInput   = "I did not understand that. Send /help for the list of commands."
	textSlowDown       = "Too fast! Give it a second and try again."
	textNotAllowed     = "This action is reserved for operators."

	textChoosePlatform = "🛒 *New order*\nChoose a platform:"
	textChooseService  = "Choose a service for *%s*:"
	textAskQuantity    = "How many would you like?\nSend a number between %d and %d."
	textAskTarget      = "Send the username, ID or link the boost should be applied to."
	textAskProof       = "💳 *Almost done!*\n%s\nTotal: *%s*\n\n" +
		"Transfer the total and upload a screenshot of the payment to confirm."

	textOrderSubmitted = "✅ Your order has been submitted for review.\n%s\n" +
		"You will be notified as soon as an operator checks the payment."

	noticeQuantityNotNumber  = "⚠️ That is not a number."
	noticeQuantityOutOfRange = "⚠️ Quantity must be between %d and %d."
	noticeTargetEmpty        = "⚠️ The target cannot be empty."
	noticeProofRequired      = "⚠️ A payment screenshot is required to finish the order."

	textDecisionApproved = "✅ Payment confirmed! Your order is being processed."
	textDecisionRejected = "❌ We could not confirm your payment. Contact support: %s"
	textDecisionPending  = "⏳ Your payment is still being checked. We will get back to you shortly."

	textSubmitFailed = "😔 Something went wrong while submitting your order. Please try again or contact support."

	textReviewHeader  = "📦 *New order* `%s`\nFrom user: `%d`\n\n%s"
	textReviewDecided = "%s\n\nDecision: %s"
	textReviewUnknown = "This order was already decided or does not exist."

	badgeApproved = "✅ APPROVED"
	badgeRejected = "❌ REJECTED"
	badgePending  = "⏳ PENDING"

	btnNewOrder = "🛒 Place an order"
	btnSupport  = "💬 Support"
	btnBack     = "⬅️ Back"
	btnCancel   = "❌ Cancel"
	btnApprove  = "✅ Approve"
	btnReject   = "❌ Reject"
	btnPending  = "⏳ Pending"
)

// Callback uniques. Payloads carry the selection value or correlation id.
const (
	cbOrderNew      = "order_new"
	cbOrderPlatform = "order_platform"
	cbOrderService  = "order_service"
	cbOrderBack     = "order_back"
	cbOrderCancel   = "order_cancel"
	cbMenuSupport   = "menu_support"
	cbReviewApprove = "mod_approve"
	cbReviewReject  = "mod_reject"
	cbReviewPending = "mod_pending"
)

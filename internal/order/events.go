package order

// EventKind tags inbound conversation events. Raw transport payloads are
// parsed into these exactly once, at the telegram boundary.
type EventKind string

const (
	// EventStartOrder begins (or restarts) the order flow.
	EventStartOrder EventKind = "start_order"
	// EventCancel aborts the flow from any state.
	EventCancel EventKind = "cancel"
	// EventSelectPlatform carries a platform button press.
	EventSelectPlatform EventKind = "select_platform"
	// EventSelectService carries a service button press.
	EventSelectService EventKind = "select_service"
	// EventBack steps one state backwards.
	EventBack EventKind = "back"
	// EventText carries a free-text message (quantity, target account).
	EventText EventKind = "text"
	// EventMedia carries an uploaded photo/document reference.
	EventMedia EventKind = "media"
)

// Event is a single inbound conversation event.
type Event struct {
	Kind   EventKind
	UserID int64
	// Value holds the platform or service name for selections, the message
	// body for text, or the opaque media reference for uploads.
	Value string
}

// Notice describes why the engine re-prompted instead of advancing.
type Notice string

const (
	// NoticeNone means the transition advanced normally.
	NoticeNone Notice = ""
	// NoticeQuantityNotNumber is raised for non-numeric quantity input.
	NoticeQuantityNotNumber Notice = "quantity_not_number"
	// NoticeQuantityOutOfRange is raised for quantities outside the accepted bounds.
	NoticeQuantityOutOfRange Notice = "quantity_out_of_range"
	// NoticeTargetEmpty is raised for an empty target account.
	NoticeTargetEmpty Notice = "target_empty"
	// NoticeProofRequired is raised when payment proof is expected but text arrived.
	NoticeProofRequired Notice = "proof_required"
)

// Prompt is what the engine asks the transport layer to render after a
// transition has been committed. Sends never precede the state change.
type Prompt struct {
	State  State
	Draft  Draft
	Notice Notice
	// Order is set only on the payment -> completed transition.
	Order *Order
}

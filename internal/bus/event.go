package bus

import "time"

// Event kinds published by the session core. Subscribers filter by
// namespace prefix, e.g. "feed." receives both appended and replaced.
const (
	KindStatusChanged   = "session.status_changed"
	KindIdentityChanged = "session.identity_changed"
	KindRosterReplaced  = "roster.replaced"
	KindFeedAppended    = "feed.appended"
	KindFeedReplaced    = "feed.replaced"
	KindTypingChanged   = "typing.changed"
	KindNoticePosted    = "notify.posted"
	KindNoticeFading    = "notify.fading"
	KindNoticeDismissed = "notify.dismissed"
	KindStagingReady    = "staging.ready"
	KindStagingFailed   = "staging.failed"
	KindStagingCleared  = "staging.cleared"
)

// Event is a domain event flowing between session components and the UI.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Now builds an event stamped with the current time.
func Now(kind string, payload any) Event {
	return Event{Kind: kind, Timestamp: time.Now(), Payload: payload}
}

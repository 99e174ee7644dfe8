// events.go defines the notifications extensions receive after catalog
// changes.
//
// Design: Events are delivered after the change has committed. Handlers
// observe; they cannot veto. A failing handler is logged and the remaining
// handlers still run.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventEntryAdd    EventType = "entry:add"
	EventEntryRemove EventType = "entry:remove"
	EventQuerySave   EventType = "query:save"
	EventQueryDelete EventType = "query:delete"
)

// Event is implemented by every event.
type Event interface {
	EventType() EventType
	EventTarget() string // entry id or saved query name
}

// EntryAddEvent is fired once per committed batch.
type EntryAddEvent struct {
	IDs      []string
	Author   string
	Replaced bool // the batch was stored with replace semantics
}

func (e EntryAddEvent) EventType() EventType { return EventEntryAdd }

// EventTarget returns the first id of the batch.
func (e EntryAddEvent) EventTarget() string {
	if len(e.IDs) == 0 {
		return ""
	}
	return e.IDs[0]
}

// EntryRemoveEvent is fired after an entry is deleted.
type EntryRemoveEvent struct {
	ID string
}

func (e EntryRemoveEvent) EventType() EventType { return EventEntryRemove }
func (e EntryRemoveEvent) EventTarget() string  { return e.ID }

// QueryEvent is fired after a saved query is stored or deleted.
type QueryEvent struct {
	Name    string
	Query   string // empty on delete
	Author  string
	Deleted bool
}

func (e QueryEvent) EventType() EventType {
	if e.Deleted {
		return EventQueryDelete
	}
	return EventQuerySave
}
func (e QueryEvent) EventTarget() string { return e.Name }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}

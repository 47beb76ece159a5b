package domain

import (
	"encoding/json"
	"fmt"
)

// EventType enumerates the mutation notifications the backing store
// emits. Each type maps to exactly one index handler.
type EventType string

const (
	EventMediumChanged      EventType = "medium_changed"
	EventMediumDeleted      EventType = "medium_deleted"
	EventTagRenamed         EventType = "tag_renamed"
	EventAliasAdded         EventType = "alias_added"
	EventAliasRemoved       EventType = "alias_removed"
	EventImplicationAdded   EventType = "implication_added"
	EventImplicationRemoved EventType = "implication_removed"
)

// Event is one backing-store mutation notification. Only the fields
// relevant to the event type are set.
type Event struct {
	Type EventType `json:"type"`

	// QueueID is the transport-assigned message ID, set on dequeue and
	// used to acknowledge. Never serialized.
	QueueID string `json:"-"`

	// MediumID for medium_changed / medium_deleted.
	MediumID int64 `json:"medium_id,omitempty"`

	// OldName/NewName for tag_renamed.
	OldName string `json:"old_name,omitempty"`
	NewName string `json:"new_name,omitempty"`

	// TagName/AliasName for alias_added / alias_removed.
	TagName   string `json:"tag_name,omitempty"`
	AliasName string `json:"alias_name,omitempty"`

	// Implying/Implied for implication_added / implication_removed.
	Implying string `json:"implying,omitempty"`
	Implied  string `json:"implied,omitempty"`
}

// Encode serializes the event for queue transport.
func (e *Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}

// DecodeEvent parses an event from its queue transport form.
func DecodeEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if e.Type == "" {
		return nil, fmt.Errorf("event without type: %w", ErrInvalidInput)
	}
	return &e, nil
}

// Convenience constructors keep event shapes in one place.

func NewMediumChangedEvent(id int64) *Event {
	return &Event{Type: EventMediumChanged, MediumID: id}
}

func NewMediumDeletedEvent(id int64) *Event {
	return &Event{Type: EventMediumDeleted, MediumID: id}
}

func NewTagRenamedEvent(oldName, newName string) *Event {
	return &Event{Type: EventTagRenamed, OldName: oldName, NewName: newName}
}

func NewAliasAddedEvent(tagName, alias string) *Event {
	return &Event{Type: EventAliasAdded, TagName: tagName, AliasName: alias}
}

func NewAliasRemovedEvent(alias string) *Event {
	return &Event{Type: EventAliasRemoved, AliasName: alias}
}

func NewImplicationAddedEvent(implying, implied string) *Event {
	return &Event{Type: EventImplicationAdded, Implying: implying, Implied: implied}
}

func NewImplicationRemovedEvent(implying, implied string) *Event {
	return &Event{Type: EventImplicationRemoved, Implying: implying, Implied: implied}
}

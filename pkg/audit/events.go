package audit

import (
	"strings"
	"time"
)

// EventInput describes the common fields for pipeline and state lifecycle
// events.
type EventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Metadata   map[string]any
	Op         string
	Layer      string
	Scope      string
	Key        string
	OldValue   any
	NewValue   any
	OccurredAt time.Time
}

// BuildExecutedEvent constructs a normalized audit event for a completed
// pipeline run.
func BuildExecutedEvent(input EventInput) Event {
	return buildEvent("pipeline.executed", "operation", input.Op, input)
}

// BuildExecutionFailedEvent constructs an audit event for an aborted pipeline
// run.
func BuildExecutionFailedEvent(input EventInput) Event {
	return buildEvent("pipeline.failed", "operation", input.Op, input)
}

// BuildStateChangedEvent constructs an audit event describing a state entry
// mutation.
func BuildStateChangedEvent(input EventInput) Event {
	return buildEvent("state.changed", "state", input.Key, input)
}

// BuildStateRemovedEvent constructs an audit event describing a state entry
// removal.
func BuildStateRemovedEvent(input EventInput) Event {
	return buildEvent("state.removed", "state", input.Key, input)
}

func buildEvent(action, objectType, objectID string, input EventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Op != "" {
		metadata = ensureMetadata(metadata)
		metadata["op"] = input.Op
	}
	if input.Layer != "" {
		metadata = ensureMetadata(metadata)
		metadata["layer"] = input.Layer
	}
	if input.Scope != "" {
		metadata = ensureMetadata(metadata)
		metadata["scope"] = input.Scope
	}
	if input.Key != "" {
		metadata = ensureMetadata(metadata)
		metadata["key"] = input.Key
	}
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Action:     action,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}

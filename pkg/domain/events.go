package domain

// HistoryReason identifies the operation that changed a history log.
type HistoryReason string

const (
	ReasonExecute HistoryReason = "execute"
	ReasonRecord  HistoryReason = "record"
	ReasonUndo    HistoryReason = "undo"
	ReasonRedo    HistoryReason = "redo"
	ReasonClear   HistoryReason = "clear"
)

// HistoryEvent describes the log right after a mutating operation.
type HistoryEvent struct {
	Reason  HistoryReason `json:"reason"`
	CanUndo bool          `json:"can_undo"`
	CanRedo bool          `json:"can_redo"`
	Total   int           `json:"total"`
	Index   int           `json:"index"`

	// Description of the command the operation acted on, empty for clear.
	Description string `json:"description,omitempty"`

	// Evicted counts commands dropped from the front because the log was full.
	Evicted int `json:"evicted,omitempty"`
	// Truncated counts redo entries discarded because a new command branched the log.
	Truncated int `json:"truncated,omitempty"`
}

// HistoryHooks defines callbacks for history observability.
// Hooks run synchronously after the history releases its lock.
type HistoryHooks struct {
	OnChange   func(*HistoryEvent)
	OnEvict    func(*HistoryEvent)
	OnTruncate func(*HistoryEvent)
}

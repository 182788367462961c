package domain

const (
	// DefaultNodeWidth is used when a node has neither a measured nor a declared width.
	DefaultNodeWidth = 200.0
	// DefaultNodeHeight is used when a node has neither a measured nor a declared height.
	DefaultNodeHeight = 100.0

	// DefaultAwarenessDistance is the expansion applied around nodes when none is configured.
	DefaultAwarenessDistance = 50.0

	// DefaultMaxHistory is the number of commands retained by a history log.
	DefaultMaxHistory = 100

	// PairKeySeparator joins the two node ids of a pair key.
	// Node ids must not contain it.
	PairKeySeparator = ":"
)

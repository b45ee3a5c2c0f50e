package postgres

// Error Messages
const (
	ErrMsgFailedToInsertSnapshot = "failed to insert reward snapshot"
	ErrMsgFailedToInsertSlots    = "failed to insert reward slots"
	ErrMsgFailedToCommit         = "failed to commit reward snapshot"
	ErrMsgFailedToQuerySnapshots = "failed to query reward snapshots"
	ErrMsgSlotOutOfRange         = "stored slot outside snapshot width"
)

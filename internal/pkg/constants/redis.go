package constants

// Redis key formats
const (
	KeyAccountLock     = "lock:account:%d" // Format: lock:account:{account_id}
	KeyReconcilerLease = "lease:reconciler"
)

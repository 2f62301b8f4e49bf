package util

const DateFormat = "2006-01-02"

// 题库来源
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// gin context keys
const (
	ContextIdentity  = "identity"
	ContextSessionID = "session_id"
)

package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	QuestionSourceFile    = "file"
	QuestionSourceCommand = "command"
)

const (
	DomainAll  = "all"
	LevelMixed = "Mixed"
)

const MimeJSON = "application/json"

package model

// Audit log levels.
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit log categories.
const (
	AuditCategoryAuth    = "auth"
	AuditCategoryContent = "content"
	AuditCategoryContact = "contact"
	AuditCategoryMedia   = "media"
	AuditCategoryConfig  = "config"
	AuditCategorySystem  = "system"
)

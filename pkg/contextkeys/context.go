package contextkeys

type ContextKey string

const (
	// DBContextKey carries the *gorm.DB (pool or transaction) set by the DB
	// middleware.
	DBContextKey ContextKey = "db"

	// RequestIDKey carries the per-request correlation id.
	RequestIDKey ContextKey = "request_id"
)

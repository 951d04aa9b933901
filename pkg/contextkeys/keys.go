package contextkeys

type contextKey string

const (
	SessionKey            contextKey = "Session"
	UserPermissionsMapKey contextKey = "userPermissionsMap"
	RequestIDKey          contextKey = "RequestID"
)

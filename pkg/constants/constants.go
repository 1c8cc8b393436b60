package constants

import "github.com/go-playground/validator/v10"

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	RequestIDKey ContextKey = "requestID"
	UserIDKey    ContextKey = "userID"
)

// Validate is the shared validator instance used by DTO validation.
var Validate = validator.New()

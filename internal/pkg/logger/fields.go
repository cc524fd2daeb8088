package logger

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Field lets callers build log fields without importing zap
type Field = zap.Field

func String(key, val string) Field {
	return zap.String(key, val)
}

func Err(err error) Field {
	return zap.Error(err)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

func Uint32(key string, val uint32) Field {
	return zap.Uint32(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// ErrorField is kept alongside Err for handler code
func ErrorField(err error) Field {
	return zap.Error(err)
}

// Amount logs money as its exact decimal string
func Amount(key string, val decimal.Decimal) Field {
	return zap.String(key, val.StringFixed(2))
}

// Reference tags a log line with the transaction reference
func Reference(ref string) Field {
	return zap.String("reference", ref)
}

// AccountID tags a log line with a local account id
func AccountID(id int64) Field {
	return zap.Int64("account_id", id)
}

// TransactionID tags a log line with a persisted transaction id
func TransactionID(id int64) Field {
	return zap.Int64("transaction_id", id)
}

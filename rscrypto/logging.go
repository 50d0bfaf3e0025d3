package rscrypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/sirupsen/logrus"
)

// LoggerHelper accumulates the fields of one rscrypto operation.
type LoggerHelper struct {
	fields logrus.Fields
}

// NewLogger starts a logger for function.
func NewLogger(function string) *LoggerHelper {
	return &LoggerHelper{fields: logrus.Fields{
		"function": function,
		"package":  "rscrypto",
	}}
}

// WithField adds a field.
func (l *LoggerHelper) WithField(key string, value interface{}) *LoggerHelper {
	l.fields[key] = value
	return l
}

// WithError records err together with the failing step.
func (l *LoggerHelper) WithError(err error, errorType, operation string) *LoggerHelper {
	l.fields["error"] = err.Error()
	l.fields["error_type"] = errorType
	l.fields["operation"] = operation
	return l
}

func (l *LoggerHelper) entry() *logrus.Entry {
	return logrus.WithFields(l.fields)
}

// Debug logs at debug level.
func (l *LoggerHelper) Debug(message string) { l.entry().Debug(message) }

// Warn logs at warn level.
func (l *LoggerHelper) Warn(message string) { l.entry().Warn(message) }

// Error logs at error level.
func (l *LoggerHelper) Error(message string) { l.entry().Error(message) }

// SecureFieldHash describes a sensitive buffer for the log without exposing
// it: its size and a short SHA-256 fingerprint.
func SecureFieldHash(data []byte, name string) logrus.Fields {
	fingerprint := "nil"
	if data != nil {
		sum := sha256.Sum256(data)
		fingerprint = hex.EncodeToString(sum[:4])
	}
	return logrus.Fields{
		name + "_fingerprint": fingerprint,
		name + "_size":        len(data),
	}
}

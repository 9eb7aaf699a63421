package logger

import (
	"strings"

	"go.uber.org/zap"
)

// MaskEmail creates a zap field with the local part of the address masked,
// "john@email.com" logs as "j***@email.com".
func MaskEmail(key, email string) zap.Field {
	at := strings.Index(email, "@")
	if at <= 0 {
		return zap.String(key, "***")
	}
	return zap.String(key, email[:1]+"***"+email[at:])
}

// MaskPhone creates a zap field with all but the last four digits masked
func MaskPhone(key, phone string) zap.Field {
	if len(phone) <= 4 {
		return zap.String(key, "***")
	}
	return zap.String(key, strings.Repeat("*", len(phone)-4)+phone[len(phone)-4:])
}

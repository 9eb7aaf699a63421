package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyKeyHeader = "Idempotency-Key"
const idempotencyTTL = 24 * time.Hour

// IdempotencyMiddleware replays cached responses for repeated write requests
// carrying the same Idempotency-Key header. On a cache miss it runs the
// handler with a capturing writer and stores successful responses for later
// replay.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		hash := sha256.Sum256([]byte(key))
		cacheKey := "idempotency:" + hex.EncodeToString(hash[:])

		ctx := c.Request.Context()
		val, err := redisClient.Get(ctx, cacheKey).Result()
		if err == nil && val != "" {
			if status, body, ok := decodeIdempotentResponse(val); ok {
				c.Header("X-Idempotency-Key-Used", "true")
				c.Data(status, "application/json", body)
				c.Abort()
				return
			}
		}

		capture := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			encoded := encodeIdempotentResponse(status, capture.body.Bytes())
			redisClient.Set(ctx, cacheKey, encoded, idempotencyTTL)
		}
	}
}

// captureWriter tees the response body so the middleware can cache it after
// the handler runs
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cached responses are stored as "<status>\n<body>".

func encodeIdempotentResponse(status int, body []byte) string {
	return strconv.Itoa(status) + "\n" + string(body)
}

func decodeIdempotentResponse(val string) (int, []byte, bool) {
	sep := strings.IndexByte(val, '\n')
	if sep < 0 {
		return 0, nil, false
	}
	status, err := strconv.Atoi(val[:sep])
	if err != nil || status < 100 || status > 599 {
		return 0, nil, false
	}
	return status, []byte(val[sep+1:]), true
}

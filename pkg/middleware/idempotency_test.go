package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCaptureWriterTeesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	capture := &captureWriter{ResponseWriter: c.Writer}
	c.Writer = capture

	c.JSON(http.StatusCreated, gin.H{"id": 1})

	if recorder.Code != http.StatusCreated {
		t.Errorf("expected 201 through to the client, got %d", recorder.Code)
	}
	if capture.body.String() != recorder.Body.String() {
		t.Errorf("captured body %q differs from sent body %q", capture.body.String(), recorder.Body.String())
	}
	if capture.body.Len() == 0 {
		t.Error("expected a non-empty captured body")
	}
}

func TestIdempotentResponseRoundTrip(t *testing.T) {
	body := []byte(`{"id":42}`)
	encoded := encodeIdempotentResponse(http.StatusCreated, body)

	status, decoded, ok := decodeIdempotentResponse(encoded)
	if !ok {
		t.Fatal("expected the encoded response to decode")
	}
	if status != http.StatusCreated {
		t.Errorf("expected status 201, got %d", status)
	}
	if string(decoded) != string(body) {
		t.Errorf("expected body %q, got %q", body, decoded)
	}
}

func TestDecodeIdempotentResponseRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"no separator",
		"abc\n{}",
		"9000\n{}",
	}
	for _, val := range cases {
		if _, _, ok := decodeIdempotentResponse(val); ok {
			t.Errorf("expected %q to be rejected", val)
		}
	}
}

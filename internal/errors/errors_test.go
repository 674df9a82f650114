package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCreation(t *testing.T) {
	err := New("test", "test message", nil, http.StatusBadRequest)
	assert.Equal(t, "test", err.Type)
	assert.Equal(t, "test message", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "test: test message", err.Error())

	cause := fmt.Errorf("original error")
	err = New("test", "test with cause", cause, http.StatusInternalServerError)
	assert.Same(t, cause, err.Cause)
	assert.Equal(t, "test: test with cause: original error", err.Error())
}

func TestWrapPreservesAppErrorType(t *testing.T) {
	appErr := New(ErrTypeStoreOpen, "open failed", nil, http.StatusInternalServerError)
	rewrapped := Wrap(appErr, "ignored", "new message", http.StatusBadRequest)

	assert.Equal(t, ErrTypeStoreOpen, rewrapped.Type)
	assert.Equal(t, "new message", rewrapped.Message)
	assert.Equal(t, http.StatusInternalServerError, rewrapped.Code)
	assert.Nil(t, Wrap(nil, "x", "y", http.StatusOK))
}

func TestErrorTypeChecking(t *testing.T) {
	openErr := StoreOpenFailed("IODeviceTree:/options", nil)
	typeErr := PropertyTypeMismatch("csr-active-config", "string")

	assert.True(t, Is(openErr, ErrTypeStoreOpen))
	assert.False(t, Is(openErr, ErrTypePropertyType))
	assert.True(t, Is(typeErr, ErrTypePropertyType))
	assert.Equal(t, "unknown", GetType(fmt.Errorf("standard error")))
	assert.Equal(t, "", GetType(nil))
	assert.Contains(t, typeErr.Error(), "unexpected data type")

	assert.Equal(t, http.StatusNotFound, GetCode(PropertyAbsent("csr-active-config")))
	assert.Equal(t, http.StatusOK, GetCode(nil))
	assert.Equal(t, http.StatusInternalServerError, GetCode(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("context: %w", openErr)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Same(t, openErr, appErr)
}

func TestErrorUnwrapping(t *testing.T) {
	innermost := fmt.Errorf("innermost error")
	inner := Wrap(innermost, "inner", "inner error", http.StatusBadRequest)
	outer := Wrap(inner, "outer", "outer error", http.StatusInternalServerError)

	assert.Equal(t, inner.Cause, outer.Unwrap())
	assert.ErrorIs(t, outer, innermost)
}

func TestBenign(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"platform", PlatformUnsupported("10.10", nil), true},
		{"capability", CapabilityUnavailable("csr_check", nil), true},
		{"absent", PropertyAbsent("csr-active-config"), true},
		{"open", StoreOpenFailed("IODeviceTree:/options", nil), false},
		{"fetch", PropertyFetchFailed("IODeviceTree:/options", nil), false},
		{"plain", fmt.Errorf("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Benign(tt.err))
		})
	}
}

func TestJoinErrors(t *testing.T) {
	err1 := fmt.Errorf("error 1")
	err2 := fmt.Errorf("error 2")

	assert.Equal(t, err1, JoinErrors(err1))
	assert.Nil(t, JoinErrors(nil, nil))

	joined := JoinErrors(err1, err2)
	require.Error(t, joined)
	assert.Contains(t, joined.Error(), "error 1; error 2")
	assert.Equal(t, ErrTypeInternal, GetType(joined))
}

func TestFormatErrorChain(t *testing.T) {
	err := PropertyFetchFailed("IODeviceTree:/options", fmt.Errorf("kern return 0x10000003"))
	out := FormatErrorChain(err)
	assert.Contains(t, out, "Stack Trace:")
	assert.Contains(t, out, "Caused by: kern return 0x10000003")
	assert.Equal(t, "<nil>", FormatErrorChain(nil))
}

func TestErrResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryMiddleware(), ErrorHandlerMiddleware())
	router.GET("/missing", func(c *gin.Context) {
		Err(c, NotFound("flag", nil))
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"not_found"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "panic recovered")
}

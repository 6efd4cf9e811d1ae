package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/okuznetsov/battleship-go/internal/testutil"
)

type MiddlewareSuite struct {
	suite.Suite
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) TestStatusWriterCapturesStatus() {
	handler := Logging(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sw, ok := w.(*StatusWriter)
		s.Require().True(ok)
		w.WriteHeader(http.StatusTeapot)
		s.Equal(http.StatusTeapot, sw.Status())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.Equal(http.StatusTeapot, rec.Code)
}

func (s *MiddlewareSuite) TestRecoveryTurnsPanicInto500() {
	handler := Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	s.NotPanics(func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	})
	s.Equal(http.StatusInternalServerError, rec.Code)
}

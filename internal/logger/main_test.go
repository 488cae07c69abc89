package logger_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Every writer's auto-flush goroutine must exit when its router or
// writer is closed.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

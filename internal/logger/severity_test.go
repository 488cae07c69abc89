package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarvinen/loghub/internal/logger"
)

func TestParseSeverity(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    logger.Severity
		wantErr bool
	}{
		{name: "debug", input: "debug", want: logger.SeverityDebug},
		{name: "info", input: "info", want: logger.SeverityInfo},
		{name: "warning", input: "warning", want: logger.SeverityWarning},
		{name: "warn alias", input: "warn", want: logger.SeverityWarning},
		{name: "error", input: "error", want: logger.SeverityError},
		{name: "critical", input: "critical", want: logger.SeverityCritical},
		{name: "upper case", input: "ERROR", want: logger.SeverityError},
		{name: "mixed case", input: "Info", want: logger.SeverityInfo},
		{name: "surrounding space", input: " info ", want: logger.SeverityInfo},
		{name: "unknown", input: "verbose", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := logger.ParseSeverity(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown log level")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	assert.Less(t, logger.SeverityDebug, logger.SeverityInfo)
	assert.Less(t, logger.SeverityInfo, logger.SeverityWarning)
	assert.Less(t, logger.SeverityWarning, logger.SeverityError)
	assert.Less(t, logger.SeverityError, logger.SeverityCritical)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "DEBUG", logger.SeverityDebug.String())
	assert.Equal(t, "INFO", logger.SeverityInfo.String())
	assert.Equal(t, "WARNING", logger.SeverityWarning.String())
	assert.Equal(t, "ERROR", logger.SeverityError.String())
	assert.Equal(t, "CRITICAL", logger.SeverityCritical.String())
}

package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noXSSProbe struct {
	Value string `validate:"no_xss"`
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()
	require.NotNil(t, Validate)

	clean := []string{
		"Broken hand pump near the temple",
		"Water supply interrupted since Monday",
		"",
	}
	for _, value := range clean {
		assert.NoError(t, Validate.Struct(noXSSProbe{Value: value}), "value %q should pass", value)
	}

	dangerous := []string{
		"<script>alert(1)</script>",
		"click javascript:void(0)",
		"<img src=x onerror=alert(1)>",
		"<IFRAME src=//evil>",
		"eval(window.name)",
	}
	for _, value := range dangerous {
		assert.Error(t, Validate.Struct(noXSSProbe{Value: value}), "value %q should be rejected", value)
	}
}

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cliconfig"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "connection",
			err:  &apiclient.APIError{Code: apiclient.CodeConnectionError, Message: "connection refused"},
			want: "Check that the TestHub backend is running",
		},
		{
			name: "timeout",
			err:  &apiclient.APIError{Code: apiclient.CodeTimeout, Message: "deadline exceeded"},
			want: "--timeout",
		},
		{
			name: "unauthorized",
			err:  &apiclient.APIError{Code: apiclient.CodeHTTPError, StatusCode: 403},
			want: "TESTHUB_TOKEN",
		},
		{
			name: "config",
			err:  fmt.Errorf("%w: base_url", cliconfig.ErrInvalidConfig),
			want: "testhub config init",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, FormatError(tt.err), tt.want)
		})
	}

	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))
}

package cli

import (
	"errors"
	"fmt"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/cliconfig"
	"github.com/testhub/testhub-go/pkg/testhub"
)

// FormatError renders err for the terminal, with suggestions for the
// failures users can usually fix themselves.
func FormatError(err error) string {
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Code == apiclient.CodeConnectionError:
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Check that the TestHub backend is running
  • Verify the base URL with: testhub config show
  • Override it with --base-url or TESTHUB_BASE_URL`, apiErr.Message)
	case errors.Is(err, apiclient.ErrTimeout):
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Raise the default with --timeout (long-running endpoints have their own limit)`, err)
	case errors.Is(err, apiclient.ErrUnauthorized):
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Provide a token with --token, TESTHUB_TOKEN or token_file in the config`, err)
	case errors.Is(err, testhub.ErrInvalidEndpoint):
		return fmt.Sprintf(`Error: %s

Suggestions:
  • List endpoint names with: testhub endpoints`, err)
	case errors.Is(err, cliconfig.ErrInvalidConfig), errors.Is(err, cliconfig.ErrLoadConfig):
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Create a starter file with: testhub config init`, err)
	}
	return "Error: " + err.Error()
}

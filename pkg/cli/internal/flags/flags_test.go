package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice(t *testing.T) {
	var params StringSlice
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&params, "param", "")

	require.NoError(t, fs.Parse([]string{"--param", "tags=a,b", "--param", "page=2"}))
	assert.Equal(t, StringSlice{"tags=a,b", "page=2"}, params)

	var sv pflag.SliceValue = &params
	require.NoError(t, sv.Replace(nil))
	assert.Empty(t, sv.GetSlice())
	require.NoError(t, sv.Append("x=1"))
	assert.Equal(t, []string{"x=1"}, sv.GetSlice())
	assert.Equal(t, "key=value", params.Type())
}

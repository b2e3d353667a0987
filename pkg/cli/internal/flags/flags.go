// Package flags provides reusable flag types for CLI commands.
package flags

import "strings"

// StringSlice implements pflag.Value for repeatable flags such as
// --param page=2 --param status=failed. Unlike cobra's StringSlice it does
// not split on commas, so values may contain them.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *StringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "key=value"
}

// Replace implements pflag.SliceValue.
func (s *StringSlice) Replace(values []string) error {
	*s = append((*s)[:0], values...)
	return nil
}

// Append implements pflag.SliceValue.
func (s *StringSlice) Append(value string) error {
	return s.Set(value)
}

// GetSlice implements pflag.SliceValue.
func (s *StringSlice) GetSlice() []string {
	return append([]string(nil), *s...)
}

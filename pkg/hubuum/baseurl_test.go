package hubuum_test

import (
	"errors"
	"testing"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "https",
			input:    "https://hubuum.example.com",
			expected: "https://hubuum.example.com/",
		},
		{
			name:     "http with port",
			input:    "http://localhost:8080",
			expected: "http://localhost:8080/",
		},
		{
			name:     "trailing slash kept single",
			input:    "https://hubuum.example.com/",
			expected: "https://hubuum.example.com/",
		},
		{
			name:     "path prefix",
			input:    "https://hubuum.example.com/hubuum",
			expected: "https://hubuum.example.com/hubuum/",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			base, err := hubuum.ParseBaseURL(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, base.String())
		})
	}
}

func TestParseBaseURL_RejectsNonHTTPSchemes(t *testing.T) {
	t.Parallel()

	_, err := hubuum.ParseBaseURL("ftp://hubuum.example.com")
	require.Error(t, err)

	var schemeErr *hubuum.InvalidSchemeError

	require.ErrorAs(t, err, &schemeErr)
	assert.Equal(t, "ftp", schemeErr.Scheme)
}

func TestParseBaseURL_RejectsNonBaseURLs(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"mailto:admin@example.com", "https://"} {
		_, err := hubuum.ParseBaseURL(input)
		assert.True(t, errors.Is(err, hubuum.ErrURLNotBase), "input %q", input)
	}
}

func TestBaseURL_JoinPath(t *testing.T) {
	t.Parallel()

	base, err := hubuum.ParseBaseURL("https://hubuum.example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://hubuum.example.com/api/v1/classes/", base.JoinPath("/api/v1/classes/"))
	assert.Equal(t, "https://hubuum.example.com/api/v1/classes/", base.JoinPath("api/v1/classes/"))
}

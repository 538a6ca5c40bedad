package main

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCookieEncode(t *testing.T) {
	out, err := runCmd(t, "cookie", "encode",
		"--theme", "simple", "--colorscheme", "nord",
		"--safe-search", "2", "--engines", "Bing,Brave")
	require.NoError(t, err)
	assert.Equal(t,
		`{"theme":"simple","colorscheme":"nord","safe_search_level":2,"engines":["Bing","Brave"]}`,
		strings.TrimSpace(out))
}

func TestCookieEncodeWithoutSafeSearch(t *testing.T) {
	out, err := runCmd(t, "cookie", "encode", "--theme", "simple")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"simple","colorscheme":"","engines":[]}`, strings.TrimSpace(out))
}

func TestCookieEncodeRejectsBadLevel(t *testing.T) {
	_, err := runCmd(t, "cookie", "encode", "--safe-search", "5")
	assert.Error(t, err)
}

func TestCookieDecode(t *testing.T) {
	value := `{"theme":"simple","colorscheme":"nord","engines":["Bing"]}`

	tests := []struct {
		name string
		arg  string
	}{
		{name: "bare value", arg: value},
		{name: "escaped value", arg: url.QueryEscape(value)},
		{name: "cookie header", arg: "other=1; appCookie=" + value},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, "cookie", "decode", tt.arg)
			require.NoError(t, err)
			assert.Contains(t, out, `"colorscheme": "nord"`)
			assert.Contains(t, out, `"Bing"`)
		})
	}
}

func TestCookieDecodeErrors(t *testing.T) {
	_, err := runCmd(t, "cookie", "decode", "other=1")
	assert.ErrorContains(t, err, "no appCookie cookie")

	_, err = runCmd(t, "cookie", "decode", `{"theme":`)
	assert.Error(t, err)

	_, err = runCmd(t, "cookie", "--name", "prefs", "decode", `prefs={"safe_search_level":9}`)
	assert.Error(t, err)
}

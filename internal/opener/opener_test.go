// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opener

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records launches and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	startErr      error
	started       []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Start(name string, args ...string) error {
	m.started = append(m.started, name+" "+strings.Join(args, " "))
	return m.startErr
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Planilha.ods")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	tests := []struct {
		goos string
		bin  string
		want string
	}{
		{goos: "linux", bin: "xdg-open", want: "xdg-open " + path},
		{goos: "freebsd", bin: "xdg-open", want: "xdg-open " + path},
		{goos: "darwin", bin: "open", want: "open " + path},
		{goos: "windows", bin: "cmd", want: "cmd /c start  " + path},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			m := &mockExecutor{availableBins: map[string]bool{tt.bin: true}}
			o := &Opener{goos: tt.goos, exec: m}

			assert.Equal(t, tt.bin, o.Launcher())
			require.NoError(t, o.Open(path))
			assert.Equal(t, []string{tt.want}, m.started)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "Planilha.ods")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	tests := []struct {
		name        string
		path        string
		exec        *mockExecutor
		wantStarted bool
	}{
		{
			name: "missing file",
			path: filepath.Join(t.TempDir(), "gone.ods"),
			exec: &mockExecutor{availableBins: map[string]bool{"xdg-open": true}},
		},
		{
			name: "launcher not installed",
			path: existing,
			exec: &mockExecutor{availableBins: map[string]bool{}},
		},
		{
			name:        "launch fails",
			path:        existing,
			exec:        &mockExecutor{availableBins: map[string]bool{"xdg-open": true}, startErr: errors.New("boom")},
			wantStarted: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Opener{goos: "linux", exec: tt.exec}
			require.Error(t, o.Open(tt.path))
			assert.Equal(t, tt.wantStarted, len(tt.exec.started) > 0)
		})
	}
}

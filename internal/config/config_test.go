package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	base := Default()
	base.SelectMode = []string{SelectModeMouse}

	tests := []struct {
		args    string
		want    func(Options) bool
		wantErr error
	}{
		{args: "selectmode=cmd", want: func(o Options) bool { return len(o.SelectMode) == 1 && o.HasSelectMode(SelectModeCmd) }},
		{args: "slm=cmd,key", want: func(o Options) bool { return o.HasSelectMode(SelectModeCmd) && o.HasSelectMode(SelectModeKey) }},
		{args: "selectmode+=cmd", want: func(o Options) bool { return o.HasSelectMode(SelectModeMouse) && o.HasSelectMode(SelectModeCmd) }},
		{args: "selectmode-=mouse", want: func(o Options) bool { return len(o.SelectMode) == 0 }},
		{args: "selectmode=", want: func(o Options) bool { return len(o.SelectMode) == 0 }},
		{args: "octopushandler", want: func(o Options) bool { return o.OctopusHandler }},
		{args: "octopushandler nooctopushandler", want: func(o Options) bool { return !o.OctopusHandler }},
		{args: "invoctopushandler", want: func(o Options) bool { return o.OctopusHandler }},
		{args: "octopushandler!", want: func(o Options) bool { return o.OctopusHandler }},
		{args: "ts=4 selectmode=cmd", want: func(o Options) bool { return o.TabWidth == 4 && o.HasSelectMode(SelectModeCmd) }},
		{args: "selectmode=bogus", wantErr: ErrInvalidValue},
		{args: "tabstop=0", wantErr: ErrInvalidValue},
		{args: "tabstop=x", wantErr: ErrInvalidValue},
		{args: "tabstop", wantErr: ErrInvalidValue},
		{args: "octopushandler=1", wantErr: ErrInvalidValue},
		{args: "wrapscan", wantErr: ErrUnknownOption},
		{args: "nowrapscan", wantErr: ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			got, err := ParseSet(base, tt.args)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want(got), "got %s", got)
		})
	}

	assert.Equal(t, []string{SelectModeMouse}, base.SelectMode, "base must not change")
}

func TestStoreObservers(t *testing.T) {
	s := NewStore(Default())

	var calls []Options
	remove := s.OnChange(func(_, next Options) { calls = append(calls, next) })

	require.NoError(t, s.Apply("selectmode=cmd"))
	assert.True(t, s.Get().HasSelectMode(SelectModeCmd))
	require.Len(t, calls, 1)
	assert.True(t, calls[0].HasSelectMode(SelectModeCmd))

	require.ErrorIs(t, s.Apply("tabstop=99"), ErrInvalidValue)
	assert.Len(t, calls, 1)
	assert.Equal(t, 8, s.Get().TabWidth)

	remove()
	require.NoError(t, s.Apply("selectmode="))
	assert.Len(t, calls, 1)
	assert.False(t, s.Get().HasSelectMode(SelectModeCmd))
}

func TestStoreGetIsACopy(t *testing.T) {
	s := NewStore(Options{SelectMode: []string{SelectModeCmd}, TabWidth: 8})
	got := s.Get()
	got.SelectMode[0] = SelectModeKey
	assert.True(t, s.Get().HasSelectMode(SelectModeCmd))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "vimode.toml")
	writeFile(t, tomlPath, "selectmode = \"cmd,key\"\noctopushandler = true\ntabstop = 4\n")
	opts, err := Load(tomlPath, Default())
	require.NoError(t, err)
	assert.Equal(t, []string{SelectModeCmd, SelectModeKey}, opts.SelectMode)
	assert.True(t, opts.OctopusHandler)
	assert.Equal(t, 4, opts.TabWidth)
	assert.Equal(t, "info", opts.LogLevel)

	yamlPath := filepath.Join(dir, "vimode.yaml")
	writeFile(t, yamlPath, "selectmode: cmd\nloglevel: debug\n")
	opts, err = Load(yamlPath, Default())
	require.NoError(t, err)
	assert.Equal(t, []string{SelectModeCmd}, opts.SelectMode)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, 8, opts.TabWidth)

	badPath := filepath.Join(dir, "bad.toml")
	writeFile(t, badPath, "selectmode = [")
	_, err = Load(badPath, Default())
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, badPath, perr.Path)

	invalidPath := filepath.Join(dir, "invalid.yml")
	writeFile(t, invalidPath, "tabstop: 100\n")
	_, err = Load(invalidPath, Default())
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Load(filepath.Join(dir, "vimode.ini"), Default())
	require.Error(t, err)

	_, err = Parse("vimode.ini", nil, Default())
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("VIMODE_SELECTMODE", "cmd")
	t.Setenv("VIMODE_OCTOPUSHANDLER", "true")
	t.Setenv("VIMODE_TABSTOP", "2")

	opts, err := LoadEnv(Default())
	require.NoError(t, err)
	assert.True(t, opts.HasSelectMode(SelectModeCmd))
	assert.True(t, opts.OctopusHandler)
	assert.Equal(t, 2, opts.TabWidth)

	t.Setenv("VIMODE_TABSTOP", "two")
	_, err = LoadEnv(Default())
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vimode.toml")
	writeFile(t, path, "tabstop = 8\n")

	store := NewStore(Default())
	var mu sync.Mutex
	var errs []error
	w, err := Watch(path, Default(), store, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	})
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "selectmode = \"cmd\"\ntabstop = 4\n")
	require.Eventually(t, func() bool {
		o := store.Get()
		return o.HasSelectMode(SelectModeCmd) && o.TabWidth == 4
	}, 5*time.Second, 10*time.Millisecond)

	writeFile(t, path, "tabstop = 0\n")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range errs {
			if errors.Is(e, ErrInvalidValue) {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, store.Get().TabWidth, 1)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

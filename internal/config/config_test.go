package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/bobbot/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Load_Defaults_When_No_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := config.Load(config.Input{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.EffectiveCwd)
	assert.Equal(t, filepath.Join(dir, ".bob", "tasks.txt"), cfg.DataFileAbs)
	assert.True(t, cfg.Save)
	assert.Empty(t, cfg.HistoryFileAbs)
	assert.Equal(t, log.WarnLevel, cfg.Level())
	assert.Empty(t, cfg.Sources.Global)
	assert.Empty(t, cfg.Sources.Project)
}

func Test_Load_Project_File_With_Comments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{
		// keep tasks next to the notes
		"data_file": "notes/tasks.txt",
		"history_file": ".bob_history",
		"save": false,
	}`)

	cfg, err := config.Load(config.Input{WorkDirOverride: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "notes", "tasks.txt"), cfg.DataFileAbs)
	assert.Equal(t, filepath.Join(dir, ".bob_history"), cfg.HistoryFileAbs)
	assert.False(t, cfg.Save)
	assert.Equal(t, filepath.Join(dir, config.FileName), cfg.Sources.Project)
}

func Test_Load_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	writeFile(t, filepath.Join(xdg, "bob", "config.json"), `{"data_file": "/global/tasks.txt", "log_level": "debug"}`)
	writeFile(t, filepath.Join(dir, config.FileName), `{"data_file": "project.txt"}`)

	env := map[string]string{"XDG_CONFIG_HOME": xdg}

	cfg, err := config.Load(config.Input{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "project.txt"), cfg.DataFileAbs)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, filepath.Join(xdg, "bob", "config.json"), cfg.Sources.Global)

	override := "/abs/cli.txt"

	cfg, err = config.Load(config.Input{
		WorkDirOverride:  dir,
		Env:              env,
		DataFileOverride: &override,
		NoSave:           true,
		LogLevelOverride: "error",
	})
	require.NoError(t, err)
	assert.Equal(t, override, cfg.DataFileAbs)
	assert.False(t, cfg.Save)
	assert.Equal(t, log.ErrorLevel, cfg.Level())
}

func Test_Load_Global_From_Home(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "bob", "config.json"), `{"save": false}`)

	cfg, err := config.Load(config.Input{WorkDirOverride: t.TempDir(), Env: map[string]string{"HOME": home}})
	require.NoError(t, err)
	assert.False(t, cfg.Save)
}

func Test_Load_Explicit_Config(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"data_file": "ignored.txt"}`)
	writeFile(t, filepath.Join(dir, "custom.json"), `{"data_file": "custom.txt"}`)

	cfg, err := config.Load(config.Input{WorkDirOverride: dir, ConfigPath: "custom.json"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom.txt"), cfg.DataFileAbs)
	assert.Equal(t, filepath.Join(dir, "custom.json"), cfg.Sources.Project)
}

func Test_Load_Errors(t *testing.T) {
	t.Parallel()

	empty := ""

	tests := []struct {
		name    string
		project string
		input   config.Input
		wantErr error
	}{
		{name: "explicit missing", input: config.Input{ConfigPath: "nope.json"}, wantErr: config.ErrConfigFileNotFound},
		{name: "bad jsonc", project: `{"data_file": `, wantErr: config.ErrConfigInvalid},
		{name: "wrong type", project: `{"save": "yes"}`, wantErr: config.ErrConfigInvalid},
		{name: "empty data file in file", project: `{"data_file": ""}`, wantErr: config.ErrDataFileEmpty},
		{name: "empty data file flag", input: config.Input{DataFileOverride: &empty}, wantErr: config.ErrDataFileEmpty},
		{name: "bad log level", project: `{"log_level": "loud"}`, wantErr: config.ErrInvalidLogLevel},
		{name: "bad log level flag", input: config.Input{LogLevelOverride: "loud"}, wantErr: config.ErrInvalidLogLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tc.project != "" {
				writeFile(t, filepath.Join(dir, config.FileName), tc.project)
			}

			input := tc.input
			input.WorkDirOverride = dir

			_, err := config.Load(input)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

package cmd

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/units"
	"github.com/phil-mansfield/rhoprof/version"
)

func TestExampleFiles(t *testing.T) {
	tests := []Mode{&GlobalConfig{}}
	for _, name := range []string{
		"uniform", "evrard", "polytrope", "piecewise", "bonnor-ebert",
		"mass", "check",
	} {
		tests = append(tests, ModeNames[name])
	}

	for i := range tests {
		mode := tests[i]
		f, err := ioutil.TempFile("", "rhoprof_config_test")
		if err != nil {
			panic(err.Error())
		}
		defer os.Remove(f.Name())

		if _, err = f.Write([]byte(mode.ExampleConfig())); err != nil {
			panic(err.Error())
		}
		if err = f.Close(); err != nil {
			panic(err.Error())
		}

		err = mode.ReadConfig(f.Name(), nil)
		if err != nil {
			t.Errorf("%d) Got error when parsing config file:\n%s",
				i, err.Error())
		}
	}
}

func TestGlobalConfigDefaults(t *testing.T) {
	config := &GlobalConfig{}
	require.NoError(t, config.ReadConfig("", nil))
	require.Equal(t, "", config.OutputDir)
	require.Equal(t, logging.Nil, config.LogMode)
	require.False(t, config.Plot)
	require.Equal(t, units.System{Mass: 1, Length: 1}, config.System)
}

func TestGlobalConfigFile(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "global.yaml")
	text := `log: debug
output_dir: ` + dir + `
units:
  mass: msun
  length: au
`
	require.NoError(t, ioutil.WriteFile(fname, []byte(text), 0644))

	config := &GlobalConfig{}
	require.NoError(t, config.ReadConfig(fname, nil))
	require.Equal(t, logging.Debug, config.LogMode)
	require.Equal(t, dir, config.OutputDir)
	require.Equal(t, units.MSunCGS, config.System.Mass)
	require.Equal(t, units.AUCGS, config.System.Length)

	// Flags take precedence over the file.
	require.NoError(t, config.ReadConfig(fname,
		[]string{"--log=performance", "--units.mass=g"}))
	require.Equal(t, logging.Performance, config.LogMode)
	require.Equal(t, 1.0, config.System.Mass)
}

func TestGlobalConfigEnv(t *testing.T) {
	t.Setenv("RHOPROF_LOG", "debug")
	t.Setenv("RHOPROF_UNITS_LENGTH", "pc")

	config := &GlobalConfig{}
	require.NoError(t, config.ReadConfig("", nil))
	require.Equal(t, logging.Debug, config.LogMode)
	require.Equal(t, units.PcCGS, config.System.Length)
}

func TestGlobalConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"--version=9.0.0"},
		{"--version=1.2"},
		{"--log=verbose"},
		{"--units.mass=stone"},
		{"--output_dir=" + path.Join(dir, "missing")},
		{"output_dir"},
		{"--plot=true"},
	}

	for i := range tests {
		config := &GlobalConfig{}
		if err := config.ReadConfig("", tests[i]); err == nil {
			t.Errorf("%d) Expected error for flags %v.", i, tests[i])
		}
	}

	config := &GlobalConfig{}
	require.Error(t, config.ReadConfig(path.Join(dir, "missing.yaml"), nil))
}

func TestGlobalConfigLaterPatch(t *testing.T) {
	src, err := version.Parse(version.SourceVersion)
	require.NoError(t, err)

	config := &GlobalConfig{}
	require.NoError(t, config.ReadConfig("", nil))
	require.False(t, config.FromLaterPatch())

	next := version.Version{Major: src.Major, Minor: src.Minor,
		Patch: src.Patch + 1}
	require.NoError(t, config.ReadConfig("",
		[]string{"--version=" + next.String()}))
	require.True(t, config.FromLaterPatch())
}

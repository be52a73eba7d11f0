package cmd

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/rhoprof/bonnorebert"
	"github.com/phil-mansfield/rhoprof/cmd/catalog"
	"github.com/phil-mansfield/rhoprof/profile"
)

func globalConfig(t *testing.T) (*GlobalConfig, string) {
	dir := t.TempDir()
	config := &GlobalConfig{}
	require.NoError(t, config.ReadConfig("", []string{"--output_dir=" + dir}))
	return config, dir
}

func runMode(
	t *testing.T, mode Mode, gConfig *GlobalConfig,
	flags, stdin []string,
) []string {
	require.NoError(t, mode.ReadConfig("", flags))
	lines, err := mode.Run(gConfig, stdin)
	require.NoError(t, err)
	return lines
}

func TestUniformRun(t *testing.T) {
	gConfig, dir := globalConfig(t)
	lines := runMode(t, &UniformConfig{}, gConfig,
		[]string{"--Npts=10", "--Mass=2", "--Radius=1"}, nil)

	require.Len(t, lines, 11)
	require.Equal(t, "# Column contents: r(0) rho(1) M(2)", lines[0])

	cols, err := catalog.ParseLines(lines, []int{0, 2})
	require.NoError(t, err)
	require.InDelta(t, 1, cols[0][9], 1e-9)
	require.InDelta(t, 2, cols[1][9], 1e-9)

	s, err := ReadSummary(path.Join(dir, "uniform.yaml"))
	require.NoError(t, err)
	require.Equal(t, "uniform", s.Mode)
	require.Equal(t, 10, s.Npts)
	require.Equal(t, 2.0, s.Mass)
	require.Equal(t, 2.0*gConfig.System.Mass, s.CGS.Mass)
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	gConfig := &GlobalConfig{}
	require.NoError(t, gConfig.ReadConfig("",
		[]string{"--output_dir=" + dir, "--plot=true"}))
	require.True(t, gConfig.Plot)

	runMode(t, &UniformConfig{}, gConfig, []string{"--Npts=50"}, nil)
	info, err := os.Stat(path.Join(dir, "uniform.png"))
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestEvrardRun(t *testing.T) {
	gConfig, dir := globalConfig(t)
	lines := runMode(t, &EvrardConfig{}, gConfig, []string{"--Npts=100"}, nil)
	require.Len(t, lines, 101)

	cols, err := catalog.ParseLines(lines, []int{0, 1})
	require.NoError(t, err)
	for i := range cols[0] {
		// rho r = M / (2 pi R^2)
		require.InEpsilon(t, 1/(2*3.141592653589793),
			cols[0][i]*cols[1][i], 1e-8)
	}

	s, err := ReadSummary(path.Join(dir, "evrard.yaml"))
	require.NoError(t, err)
	require.Equal(t, 0.0, s.CentralDensity)
}

func TestClosedInvalid(t *testing.T) {
	for _, flag := range []string{"--Npts=0", "--Mass=-1", "--Radius=0",
		"--Npts=ten", "--Height=1"} {
		require.Error(t, (&UniformConfig{}).ReadConfig("", []string{flag}),
			flag)
	}
}

func TestPolytropeRun(t *testing.T) {
	gConfig, dir := globalConfig(t)
	lines := runMode(t, &PolytropeConfig{}, gConfig, nil, nil)
	require.Equal(t, "# Column contents: r(0) rho(1) M(2) P(3)", lines[0])

	cols, err := catalog.ParseLines(lines, []int{0, 2})
	require.NoError(t, err)
	n := len(cols[0])
	require.InDelta(t, 1, cols[1][n-1], 1e-8)

	s, err := ReadSummary(path.Join(dir, "polytrope.yaml"))
	require.NoError(t, err)
	require.Equal(t, n, s.Npts)
	require.Equal(t, 1.0, s.Values["K"])
	require.InDelta(t, cols[0][n-1], s.Radius, 1e-8*s.Radius)

	// The output of one mode can be checked by the check mode.
	out := runMode(t, &CheckConfig{}, gConfig, nil, lines[1:])
	require.Len(t, out, 2)
	res, err := catalog.ParseLines(out, []int{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, float64(n), res[0][0])
	require.InDelta(t, 1, res[1][0], 1e-8)
	require.InDelta(t, 1, res[3][0], 1e-3)
	require.Less(t, res[4][0], 1e-3)
	require.Less(t, res[5][0], 5e-3)
	require.GreaterOrEqual(t, res[5][0], 0.0)

	_, err = os.Stat(path.Join(dir, "check.yaml"))
	require.NoError(t, err)
}

func TestPolytropeInvalid(t *testing.T) {
	mode := &PolytropeConfig{}
	require.Error(t, mode.ReadConfig("", []string{"--Npts=2"}))
	require.Error(t, mode.ReadConfig("", []string{"--Doublings=-1"}))

	gConfig, _ := globalConfig(t)
	require.NoError(t, mode.ReadConfig("", []string{"--Gamma=1.3333333333333333"}))
	_, err := mode.Run(gConfig, nil)
	require.True(t, errors.Is(err, profile.ErrBadParameter))
}

func TestPiecewiseRun(t *testing.T) {
	gConfig, dir := globalConfig(t)
	runMode(t, &PiecewiseConfig{}, gConfig,
		[]string{"--Gammas=1.6666666666666667", "--Mass=1"}, nil)

	s, err := ReadSummary(path.Join(dir, "piecewise.yaml"))
	require.NoError(t, err)
	require.Equal(t, 1.0, s.Mass)
	require.Greater(t, s.Radius, 0.0)
	require.Greater(t, s.CentralDensity, 0.0)
	require.Greater(t, s.Values["iterations"], 0.0)

	mode := &PiecewiseConfig{}
	require.NoError(t, mode.ReadConfig("", []string{"--Gammas=1.6, 1.4"}))
	_, err = mode.Run(gConfig, nil)
	require.True(t, errors.Is(err, profile.ErrBadParameter))

	require.Error(t, mode.ReadConfig("", []string{"--Iterations=0"}))
	require.Error(t, mode.ReadConfig("", []string{"--StepSize=-1"}))
}

func TestBonnorEbertRun(t *testing.T) {
	gConfig, dir := globalConfig(t)
	lines := runMode(t, &BonnorEbertConfig{}, gConfig,
		[]string{"--CentralDensity=1", "--Xi=7"}, nil)
	require.Greater(t, len(lines), 1)

	s, err := ReadSummary(path.Join(dir, "bonnor-ebert.yaml"))
	require.NoError(t, err)
	require.Equal(t, 1.0, s.CentralDensity)
	require.Greater(t, s.Values["contrast"], bonnorebert.CriticalContrast)
	require.Equal(t, 1.0, s.Values["sound_speed"])
	require.Equal(t, len(lines)-1, s.Npts)

	bs, err := os.ReadFile(path.Join(dir, bonnorebert.ArtifactName))
	require.NoError(t, err)
	require.NotEmpty(t, bs)
}

func TestBonnorEbertStable(t *testing.T) {
	gConfig, dir := globalConfig(t)
	mode := &BonnorEbertConfig{}
	require.NoError(t, mode.ReadConfig("",
		[]string{"--CentralDensity=1", "--Xi=3"}))

	_, err := mode.Run(gConfig, nil)
	require.True(t, errors.Is(err, profile.ErrStable))

	// The table is still written so that the sphere can be inspected.
	_, err = os.Stat(path.Join(dir, bonnorebert.ArtifactName))
	require.NoError(t, err)
	_, err = os.Stat(path.Join(dir, "bonnor-ebert.yaml"))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, mode.ReadConfig("",
		[]string{"--CentralDensity=1", "--Xi=3", "--Override=true"}))
	_, err = mode.Run(gConfig, nil)
	require.NoError(t, err)
}

func chdir(t *testing.T, dir string) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestBonnorEbertDefaultArtifact(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	gConfig := &GlobalConfig{}
	require.NoError(t, gConfig.ReadConfig("", nil))
	lines := runMode(t, &BonnorEbertConfig{}, gConfig,
		[]string{"--CentralDensity=1", "--Xi=7"}, nil)

	bs, err := os.ReadFile(path.Join(dir, bonnorebert.ArtifactName))
	require.NoError(t, err)
	require.Equal(t, len(lines), strings.Count(string(bs), "\n"))

	// A sphere which can't be resolved leaves the old table in place.
	old := []byte("old table\n")
	fname := path.Join(dir, bonnorebert.ArtifactName)
	require.NoError(t, os.WriteFile(fname, old, 0644))

	mode := &BonnorEbertConfig{}
	require.NoError(t, mode.ReadConfig("",
		[]string{"--CentralDensity=1", "--Xi=40"}))
	_, err = mode.Run(gConfig, nil)
	require.True(t, errors.Is(err, profile.ErrOutOfRange))

	bs, err = os.ReadFile(fname)
	require.NoError(t, err)
	require.Equal(t, old, bs)
}

func TestBonnorEbertParams(t *testing.T) {
	tests := []struct {
		flags []string
		par   bonnorebert.Params
	}{
		{[]string{"--CentralDensity=2", "--Radius=3"},
			bonnorebert.CentralDensityRadius{RhoC: 2, R: 3}},
		{[]string{"--CentralDensity=2", "--Xi=3"},
			bonnorebert.CentralDensityXi{RhoC: 2, Xi: 3}},
		{[]string{"--CentralDensity=2", "--Mass=3"},
			bonnorebert.CentralDensityMass{RhoC: 2, M: 3}},
		{[]string{"--Radius=2", "--Xi=3"},
			bonnorebert.RadiusXi{R: 2, Xi: 3}},
		{[]string{"--Mass=2", "--Xi=3"},
			bonnorebert.MassXi{M: 2, Xi: 3}},
		{[]string{"--Mass=2", "--Overdensity=3"},
			bonnorebert.MassOverdensity{M: 2, Fac: 3}},
	}

	for i, test := range tests {
		mode := &BonnorEbertConfig{}
		require.NoError(t, mode.ReadConfig("", test.flags), fmt.Sprint(i))
		par, err := mode.params()
		require.NoError(t, err)
		require.Equal(t, test.par, par)
	}

	invalid := [][]string{
		{},
		{"--Mass=1"},
		{"--Mass=1", "--Radius=1"},
		{"--Mass=1", "--Xi=7", "--Radius=1"},
		{"--Mass=1", "--Xi=7", "--Mu=0"},
	}
	for i := range invalid {
		mode := &BonnorEbertConfig{}
		require.Error(t, mode.ReadConfig("", invalid[i]), fmt.Sprint(i))
	}
}

func TestBonnorEbertTemperature(t *testing.T) {
	gConfig := &GlobalConfig{}
	require.NoError(t, gConfig.ReadConfig("",
		[]string{"--units.mass=msun", "--units.length=pc"}))

	mode := &BonnorEbertConfig{}
	require.NoError(t, mode.ReadConfig("", []string{
		"--Mass=1", "--Xi=7", "--Temperature=10", "--Mu=2.33",
	}))
	cs := mode.soundSpeedCode(gConfig)
	// 10 K molecular gas has cs ~ 0.19 km/s and the velocity unit of
	// (msun, pc) is ~ 0.066 km/s.
	require.InDelta(t, 2.9, cs, 0.2)

	lines, err := mode.Run(gConfig, nil)
	require.NoError(t, err)
	require.Contains(t, lines[0], "T(4)")

	cols, err := catalog.ParseLines(lines, []int{4})
	require.NoError(t, err)
	for _, T := range cols[0] {
		require.InDelta(t, 10, T, 1e-6)
	}
}

func TestMassRun(t *testing.T) {
	gConfig, dir := globalConfig(t)

	stdin := []string{"# r rho"}
	r, rho := []float64{}, []float64{}
	for i := 0; i <= 20; i++ {
		r, rho = append(r, float64(i)/20), append(rho, 1+float64(i))
		stdin = append(stdin, fmt.Sprintf("%g %g", r[i], rho[i]))
	}

	lines := runMode(t, &MassConfig{}, gConfig, nil, stdin)
	require.Len(t, lines, 22)
	cols, err := catalog.ParseLines(lines, []int{2})
	require.NoError(t, err)

	m := profile.ShellMass(r, rho)
	for i := range m {
		require.InDelta(t, m[i], cols[0][i], 1e-9*m[len(m)-1])
	}

	s, err := ReadSummary(path.Join(dir, "mass.yaml"))
	require.NoError(t, err)
	require.InDelta(t, profile.TotalMass(r, rho), s.Mass, 1e-12)

	// Columns can be chosen from wider tables.
	lines = runMode(t, &MassConfig{}, gConfig,
		[]string{"--RCol=1", "--RhoCol=0"}, []string{"1 0.5", "1 1"})
	require.Len(t, lines, 3)
}

func TestMassInvalid(t *testing.T) {
	gConfig, _ := globalConfig(t)
	mode := &MassConfig{}
	require.NoError(t, mode.ReadConfig("", nil))

	_, err := mode.Run(gConfig, []string{"0 1", "1"})
	require.True(t, errors.Is(err, profile.ErrDataUnavailable))
	_, err = mode.Run(gConfig, []string{"0 1", "0 1"})
	require.Error(t, err)
	_, err = mode.Run(gConfig, []string{})
	require.Error(t, err)

	require.Error(t, mode.ReadConfig("", []string{"--RCol=-1"}))
}

func TestCheckNoPressure(t *testing.T) {
	gConfig := &GlobalConfig{}
	require.NoError(t, gConfig.ReadConfig("", nil))

	p, err := profile.Uniform(200, 1, 1)
	require.NoError(t, err)
	stdin := profileLines(p)

	out := runMode(t, &CheckConfig{}, gConfig, []string{"--PCol=-1"}, stdin)
	res, err := catalog.ParseLines(out, []int{1, 2, 3, 5})
	require.NoError(t, err)
	require.InDelta(t, 1, res[0][0], 1e-4)
	require.InDelta(t, 1, res[1][0], 1e-4)
	require.InDelta(t, 1, res[2][0], 1e-4)
	require.Equal(t, -1.0, res[3][0])

	require.Error(t, (&CheckConfig{}).ReadConfig("", []string{"--G=0"}))
	_, err = (&CheckConfig{}).Run(gConfig, []string{"1 1"})
	require.Error(t, err)
	_, err = (&CheckConfig{}).Run(gConfig, []string{"1 1", "2 1"})
	require.Error(t, err)
}

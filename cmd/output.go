package cmd

import (
	"fmt"
	"image/color"
	"io/ioutil"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/rhoprof/cmd/catalog"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/profile"
	"github.com/phil-mansfield/rhoprof/version"
)

// Summary holds the scalar results of a run. It is written to
// <output_dir>/<mode>.yaml.
type Summary struct {
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
	Npts    int    `yaml:"npts"`

	Mass           float64 `yaml:"mass"`
	Radius         float64 `yaml:"radius,omitempty"`
	CentralDensity float64 `yaml:"central_density,omitempty"`

	// Mode-specific values, such as K for polytropes.
	Values map[string]float64 `yaml:"values,omitempty"`

	CGS CGSSummary `yaml:"cgs"`
}

// CGSSummary repeats the dimensional values of Summary in cgs.
type CGSSummary struct {
	Mass           float64 `yaml:"mass"`
	Radius         float64 `yaml:"radius,omitempty"`
	CentralDensity float64 `yaml:"central_density,omitempty"`
}

func newSummary(mode string) *Summary {
	return &Summary{
		Mode: mode, Version: version.SourceVersion,
		Values: map[string]float64{},
	}
}

// WriteSummary writes s to <output_dir>/<mode>.yaml. Nothing is written if
// the output directory isn't set.
func WriteSummary(gConfig *GlobalConfig, s *Summary) error {
	if gConfig.OutputDir == "" {
		return nil
	}

	sys := gConfig.System
	s.CGS = CGSSummary{
		Mass:           s.Mass * sys.Mass,
		Radius:         s.Radius * sys.Length,
		CentralDensity: s.CentralDensity * sys.Density(),
	}

	bs, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	fname := path.Join(gConfig.OutputDir, s.Mode+".yaml")
	if err = ioutil.WriteFile(fname, bs, 0644); err != nil {
		return fmt.Errorf("I couldn't write the run summary %s: %s",
			fname, err.Error())
	}
	return nil
}

// ReadSummary reads a run summary written by WriteSummary.
func ReadSummary(fname string) (*Summary, error) {
	bs, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	s := &Summary{}
	if err = yaml.Unmarshal(bs, s); err != nil {
		return nil, fmt.Errorf("I couldn't parse the run summary %s: %s",
			fname, err.Error())
	}
	return s, nil
}

// profileLines formats every filled column of p as a commented table.
func profileLines(p *profile.Profile) []string {
	names := []string{"r", "rho"}
	cols := [][]float64{p.R, p.Rho}

	optional := []struct {
		name string
		col  []float64
	}{
		{"M", p.Mass}, {"P", p.Pressure},
		{"T", p.Temperature}, {"E", p.Energy},
	}
	for _, opt := range optional {
		if len(opt.col) == p.Len() && opt.col != nil {
			names = append(names, opt.name)
			cols = append(cols, opt.col)
		}
	}

	return append([]string{catalog.CommentString(names)},
		catalog.FormatCols(cols)...)
}

// PlotProfile writes density and enclosed mass plots of p to fname, which
// must end in an image extension such as .png or .svg.
func PlotProfile(fname, title string, p *profile.Profile) error {
	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = "r"

	curves := []struct {
		name string
		ys   []float64
	}{
		{"rho(r)", p.Rho}, {"M(<r) / M", normalized(p.Mass)},
	}
	for i, curve := range curves {
		if len(curve.ys) != p.Len() {
			continue
		}
		xys := make(plotter.XYs, p.Len())
		for j := range xys {
			xys[j].X, xys[j].Y = p.R[j], curve.ys[j]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotColors[i%len(plotColors)]
		line.Width = vg.Points(2)
		plt.Add(line)
		plt.Legend.Add(curve.name, line)
	}

	return plt.Save(6*vg.Inch, 4*vg.Inch, fname)
}

var plotColors = []color.Color{
	color.RGBA{A: 255},
	color.RGBA{R: 200, A: 255},
}

func normalized(x []float64) []float64 {
	if len(x) == 0 || x[len(x)-1] == 0 {
		return x
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] / x[len(x)-1]
	}
	return out
}

// finish is the shared tail of the generating modes.
func finish(
	gConfig *GlobalConfig, s *Summary, p *profile.Profile,
) ([]string, error) {
	s.Npts = p.Len()
	if logging.Mode == logging.Performance {
		logging.LogInfo(logging.Logger("mode", s.Mode), "msg", "finished",
			"npts", s.Npts, "mem", logging.MemString())
	}
	if err := WriteSummary(gConfig, s); err != nil {
		return nil, err
	}
	if gConfig.Plot {
		fname := path.Join(gConfig.OutputDir, s.Mode+".png")
		if err := PlotProfile(fname, s.Mode, p); err != nil {
			return nil, fmt.Errorf("I couldn't write the plot %s: %s",
				fname, err.Error())
		}
	}
	return profileLines(p), nil
}

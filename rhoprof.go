/*
package main is the rhoprof binary, which generates radial profiles of
self-gravitating spheres from the command line.
*/
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/rhoprof/cmd"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/version"
)

// ConfigEnv names the environment variable which can hold the path to the
// global config file.
const ConfigEnv = "RHOPROF_CONFIG"

var modeDescriptions = map[string]string{
	"uniform":      "Generate a sphere of constant density.",
	"evrard":       "Generate the rho ~ 1/r sphere of Evrard collapse tests.",
	"polytrope":    "Generate a polytrope, P = K rho^Gamma.",
	"piecewise":    "Generate a star with a piecewise polytropic EOS.",
	"bonnor-ebert": "Generate a pressure-bounded isothermal sphere.",
	"mass":         "Compute the enclosed mass of an (r, rho) table on stdin.",
	"check":        "Check the resolution and equilibrium of a table on stdin.",
}

// stdinModes read a table from stdin.
var stdinModes = map[string]bool{"mass": true, "check": true}

type globalFlags struct {
	config, log, out string
	plot             bool
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	gFlags := &globalFlags{}
	root := &cobra.Command{
		Use:   "rhoprof",
		Short: "rhoprof generates radial profiles of self-gravitating spheres",
		Long: `rhoprof generates radial profiles of self-gravitating spheres.

My modes are:
rhoprof <mode> [--set Name=value ...] [____.yaml] [____.<mode>.config]

My help modes are:
rhoprof help [ <mode> | <mode>.config | config ]`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gFlags.config, "config", "", "global config file "+
		"(default is $"+ConfigEnv+")")
	pf.StringVar(&gFlags.log, "log", "", "logging mode: nil, "+
		"performance, or debug")
	pf.StringVar(&gFlags.out, "out", "", "directory run summaries are "+
		"written to")
	pf.BoolVar(&gFlags.plot, "plot", false, "plot the generated profile")

	names := []string{}
	for name := range cmd.ModeNames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		root.AddCommand(modeCommand(name, gFlags))
	}

	root.SetHelpCommand(helpCommand(root))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the source version",
		Run: func(c *cobra.Command, args []string) {
			fmt.Printf("rhoprof version %s\n", version.SourceVersion)
		},
	})

	return root
}

func modeCommand(name string, gFlags *globalFlags) *cobra.Command {
	var sets []string
	c := &cobra.Command{
		Use: fmt.Sprintf("%s [--set Name=value ...] [____.yaml] "+
			"[____.%s.config]", name, name),
		Short: modeDescriptions[name],
		Args:  cobra.MaximumNArgs(2),
		Run: func(c *cobra.Command, args []string) {
			if err := runMode(name, c, gFlags, sets, args); err != nil {
				fmt.Fprintf(os.Stderr, "Error running mode %s:\n%s\n",
					name, err.Error())
				os.Exit(1)
			}
		},
	}
	c.Flags().StringArrayVarP(&sets, "set", "s", nil, "override a mode "+
		"config variable, e.g. --set Mass=2")
	return c
}

func runMode(
	name string, c *cobra.Command, gFlags *globalFlags,
	sets, args []string,
) error {
	gName, mName, err := configNames(args, gFlags.config)
	if err != nil {
		return err
	}

	gConfig := &cmd.GlobalConfig{}
	if err = gConfig.ReadConfig(gName, overrides(c, gFlags)); err != nil {
		return err
	}
	logging.SetMode(gConfig.LogMode)
	if gConfig.FromLaterPatch() {
		logging.LogWarn(logging.Logger("module", "rhoprof"),
			"msg", "config file is from a later patch release",
			"config_version", gConfig.Version,
			"source_version", version.SourceVersion)
	}

	mode := cmd.ModeNames[name]
	if err = mode.ReadConfig(mName, sets); err != nil {
		return err
	}

	var lines []string
	if stdinModes[name] {
		if lines, err = stdinLines(); err != nil {
			return err
		}
	}

	out, err := mode.Run(gConfig, lines)
	if err != nil {
		return err
	}
	for i := range out {
		fmt.Println(out[i])
	}
	return nil
}

// configNames returns the names of the global and the mode config files from
// the positional arguments. Global config files are YAML.
func configNames(args []string, flagName string) (gName, mName string, err error) {
	for _, arg := range args {
		switch {
		case strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml"):
			if gName != "" {
				return "", "", fmt.Errorf("Passed two global config files, "+
					"%s and %s.", gName, arg)
			}
			gName = arg
		case strings.HasSuffix(arg, ".config"):
			if mName != "" {
				return "", "", fmt.Errorf("Passed two mode config files, "+
					"%s and %s.", mName, arg)
			}
			mName = arg
		default:
			return "", "", fmt.Errorf("I don't know what to do with the "+
				"argument '%s'. Global config files end in .yaml and mode "+
				"config files end in .config.", arg)
		}
	}

	if gName != "" && flagName != "" {
		return "", "", fmt.Errorf("Passed the global config file %s both "+
			"as an argument and with --config.", flagName)
	} else if gName == "" {
		gName = flagName
	}
	if gName == "" {
		gName = os.Getenv(ConfigEnv)
	}
	return gName, mName, nil
}

// overrides converts the global flags which were set on the command line
// into global config overrides.
func overrides(c *cobra.Command, gFlags *globalFlags) []string {
	flags := []string{}
	if c.Flags().Changed("log") {
		flags = append(flags, "--log="+gFlags.log)
	}
	if c.Flags().Changed("out") {
		flags = append(flags, "--output_dir="+gFlags.out)
	}
	if c.Flags().Changed("plot") {
		flags = append(flags, fmt.Sprintf("--plot=%t", gFlags.plot))
	}
	return flags
}

func helpCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help [ <mode> | <mode>.config | config ]",
		Short: "Describe a mode or print an example config file",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			if len(args) == 0 {
				root.Help()
				return
			}

			target := args[0]
			switch {
			case target == "config":
				fmt.Println(new(cmd.GlobalConfig).ExampleConfig())
			case strings.HasSuffix(target, ".config"):
				mode, ok := cmd.ModeNames[strings.TrimSuffix(target, ".config")]
				if !ok {
					fmt.Printf("I don't recognize the help target '%s'\n",
						target)
					return
				}
				fmt.Println(mode.ExampleConfig())
			default:
				desc, ok := modeDescriptions[target]
				if !ok {
					fmt.Printf("I don't recognize the help target '%s'\n",
						target)
					return
				}
				fmt.Println(desc)
			}
		},
	}
}

// stdinLines reads stdin and splits it into lines.
func stdinLines() ([]string, error) {
	bs, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"Error reading stdin: %s.", err.Error(),
		)
	}
	text := string(bs)
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

/*
package parse reads the typed config files used by rhoprof's modes. A config
file starts with a "[name]" header and is followed by "Variable = value"
lines. Everything after a '#' is a comment.
*/
package parse

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"
)

/////////////////////
// Conversion Code //
/////////////////////

type varType int

const (
	intVar varType = iota
	floatVar
	floatsVar
	stringVar
	stringsVar
	boolVar
)

func (v varType) String() string {
	switch v {
	case intVar:
		return "int"
	case floatVar:
		return "float"
	case floatsVar:
		return "float list"
	case stringVar:
		return "string"
	case stringsVar:
		return "string list"
	case boolVar:
		return "bool"
	}
	panic("Impossible")
}

type conversionFunc func(string) bool

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return false
		}
		*ptr = i
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.TrimSpace(s)
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false
		}
		*ptr = b
		return true
	}
}

func strToList(a string) []string {
	if strings.TrimSpace(a) == "" {
		return []string{}
	}
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.TrimSpace(strs[i])
	}
	return strs
}

// List conversions replace the default value instead of appending to it.
func floatsConv(ptr *[]float64) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		fs := make([]float64, len(toks))
		for j := range toks {
			f, err := strconv.ParseFloat(toks[j], 64)
			if err != nil {
				return false
			}
			fs[j] = f
		}
		*ptr = fs
		return true
	}
}

func stringsConv(ptr *[]string) conversionFunc {
	return func(s string) bool {
		*ptr = strToList(s)
		return true
	}
}

type variable struct {
	name string
	typ  varType
	conv conversionFunc
	set  bool
}

// ConfigVars is a collection of named, typed variables which can be set by
// a config file or by command line flags.
type ConfigVars struct {
	name string
	vars []variable
}

func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

func (vars *ConfigVars) add(name string, typ varType, conv conversionFunc) {
	vars.vars = append(vars.vars, variable{
		name: strings.ToLower(name), typ: typ, conv: conv,
	})
}

func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.add(name, intVar, intConv(ptr))
}

func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, floatConv(ptr))
}

func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, stringConv(ptr))
}

func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.add(name, boolVar, boolConv(ptr))
}

func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.add(name, floatsVar, floatsConv(ptr))
}

func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.add(name, stringsVar, stringsConv(ptr))
}

// IsSet returns true if the named variable was assigned a value by a config
// file or a flag, as opposed to holding its default.
func (vars *ConfigVars) IsSet(name string) bool {
	v := vars.lookup(strings.ToLower(name))
	return v != nil && v.set
}

func (vars *ConfigVars) lookup(name string) *variable {
	for i := range vars.vars {
		if vars.vars[i].name == name {
			return &vars.vars[i]
		}
	}
	return nil
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname and assigns its values to vars.
func ReadConfig(fname string, vars *ConfigVars) error {
	bs, err := ioutil.ReadFile(fname)
	if err != nil {
		return err
	}
	return parseConfig(string(bs), fname, vars)
}

func parseConfig(text, fname string, vars *ConfigVars) error {
	lines, lineNums := removeComments(strings.Split(text, "\n"))

	if len(lines) == 0 || lines[0] != fmt.Sprintf("[%s]", vars.name) {
		return fmt.Errorf(
			"I expected the config file %s to have the header "+
				"[%s] at the top, but didn't find it.", fname, vars.name,
		)
	}
	lines, lineNums = lines[1:], lineNums[1:]

	names, vals, errLine := associationList(lines)
	if errLine != -1 {
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because it "+
				"did not take the form of a variable assignment.",
			lineNums[errLine], fname,
		)
	}

	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] {
				return fmt.Errorf(
					"Lines %d and %d of the config file %s both assign a "+
						"value to the variable '%s'.",
					lineNums[i], lineNums[j], fname, names[i],
				)
			}
		}
	}

	for i := range names {
		v := vars.lookup(names[i])
		if v == nil {
			return fmt.Errorf(
				"Line %d of the config file %s assigns a value to the "+
					"variable '%s', but config files of type %s don't have "+
					"that variable.", lineNums[i], fname, names[i], vars.name,
			)
		}
		if !v.conv(vals[i]) {
			return fmt.Errorf(
				"I could not parse line %d of the config file %s because "+
					"'%s' expects values of type %s and '%s' cannot be "+
					"converted to %s %s.", lineNums[i], fname, v.name, v.typ,
				vals[i], article(v.typ), v.typ,
			)
		}
		v.set = true
	}

	return nil
}

// ReadFlags assigns values to vars from a list of command line flags of the
// form "Name=value". A leading "--" is allowed. Flags are applied after the
// config file, so they take precedence.
func ReadFlags(flags []string, vars *ConfigVars) error {
	for _, flag := range flags {
		tok := strings.TrimLeft(flag, "-")
		eq := strings.Index(tok, "=")
		if eq <= 0 {
			return fmt.Errorf("The flag '%s' does not take the form "+
				"Name=value.", flag)
		}

		name := strings.ToLower(strings.TrimSpace(tok[:eq]))
		val := strings.TrimSpace(tok[eq+1:])

		v := vars.lookup(name)
		if v == nil {
			return fmt.Errorf("The flag '%s' sets the variable '%s', but "+
				"%s doesn't have that variable.", flag, name, vars.name)
		}
		if !v.conv(val) {
			return fmt.Errorf("The flag '%s' sets '%s', which expects "+
				"values of type %s, but '%s' cannot be converted to %s %s.",
				flag, v.name, v.typ, val, article(v.typ), v.typ)
		}
		v.set = true
	}
	return nil
}

func article(typ varType) string {
	if typ.String()[0] == 'i' {
		return "an"
	}
	return "a"
}

// removeComments strips comments and blank lines. The returned line numbers
// are one-indexed positions in the original file.
func removeComments(lines []string) ([]string, []int) {
	out, lineNums := []string{}, []int{}
	for i := range lines {
		line := lines[i]
		if comment := strings.Index(line, "#"); comment != -1 {
			line = line[:comment]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
		lineNums = append(lineNums, i+1)
	}

	return out, lineNums
}

func associationList(lines []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := range lines {
		eq := strings.Index(lines[i], "=")
		if eq == -1 {
			return nil, nil, i
		}
		name := strings.ToLower(strings.TrimSpace(lines[i][:eq]))
		if len(name) == 0 {
			return nil, nil, i
		}
		names = append(names, name)
		vals = append(vals, strings.TrimSpace(lines[i][eq+1:]))
	}
	return names, vals, -1
}

/*
package catalog reads and writes the whitespace-separated column tables
that rhoprof modes exchange over stdin and stdout.
*/
package catalog

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/phil-mansfield/rhoprof/profile"
)

// CommentString returns a header line which names each column, e.g.
// "# Column contents: r(0) rho(1) M(2)".
func CommentString(names []string) string {
	tokens := []string{"# Column contents:"}
	for i := range names {
		tokens = append(tokens, fmt.Sprintf("%s(%d)", names[i], i))
	}
	return strings.Join(tokens, " ")
}

// FormatCols formats a set of equal-height columns as right-aligned text
// lines with ten significant figures.
func FormatCols(cols [][]float64) []string {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return []string{}
	}

	height := len(cols[0])
	formatted := make([][]string, len(cols))
	for i := range cols {
		if len(cols[i]) != height {
			panic("Columns of unequal height.")
		}
		formatted[i] = formatFloatCol(cols[i])
	}

	lines := make([]string, height)
	tokens := make([]string, len(cols))
	for i := 0; i < height; i++ {
		for j := range formatted {
			tokens[j] = formatted[j][i]
		}
		lines[i] = strings.Join(tokens, " ")
	}

	return lines
}

func formatFloatCol(col []float64) []string {
	width := 0
	for i := range col {
		if n := len(strconv.FormatFloat(col[i], 'g', 10, 64)); n > width {
			width = n
		}
	}

	out := make([]string, len(col))
	for i := range col {
		out[i] = fmt.Sprintf("%*.10g", width, col[i])
	}
	return out
}

// Parse parses the columns with the indices colIdxs from a block of text.
// Everything after a '#' on a line is ignored, as are blank lines. Failures
// are wrapped in profile.ErrDataUnavailable.
func Parse(data []byte, colIdxs []int) ([][]float64, error) {
	lines, nComm := split(data, '\n', '#')
	lines = uncomment(lines, '#', nComm)
	lines = trim(lines)
	return parse(lines, colIdxs)
}

// ParseLines is Parse for text which has already been split into lines.
func ParseLines(lines []string, colIdxs []int) ([][]float64, error) {
	return Parse([]byte(strings.Join(lines, "\n")), colIdxs)
}

// ReadFile parses the columns with indices colIdxs from the file fname.
func ReadFile(fname string, colIdxs []int) ([][]float64, error) {
	data, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, errorsmod.Wrap(profile.ErrDataUnavailable, err.Error())
	}
	cols, err := Parse(data, colIdxs)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "in file %s", fname)
	}
	return cols, nil
}

// split splits a byte splice at each separating flag. Slicing is used
// instead of allocations, and the comment characters are counted in the
// same pass.
func split(data []byte, sep, comm byte) (lines [][]byte, nComm int) {
	n := 0
	for _, c := range data {
		if c == sep {
			n++
		}
		if c == comm {
			nComm++
		}
	}

	tokens := make([][]byte, n+1)

	idx := 0
	for j := 0; j < n; j++ {
		data = data[idx:]
		idx = bytes.IndexByte(data, sep)
		tokens[j] = data[:idx]
		idx++
	}
	tokens[n] = data[idx:]

	return tokens, nComm
}

// uncomment removes file comments in the form of "data # comment".
func uncomment(lines [][]byte, comm byte, nComm int) [][]byte {
	if nComm == 0 {
		return lines
	}

	for i, line := range lines {
		commentStart := bytes.IndexByte(line, comm)
		if commentStart == -1 {
			continue
		}

		lines[i] = line[:commentStart]
		nComm -= bytes.Count(line[commentStart:], []byte{comm})
		if nComm == 0 {
			return lines
		}
	}

	return lines
}

// trim removes blank lines.
func trim(lines [][]byte) [][]byte {
	j := 0
	for i := range lines {
		if len(bytes.TrimSpace(lines[i])) > 0 {
			lines[j] = lines[i]
			j++
		}
	}
	return lines[:j]
}

func parse(lines [][]byte, colIdxs []int) ([][]float64, error) {
	cols := make([][]float64, len(colIdxs))
	for i := range cols {
		cols[i] = make([]float64, len(lines))
	}
	if len(lines) == 0 {
		return cols, nil
	}

	width := len(bytes.Fields(lines[0]))
	for _, idx := range colIdxs {
		if idx < 0 || idx >= width {
			return nil, errorsmod.Wrapf(profile.ErrDataUnavailable,
				"column %d requested, but the table has %d columns",
				idx, width)
		}
	}

	for i, line := range lines {
		words := bytes.Fields(line)
		if len(words) != width {
			return nil, errorsmod.Wrapf(profile.ErrDataUnavailable,
				"data (not file) line %d has %d columns, not %d",
				i+1, len(words), width)
		}

		for j, idx := range colIdxs {
			x, err := strconv.ParseFloat(string(words[idx]), 64)
			if err != nil {
				return nil, errorsmod.Wrapf(profile.ErrDataUnavailable,
					"data (not file) line %d: %s", i+1, err.Error())
			}
			cols[j][i] = x
		}
	}

	return cols, nil
}

package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/hexrail/vmath"
)

var ErrScript = errors.New("input: bad script line")

// ParseScript reads raw deltas, one "dx dy" pair per line in input convention (Y down).
// Blank lines and text after '#' are ignored.
func ParseScript(r io.Reader) ([]vmath.Vec2, error) {
	var deltas []vmath.Vec2
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w %d: want 2 fields, got %d", ErrScript, lineNo, len(fields))
		}

		dx, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrScript, lineNo, err)
		}
		dy, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrScript, lineNo, err)
		}

		d := vmath.V2(dx, dy)
		if !vmath.V2IsFinite(d) {
			return nil, fmt.Errorf("%w %d: non-finite delta", ErrScript, lineNo)
		}
		deltas = append(deltas, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return deltas, nil
}

package catalog

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// block is one blank-line separated record of "KEY: value" lines
type block struct {
	index  int
	line   int
	fields map[string]string
	lines  map[string]int
}

// readBlocks splits a catalogue file into blocks. Lines starting with # are
// comments.
func readBlocks(r io.Reader) ([]*block, error) {
	var (
		blocks  []*block
		current *block
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if !utf8.ValidString(raw) {
			return nil, errors.DataLossf("line %d is not valid UTF-8", lineNo).
				WithMeta("line", lineNo)
		}

		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			current = nil
			continue
		}

		if current == nil {
			current = &block{
				index:  len(blocks) + 1,
				line:   lineNo,
				fields: make(map[string]string),
				lines:  make(map[string]int),
			}
			blocks = append(blocks, current)
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.InvalidArgumentf("line %d: expected KEY: value", lineNo).
				WithMeta("block", current.index).
				WithMeta("line", lineNo)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if _, dup := current.fields[key]; dup {
			return nil, errors.InvalidArgumentf("line %d: %s given twice", lineNo, key).
				WithMeta("block", current.index).
				WithMeta("line", lineNo)
		}
		current.fields[key] = strings.TrimSpace(value)
		current.lines[key] = lineNo
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to read catalogue")
	}

	return blocks, nil
}

// fieldError builds an InvalidArgument error pointing at a key in the block
func (b *block) fieldError(key, format string, args ...interface{}) *errors.Error {
	line := b.lines[key]
	if line == 0 {
		line = b.line
	}
	return errors.InvalidArgumentf("block %d: "+format, append([]interface{}{b.index}, args...)...).
		WithMeta("block", b.index).
		WithMeta("line", line).
		WithMeta("field", key)
}

// require returns an error naming the first missing key
func (b *block) require(keys ...string) error {
	for _, k := range keys {
		if _, ok := b.fields[k]; !ok {
			return b.fieldError(k, "missing field %s", k)
		}
	}
	return nil
}

func (b *block) str(key string) string {
	return b.fields[key]
}

func (b *block) integer(key string) (int, error) {
	v, err := strconv.Atoi(b.fields[key])
	if err != nil {
		return 0, b.fieldError(key, "%s must be an integer, got %q", key, b.fields[key])
	}
	return v, nil
}

// Package save encodes characters in the line-oriented save format and
// defines the save-slot Store the game persists through.
//
// Format, one field per line except the stats line:
//
//	<name>
//	<maxHealth> <health> <baseAttack> <attack> <baseDefense> <defense> <level> <experience>
//	<itemCount>
//	then per item: <"Weapon"|"Potion">, <name>, <description>, <attackBonus|healAmount>
package save

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/entity"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// ErrDecode is matched by every decoding failure.
var ErrDecode = errors.New("decode failure")

// ErrEncode is returned when a character cannot be represented in the format.
var ErrEncode = errors.New("encode failure")

// DecodeError reports malformed save data at a 1-based line.
type DecodeError struct {
	Line int
	Msg  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("save data line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("save data line %d: %s", e.Line, e.Msg)
}

// Is makes errors.Is(err, ErrDecode) true for every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode writes c in the save format.
//
// Precondition: c passes Validate; the format cannot represent line breaks in
// names or descriptions, so such characters are rejected with ErrEncode.
// Postcondition: Decode of the output yields a character equal to c.
func Encode(w io.Writer, c *character.Character) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, c.Name)
	fmt.Fprintf(bw, "%d %d %d %d %d %d %d %d\n",
		c.MaxHealth, c.Health, c.BaseAttack, c.Attack,
		c.BaseDefense, c.Defense, c.Level, c.Experience)

	items := c.Inventory.Items()
	fmt.Fprintln(bw, len(items))
	for _, it := range items {
		fmt.Fprintln(bw, it.Kind)
		fmt.Fprintln(bw, it.Name)
		fmt.Fprintln(bw, it.Description)
		fmt.Fprintln(bw, it.Value())
	}
	return bw.Flush()
}

// Marshal returns the encoding of c.
func Marshal(c *character.Character) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data produced by Marshal.
func Unmarshal(data []byte) (*character.Character, error) {
	return Decode(bytes.NewReader(data))
}

// lineReader yields lines with a trailing "\r" stripped and tracks the line
// number. Lines have no length limit.
type lineReader struct {
	br   *bufio.Reader
	line int
}

// read returns the next raw line; ok is false at end of data.
func (r *lineReader) read() (line string, ok bool, err error) {
	s, err := r.br.ReadString('\n')
	switch {
	case err == io.EOF && s == "":
		return "", false, nil
	case err != nil && err != io.EOF:
		return "", false, err
	}
	r.line++
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), true, nil
}

func (r *lineReader) next(what string) (string, error) {
	s, ok, err := r.read()
	if err != nil {
		return "", &DecodeError{Line: r.line + 1, Msg: "reading " + what, Err: err}
	}
	if !ok {
		return "", &DecodeError{Line: r.line + 1, Msg: "unexpected end of data, expected " + what}
	}
	return s, nil
}

func (r *lineReader) int(what string) (int, error) {
	s, err := r.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &DecodeError{Line: r.line, Msg: "invalid " + what, Err: err}
	}
	return n, nil
}

// Decode reads one character. Trailing blank lines are ignored; any other
// trailing content is an error.
//
// Postcondition: Returns a character that passes Validate, or an error
// matching ErrDecode.
func Decode(rd io.Reader) (*character.Character, error) {
	r := &lineReader{br: bufio.NewReader(rd)}

	name, err := r.next("name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &DecodeError{Line: r.line, Msg: "empty name"}
	}

	statsLine, err := r.next("stats")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(statsLine)
	if len(fields) != 8 {
		return nil, &DecodeError{Line: r.line, Msg: fmt.Sprintf("expected 8 stats, got %d", len(fields))}
	}
	var stats [8]int
	for i, f := range fields {
		if stats[i], err = strconv.Atoi(f); err != nil {
			return nil, &DecodeError{Line: r.line, Msg: fmt.Sprintf("invalid stat %d", i+1), Err: err}
		}
	}
	statsLineNo := r.line

	c := &character.Character{
		Vitals: entity.Vitals{
			Name:      name,
			MaxHealth: stats[0],
			Health:    stats[1],
			Attack:    stats[3],
			Defense:   stats[5],
		},
		BaseAttack:  stats[2],
		BaseDefense: stats[4],
		Level:       stats[6],
		Experience:  stats[7],
		Inventory:   inventory.New(),
	}

	count, err := r.int("item count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, &DecodeError{Line: r.line, Msg: fmt.Sprintf("negative item count %d", count)}
	}
	for i := 0; i < count; i++ {
		it, err := decodeItem(r)
		if err != nil {
			return nil, err
		}
		c.AddItem(it)
	}

	for {
		s, ok, err := r.read()
		if err != nil {
			return nil, &DecodeError{Line: r.line + 1, Msg: "reading trailing data", Err: err}
		}
		if !ok {
			break
		}
		if strings.TrimSpace(s) != "" {
			return nil, &DecodeError{Line: r.line, Msg: "unexpected trailing data"}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, &DecodeError{Line: statsLineNo, Msg: "invalid character", Err: err}
	}
	return c, nil
}

func decodeItem(r *lineReader) (inventory.Item, error) {
	tag, err := r.next("item type")
	if err != nil {
		return inventory.Item{}, err
	}
	tagLine := r.line
	kind, ok := inventory.ParseKind(tag)
	if !ok {
		return inventory.Item{}, &DecodeError{Line: tagLine, Msg: fmt.Sprintf("unknown item type %q", tag)}
	}
	name, err := r.next("item name")
	if err != nil {
		return inventory.Item{}, err
	}
	desc, err := r.next("item description")
	if err != nil {
		return inventory.Item{}, err
	}
	value, err := r.int("item value")
	if err != nil {
		return inventory.Item{}, err
	}

	var it inventory.Item
	switch kind {
	case inventory.KindWeapon:
		it = inventory.NewWeapon(name, desc, value)
	case inventory.KindPotion:
		it = inventory.NewPotion(name, desc, value)
	}
	if err := it.Validate(); err != nil {
		return inventory.Item{}, &DecodeError{Line: tagLine, Msg: "invalid item", Err: err}
	}
	return it, nil
}

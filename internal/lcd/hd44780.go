//go:build linux

package lcd

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Pins holds the HD44780 line assignments (BCM numbering) for 4-bit mode:
// register select, enable, and the high data nibble D4-D7. R/W is strapped
// to ground.
type Pins struct {
	RS int
	E  int
	D4 int
	D5 int
	D6 int
	D7 int
}

// DefaultPins returns the default display wiring.
func DefaultPins() Pins {
	return Pins{RS: 25, E: 24, D4: 23, D5: 22, D6: 27, D7: 17}
}

// HD44780 command set, 4-bit interface.
const (
	cmdClear      = 0x01
	cmdEntryMode  = 0x06 // increment, no shift
	cmdDisplayOn  = 0x0C // display on, cursor off
	cmdBlinkBit   = 0x01 // OR into cmdDisplayOn for a blinking block
	cmdFunction4  = 0x28 // 4-bit, 2 lines, 5x8 font
	cmdSetDDRAM   = 0x80
	row1Offset    = 0x40
	clearSettleMs = 2
)

// HD44780 drives a 2x16 character module in 4-bit mode over GPIO character
// device lines.
type HD44780 struct {
	rs    *gpiocdev.Line
	e     *gpiocdev.Line
	data  [4]*gpiocdev.Line // D4..D7
	chip  *gpiocdev.Chip
	blink bool
}

// NewHD44780 requests the display lines and runs the standard 4-bit init
// sequence.
func NewHD44780(p Pins) (*HD44780, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	d := &HD44780{chip: chip}
	request := func(dst **gpiocdev.Line, pin int, name string) error {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			return fmt.Errorf("request lcd %s pin %d: %w", name, pin, err)
		}
		*dst = line
		return nil
	}

	pins := []struct {
		dst  **gpiocdev.Line
		pin  int
		name string
	}{
		{&d.rs, p.RS, "rs"},
		{&d.e, p.E, "e"},
		{&d.data[0], p.D4, "d4"},
		{&d.data[1], p.D5, "d5"},
		{&d.data[2], p.D6, "d6"},
		{&d.data[3], p.D7, "d7"},
	}
	for _, pc := range pins {
		if err := request(pc.dst, pc.pin, pc.name); err != nil {
			d.release()
			return nil, err
		}
	}

	if err := d.init4bit(); err != nil {
		d.release()
		return nil, err
	}
	return d, nil
}

// init4bit runs the datasheet power-on sequence: three 8-bit function-set
// nibbles, the switch to 4-bit mode, then function set, display control,
// clear and entry mode.
func (d *HD44780) init4bit() error {
	time.Sleep(50 * time.Millisecond)

	for _, nib := range []byte{0x3, 0x3, 0x3, 0x2} {
		if err := d.writeNibble(false, nib); err != nil {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}

	for _, cmd := range []byte{cmdFunction4, cmdDisplayOn, cmdClear, cmdEntryMode} {
		if err := d.command(cmd); err != nil {
			return err
		}
	}
	time.Sleep(clearSettleMs * time.Millisecond)
	return nil
}

// Clear blanks the display and homes the cursor.
func (d *HD44780) Clear() error {
	if err := d.command(cmdClear); err != nil {
		return err
	}
	// The clear instruction is the slow one.
	time.Sleep(clearSettleMs * time.Millisecond)
	return nil
}

// WriteLine writes text starting at column 0 of the given row, truncated to
// the display width.
func (d *HD44780) WriteLine(row int, text string) error {
	if err := d.SetCursor(0, row); err != nil {
		return err
	}
	if len(text) > Cols {
		text = text[:Cols]
	}
	for i := 0; i < len(text); i++ {
		if err := d.writeByte(true, text[i]); err != nil {
			return err
		}
	}
	return nil
}

// SetCursor moves the cursor to (col, row).
func (d *HD44780) SetCursor(col, row int) error {
	addr := byte(col)
	if row == 1 {
		addr += row1Offset
	}
	return d.command(cmdSetDDRAM | addr)
}

// SetBlink switches the blinking block cursor at the current position.
func (d *HD44780) SetBlink(on bool) error {
	ctrl := byte(cmdDisplayOn)
	if on {
		ctrl |= cmdBlinkBit
	}
	d.blink = on
	return d.command(ctrl)
}

// Close blanks the display and releases the lines.
func (d *HD44780) Close() error {
	_ = d.Clear()
	d.release()
	return nil
}

func (d *HD44780) command(b byte) error {
	return d.writeByte(false, b)
}

// writeByte sends a full byte as two nibbles, high first. rs selects data
// register (true) or instruction register (false).
func (d *HD44780) writeByte(rs bool, b byte) error {
	if err := d.writeNibble(rs, b>>4); err != nil {
		return err
	}
	return d.writeNibble(rs, b&0x0F)
}

func (d *HD44780) writeNibble(rs bool, nib byte) error {
	rsVal := 0
	if rs {
		rsVal = 1
	}
	if err := d.rs.SetValue(rsVal); err != nil {
		return fmt.Errorf("lcd rs: %w", err)
	}
	for i := 0; i < 4; i++ {
		v := 0
		if nib&(1<<uint(i)) != 0 {
			v = 1
		}
		if err := d.data[i].SetValue(v); err != nil {
			return fmt.Errorf("lcd d%d: %w", i+4, err)
		}
	}
	// Strobe E; the controller latches on the falling edge.
	if err := d.e.SetValue(1); err != nil {
		return fmt.Errorf("lcd e: %w", err)
	}
	time.Sleep(time.Microsecond)
	if err := d.e.SetValue(0); err != nil {
		return fmt.Errorf("lcd e: %w", err)
	}
	time.Sleep(50 * time.Microsecond)
	return nil
}

func (d *HD44780) release() {
	lines := []*gpiocdev.Line{d.rs, d.e, d.data[0], d.data[1], d.data[2], d.data[3]}
	for _, line := range lines {
		if line != nil {
			_ = line.Close()
		}
	}
	if d.chip != nil {
		_ = d.chip.Close()
		d.chip = nil
	}
}

package z80

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmediate(t *testing.T) {
	assert := assert.New(t)

	ctx := &Context{
		Constants: map[string]int{"N": 5, "$10": 99},
	}

	table := [](struct {
		text  string
		value int
	}){
		{"N", 5},
		{"$10", 99},
		{"'A'", 0x41},
		{"$FF", 0xff},
		{"$ff", 0xff},
		{"0x1234", 0x1234},
		{"0XAB", 0xab},
		{"%1010", 10},
		{"42", 42},
		{"-1", -1},
		{" 7 ", 7},
	}

	for _, entry := range table {
		value, err := ctx.Immediate(entry.text)
		assert.NoError(err, entry.text)
		assert.Equal(entry.value, value, entry.text)
	}

	for _, text := range []string{"", "$", "$G1", "0x", "%102", "abc", "1.5", "$-1"} {
		_, err := ctx.Immediate(text)
		var perr ErrParseNumber
		assert.True(errors.As(err, &perr), text)
	}
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)

	ctx := &Context{
		Tables:    &Tables{SysVars: map[string]uint16{"curRow": 0x844b}},
		Labels:    map[string]int{"loop": 0x9d95, "curRow": 1},
		Constants: map[string]int{"N": 5},
	}

	value, err := ctx.Resolve("loop")
	assert.NoError(err)
	assert.Equal(0x9d95, value)

	// Labels shadow system variables.
	value, err = ctx.Resolve("curRow")
	assert.NoError(err)
	assert.Equal(1, value)

	delete(ctx.Labels, "curRow")
	value, err = ctx.Resolve("curRow")
	assert.NoError(err)
	assert.Equal(0x844b, value)

	value, err = ctx.Resolve("N")
	assert.NoError(err)
	assert.Equal(5, value)

	_, err = ctx.Resolve("missing")
	assert.Equal(ErrLabelMissing("missing"), err)

	_, err = ctx.Resolve("$XY")
	assert.Equal(ErrParseNumber("$XY"), err)

	b, err := ctx.Byte("loop")
	assert.NoError(err)
	assert.Equal(byte(0x95), b)

	b, err = ctx.Byte("-1")
	assert.NoError(err)
	assert.Equal(byte(0xff), b)

	w, err := ctx.Word("loop")
	assert.NoError(err)
	assert.Equal([]byte{0x95, 0x9d}, w)
}

func TestExpand(t *testing.T) {
	assert := assert.New(t)

	ctx := &Context{
		Constants: map[string]int{"WIDTH": 96, "HEIGHT": 64},
	}

	out, err := ctx.Expand("hl,$(WIDTH*HEIGHT//8)")
	assert.NoError(err)
	assert.Equal("hl,768", out)

	out, err = ctx.Expand("$((1+2)*3),$(1<<4)")
	assert.NoError(err)
	assert.Equal("9,16", out)

	out, err = ctx.Expand("a,$10")
	assert.NoError(err)
	assert.Equal("a,$10", out)

	// Quoted literals are not expanded.
	out, err = ctx.Expand(`"price $(2+3)",$(2+3)`)
	assert.NoError(err)
	assert.Equal(`"price $(2+3)",5`, out)

	out, err = ctx.Expand(`"a$(b"`)
	assert.NoError(err)
	assert.Equal(`"a$(b"`, out)

	out, err = ctx.Expand(`'$',$(WIDTH)`)
	assert.NoError(err)
	assert.Equal(`'$',96`, out)

	_, err = ctx.Expand("a,$(1+")
	var eerr ErrParseExpression
	assert.True(errors.As(err, &eerr))

	_, err = ctx.Expand("a,$(UNKNOWN)")
	assert.True(errors.As(err, &eerr))

	_, err = ctx.Expand(`a,$("text")`)
	assert.True(errors.As(err, &eerr))
}

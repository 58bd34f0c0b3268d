package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameters_First(t *testing.T) {
	p := Parameters{
		"VTEC":        {"/O.NEW.KFWD.TO.W.0015.240426T2002Z-240426T2045Z/"},
		"maxHailSize": {1.75},
		"empty":       {},
	}

	v, ok := p.First("VTEC")
	assert.True(t, ok)
	assert.Equal(t, "/O.NEW.KFWD.TO.W.0015.240426T2002Z-240426T2045Z/", v)

	_, ok = p.First("empty")
	assert.False(t, ok)

	_, ok = p.First("absent")
	assert.False(t, ok)
}

func TestParameters_FirstString(t *testing.T) {
	p := Parameters{
		"threat": {"CATASTROPHIC", "CONSIDERABLE"},
		"size":   {1.75},
		"flag":   {true},
		"weird":  {map[string]any{}},
	}

	s, ok := p.FirstString("threat")
	assert.True(t, ok)
	assert.Equal(t, "CATASTROPHIC", s)

	s, ok = p.FirstString("size")
	assert.True(t, ok)
	assert.Equal(t, "1.75", s)

	s, ok = p.FirstString("flag")
	assert.True(t, ok)
	assert.Equal(t, "true", s)

	_, ok = p.FirstString("weird")
	assert.False(t, ok)
}

func TestParameters_FirstBool(t *testing.T) {
	p := Parameters{
		"asBool":    {true},
		"asString":  {"True"},
		"asGarbage": {"banana"},
		"number":    {1.0},
	}

	assert.True(t, p.FirstBool("asBool"))
	assert.True(t, p.FirstBool("asString"))
	assert.False(t, p.FirstBool("asGarbage"))
	assert.False(t, p.FirstBool("number"))
	assert.False(t, p.FirstBool("absent"))
}

func TestParameters_Strings(t *testing.T) {
	p := Parameters{
		"mixed": {"a", 1.0, "b"},
	}

	assert.Equal(t, []string{"a", "b"}, p.Strings("mixed"))
	assert.Nil(t, p.Strings("absent"))
}

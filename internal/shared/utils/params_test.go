package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParams_Defaults(t *testing.T) {
	p := ParsePageParams(url.Values{})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.Size)
}

func TestParsePageParams_ReadsValues(t *testing.T) {
	p := ParsePageParams(url.Values{"page": {"3"}, "size": {"25"}})

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Size)
}

func TestParsePageParams_RejectsGarbageAndCapsSize(t *testing.T) {
	p := ParsePageParams(url.Values{"page": {"abc"}, "size": {"0"}})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.Size)

	p = ParsePageParams(url.Values{"page": {"-2"}, "size": {"5000"}})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Size)
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool("1"))
	assert.True(t, ParseBool("true"))
	assert.False(t, ParseBool("0"))
	assert.False(t, ParseBool("false"))
	assert.False(t, ParseBool("yes"))
	assert.False(t, ParseBool(""))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 15))
	assert.Equal(t, 1, TotalPages(15, 15))
	assert.Equal(t, 2, TotalPages(16, 15))
	assert.Equal(t, 3, TotalPages(45, 15))
	assert.Equal(t, 0, TotalPages(10, 0))
}

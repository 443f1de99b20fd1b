package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a…@e….com", MaskEmail("ada@example.com"))
	assert.Equal(t, "g…e", MaskEmail("grace"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "", MaskEmail(""))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "abcd…", MaskToken("abcdef123456"))
	assert.Equal(t, "****", MaskToken("abc"))
	assert.Equal(t, "", MaskToken(""))
}

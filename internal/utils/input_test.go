package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAskConfirmation(t *testing.T) {
	var out bytes.Buffer
	in := &InputUtils{In: strings.NewReader("YES\n"), Out: &out}
	assert.True(t, in.AskConfirmation("Delete rows?", false))
	assert.Equal(t, "Delete rows? (y/N): ", out.String())

	in = &InputUtils{In: strings.NewReader("\n"), Out: &out}
	assert.False(t, in.AskConfirmation("Delete rows?", false))

	in = &InputUtils{In: strings.NewReader(""), Out: &out}
	assert.True(t, in.AskConfirmation("Delete rows?", true))
}

func TestGetUserChoice(t *testing.T) {
	var out bytes.Buffer
	in := &InputUtils{In: strings.NewReader("maybe\nSkip\n"), Out: &out}
	assert.Equal(t, "skip", in.GetUserChoice([]string{"overwrite", "skip"}, "File exists", false))
	assert.Contains(t, out.String(), "Invalid option")

	in = &InputUtils{In: strings.NewReader(""), Out: &out}
	assert.Equal(t, "overwrite", in.GetUserChoice([]string{"overwrite", "skip"}, "File exists", false))
}

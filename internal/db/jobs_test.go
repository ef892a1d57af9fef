package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobPatch_IsEmpty(t *testing.T) {
	assert.True(t, JobPatch{}.IsEmpty())

	title := "Backend Engineer"
	assert.False(t, JobPatch{JobTitle: &title}.IsEmpty())

	empty := ""
	// A present-but-empty field still counts as a field.
	assert.False(t, JobPatch{LabelSkill: &empty}.IsEmpty())
}

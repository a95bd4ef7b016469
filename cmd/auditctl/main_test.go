package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"migrate", "sideways"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestSeedFlags(t *testing.T) {
	root := newRootCmd()
	seedCmd, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)

	assert.NotNil(t, seedCmd.Flags().Lookup("admin-email"))
	assert.NotNil(t, seedCmd.Flags().Lookup("admin-password"))
}

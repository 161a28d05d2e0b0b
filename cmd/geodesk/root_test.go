package main

import (
	"bytes"
	"testing"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExecSubcommand(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)

	var found bool
	for _, c := range cmd.Commands() {
		if c.Name() == "exec" {
			found = true
			break
		}
	}
	assert.True(t, found, "exec subcommand should exist")
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	cmd := getRootCmd()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "string", configFlag.Value.Type())
}

func TestRootCommand_Help(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	helpText := buf.String()
	assert.Contains(t, helpText, "geodesk")
	assert.Contains(t, helpText, "Available Commands")
	assert.Contains(t, helpText, "exec")
}

func TestExecCommand_Flags(t *testing.T) {
	cmd := getExecCmd()

	progressFlag := cmd.Flags().Lookup("progress")
	require.NotNil(t, progressFlag)
	assert.Equal(t, "bool", progressFlag.Value.Type())

	jsonFlag := cmd.Flags().Lookup("json-errors")
	require.NotNil(t, jsonFlag)
}

func TestRequote(t *testing.T) {
	tests := []struct {
		msg  string
		args []string
		want string
	}{
		{
			"plain words pass through",
			[]string{"schema", "city.duck", "places"},
			"schema city.duck places",
		},
		{
			"words with spaces regain quotes",
			[]string{"geocode", "city.duck", "400 Broad St, Seattle"},
			`geocode city.duck "400 Broad St, Seattle"`,
		},
		{
			"words holding double quotes use single quotes",
			[]string{"search", "db", `the "Spot"`},
			`search db 'the "Spot"'`,
		},
		{
			"empty word survives",
			[]string{"geocode", "db", ""},
			`geocode db ""`,
		},
	}
	for _, v := range tests {
		got, err := requote(v.args)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.want, got, v.msg)
	}
}

func TestRequote_RejectsMixedQuotes(t *testing.T) {
	_, err := requote([]string{"geocode", "db", `it's the "Spot"`})
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ParseError, gnErr.Code)
}

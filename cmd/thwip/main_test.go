package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"config", "prefs", "api"} {
		require.NotNil(t, root.PersistentFlags().Lookup(name), "persistent flag %s", name)
	}
	require.NotNil(t, root.Flags().Lookup("path"))

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.Equal(t, "serve", serve.Name())
	require.NotNil(t, serve.Flags().Lookup("listen"))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"extra"})
	require.Error(t, root.Execute())
}

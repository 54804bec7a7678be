package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRestoresSession(t *testing.T) {
	require.False(t, restoresSession("login"))
	for _, cmd := range []string{"logout", "whoami", "refresh", "jobs", "guard"} {
		require.True(t, restoresSession(cmd), cmd)
	}
}

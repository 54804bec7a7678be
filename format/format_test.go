package format_test

import (
	"testing"

	"github.com/jrsteele09/go-marketplace-client/format"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	require.Equal(t, "Ksh 1,234.50", format.Amount("1234.5"))
	require.Equal(t, "Ksh 0.00", format.Amount("not a number"))
	require.Equal(t, "Ksh 1,000,000.00", format.Amount(1000000))
	require.Equal(t, "Ksh 12.35", format.Amount(12.346))
	require.Equal(t, "-Ksh 50.00", format.Amount(int64(-50)))
}

func TestFileSize(t *testing.T) {
	require.Equal(t, "0 B", format.FileSize(-1))
	require.Equal(t, "1.5 kB", format.FileSize(1500))
}

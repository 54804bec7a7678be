package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-marketplace-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	require.Equal(t, "https://api.example.com/jobs/list/", utils.JoinURL("https://api.example.com/", "/jobs/list/"))
	require.Equal(t, "https://api.example.com/bookmarks/a/add/", utils.JoinURL("https://api.example.com", "bookmarks/a/add/"))
	require.Equal(t, "https://pay.example.com/x", utils.JoinURL("https://api.example.com", "https://pay.example.com/x"))
	require.Equal(t, "/jobs/", utils.JoinURL("", "/jobs/"))
}

func TestMediaURL(t *testing.T) {
	require.Equal(t, "", utils.MediaURL("https://media.example.com", ""))
	require.Equal(t, "https://media.example.com/pics/a.png", utils.MediaURL("https://media.example.com", "/pics/a.png"))
	require.Equal(t, "https://cdn.example.com/a.png", utils.MediaURL("https://media.example.com", "https://cdn.example.com/a.png"))
	require.Equal(t, 3, utils.Value(utils.Ptr(3)))
	require.Equal(t, "", utils.Value[string](nil))
}

package channels_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-postlogin-service/channels"
)

func TestStaticRepo_Resolve(t *testing.T) {
	repo := channels.NewStaticRepo()

	t.Run("sme channel", func(t *testing.T) {
		channel, err := repo.Resolve("sme")
		require.NoError(t, err)
		require.Equal(t, "SME", channel.PostLoginBU)
	})

	t.Run("numeric id", func(t *testing.T) {
		channel, err := repo.Resolve("1")
		require.NoError(t, err)
		require.Equal(t, "SME", channel.PostLoginBU)
	})

	t.Run("retail channel", func(t *testing.T) {
		channel, err := repo.Resolve("retail")
		require.NoError(t, err)
		require.Equal(t, "RETAIL", channel.PostLoginBU)
	})

	t.Run("unknown channel", func(t *testing.T) {
		_, err := repo.Resolve("unknown")
		require.ErrorIs(t, err, channels.ErrNotFound)
	})
}

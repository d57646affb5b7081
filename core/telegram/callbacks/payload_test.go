package callbacks

import (
	"testing"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type cbContext struct {
	tele.Context
	data string
	none bool
}

func (c cbContext) Callback() *tele.Callback {
	if c.none {
		return nil
	}
	return &tele.Callback{Data: c.data}
}

func TestArgsSplitsPayload(t *testing.T) {
	require.Equal(t, []string{"42", "seller", "5"}, Args(cbContext{data: "42|seller|5"}))
	require.Equal(t, []string{"42"}, Args(cbContext{data: "42"}))
	require.Nil(t, Args(cbContext{data: ""}))
	require.Nil(t, Args(cbContext{none: true}))
}

func TestIDParsesFirstField(t *testing.T) {
	id, ok := ID(cbContext{data: "17|buyer"})
	require.True(t, ok)
	require.Equal(t, int64(17), id)

	id, ok = ID(cbContext{data: " 9 "})
	require.True(t, ok)
	require.Equal(t, int64(9), id)

	_, ok = ID(cbContext{data: "0"})
	require.False(t, ok)
	_, ok = ID(cbContext{data: "abc|5"})
	require.False(t, ok)
	_, ok = ID(cbContext{none: true})
	require.False(t, ok)
}

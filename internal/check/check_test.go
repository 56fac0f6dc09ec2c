package check

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag    string
		value  any
		expErr string
	}{
		{tag: "email", value: "someone@example.com"},
		{tag: "email", value: "nobody", expErr: "`nobody` is not a valid email"},
		{tag: "min=3", value: "ab", expErr: "`ab` is not a valid min"},
		{tag: "gte=1,lte=10", value: int64(4)},
		{tag: "lte=10", value: int64(40), expErr: "`40` is not a valid lte"},
	}

	for _, test := range tests {
		err := New(nil, test.tag).Check("value", test.value)
		if test.expErr == "" {
			require.NoError(t, err, test.tag)
			continue
		}
		require.EqualError(t, err, test.expErr)
	}
}

func TestCheckInvalidTag(t *testing.T) {
	t.Parallel()

	err := New(nil, "notatag").Check("value", "x")
	require.ErrorIs(t, err, ErrInvalidTag)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestSameParty_ByRegistrationNumber(t *testing.T) {
	a := Party{BizNo: strp("124-86-12345"), Name: strp("대박식자재유통")}
	b := Party{BizNo: strp("124-86-12345"), Name: strp("대박 식자재 유통(주)")}
	require.True(t, SameParty(a, b))

	c := Party{BizNo: strp("111-22-33333"), Name: strp("대박식자재유통")}
	require.False(t, SameParty(a, c)) // regNo wins over matching names
}

func TestSameParty_FallsBackToName(t *testing.T) {
	a := Party{Name: strp("대박식자재유통")}
	b := Party{BizNo: strp(""), Name: strp("대박식자재유통")}
	require.True(t, SameParty(a, b))

	require.False(t, SameParty(Party{}, Party{}))
}

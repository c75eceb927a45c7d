package utils

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepairJSON_WellFormedPassesThrough(t *testing.T) {
	in := `{"issueDate":"2026-08-31","items":[{"name":"a","qty":2}]}`
	out, err := RepairJSON(in)
	require.NoError(t, err)
	require.JSONEq(t, in, string(out))
}

func TestRepairJSON_StripsCodeFences(t *testing.T) {
	in := "```json\n{\"name\":\"a\"}\n```"
	out, err := RepairJSON(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"a"}`, string(out))
}

func TestRepairJSON_ClosesTruncatedStructures(t *testing.T) {
	out, err := RepairJSON(`{"items":[{"name":"a"`)
	require.NoError(t, err)

	var v struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(out, &v))
	require.Len(t, v.Items, 1)
	require.Equal(t, "a", v.Items[0].Name)
}

func TestRepairJSON_ClosesTruncatedArray(t *testing.T) {
	out, err := RepairJSON(`{"items":[1,2,3`)
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[1,2,3]}`, string(out))
}

func TestRepairJSON_CollapsesRunawayDigits(t *testing.T) {
	in := `{"qty":` + strings.Repeat("1", 20) + `}`
	out, err := RepairJSON(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"qty":1}`, string(out))
}

func TestRepairJSON_KeepsDigitRunsBelowThreshold(t *testing.T) {
	long := strings.Repeat("7", 15) // one below the collapse threshold
	out, err := RepairJSON(`{"amount":` + long + `}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"amount":`+long+`}`, string(out))
}

func TestRepairJSON_BracesInsideStringsDoNotConfuseRepair(t *testing.T) {
	in := `{"memo":"open { and [ stay text","qty":1}`
	out, err := RepairJSON(in)
	require.NoError(t, err)
	require.JSONEq(t, in, string(out))

	// ...even when the text is also truncated afterwards
	out, err = RepairJSON(`{"memo":"a } b ] c","items":[`)
	require.NoError(t, err)
	require.JSONEq(t, `{"memo":"a } b ] c","items":[]}`, string(out))
}

func TestRepairJSON_EscapedQuotesInsideStrings(t *testing.T) {
	out, err := RepairJSON(`{"memo":"he said \"hi\"","items":[{"name":"a"`)
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal(out, &v))
	require.Equal(t, `he said "hi"`, v["memo"])
}

func TestRepairJSON_UnrepairableFails(t *testing.T) {
	_, err := RepairJSON("정상적인 JSON이 아닙니다")
	require.Error(t, err)
}

package jsonwire_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/jsonwire"
)

type item struct {
	Name  string   `json:"Name"`
	Value int      `json:"Value"`
	Tags  []string `json:"Tags"`
}

type order struct {
	ID    string  `json:"id"`
	Items []item  `json:"items"`
	Note  *string `json:"note"`
}

func TestSerialize_OmitsNullMembersByDefault(t *testing.T) {
	doc, err := jsonwire.New[item](jsonwire.Compact()).Serialize(&item{Name: "Test", Value: 42})
	require.NoError(t, err)
	require.Equal(t, `{"Name":"Test","Value":42}`, doc.String())
	require.NotContains(t, doc.String(), "Tags")
}

func TestSerialize_KeepNulls(t *testing.T) {
	a := jsonwire.New[item](jsonwire.Compact(), jsonwire.KeepNulls())
	doc, err := a.Serialize(&item{Name: "Test", Value: 42})
	require.NoError(t, err)
	require.Equal(t, `{"Name":"Test","Value":42,"Tags":null}`, doc.String())
}

func TestSerialize_Indent(t *testing.T) {
	doc, err := jsonwire.New[item]().Serialize(&item{Name: "a", Tags: []string{"x"}})
	require.NoError(t, err)
	want := "{\n  \"Name\": \"a\",\n  \"Value\": 0,\n  \"Tags\": [\n    \"x\"\n  ]\n}"
	require.Equal(t, want, doc.String())
}

func TestSerialize_NestedNulls(t *testing.T) {
	in := &order{ID: "o1", Items: []item{{Name: "a"}, {Name: "b", Tags: []string{}}}}
	doc, err := jsonwire.New[order](jsonwire.Compact()).Serialize(in)
	require.NoError(t, err)
	require.Equal(t, `{"id":"o1","items":[{"Name":"a","Value":0},{"Name":"b","Value":0,"Tags":[]}]}`, doc.String())
}

func TestStripNulls(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"flat", `{"a":1,"b":null,"c":"x"}`, `{"a":1,"c":"x"}`},
		{"order kept", `{"z":true,"n":null,"a":false}`, `{"z":true,"a":false}`},
		{"all null", `{"a":null,"b":null}`, `{}`},
		{"array elements kept", `[null,{"a":null},1]`, `[null,{},1]`},
		{"nested", `{"o":{"p":null,"q":[{"r":null,"s":1.5}]}}`, `{"o":{"q":[{"s":1.5}]}}`},
		{"escapes", `{"k\"ey":"vé","x":null}`, `{"k\"ey":"vé"}`},
		{"scalar", `null`, `null`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jsonwire.StripNulls([]byte(tc.in))
			require.NoError(t, err)
			require.Equal(t, tc.want, string(got))
		})
	}
}

func TestDeserialize_CaseInsensitiveByDefault(t *testing.T) {
	v, err := jsonwire.New[item]().Deserialize([]byte(`{"name":"lower","VALUE":7}`))
	require.NoError(t, err)
	require.Equal(t, &item{Name: "lower", Value: 7}, v)
}

func TestDeserialize_CaseSensitive(t *testing.T) {
	a := jsonwire.New[order](jsonwire.CaseSensitive())
	v, err := a.Deserialize([]byte(`{"ID":"wrong","id":"right","Items":[{"Name":"x"}],"items":[{"name":"y","Name":"z","extra":1}]}`))
	require.NoError(t, err)
	want := &order{ID: "right", Items: []item{{Name: "z"}}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserialize_Errors(t *testing.T) {
	a := jsonwire.New[item]()

	_, err := a.Deserialize([]byte(`{"Name":}`))
	var fe *wirekit.FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, jsonwire.FormatName, fe.Format)

	_, err = a.Deserialize([]byte(`{"Tags":"not a list"}`))
	require.True(t, wirekit.IsMappingError(err), "got %v", err)

	_, err = a.Deserialize([]byte(`[1,2]`))
	require.True(t, wirekit.IsMappingError(err), "got %v", err)
}

func TestDeserialize_TopLevelNullIsAbsent(t *testing.T) {
	a := jsonwire.New[item]()
	for _, in := range []string{"null", " null ", "\nnull\t"} {
		v, err := a.Deserialize([]byte(in))
		require.NoError(t, err)
		require.Nil(t, v)

		v, ok := a.TryDeserialize([]byte(in))
		require.False(t, ok)
		require.Nil(t, v)
		require.False(t, a.IsValid([]byte(in)))
	}

	// null members are still ordinary values
	v, err := a.Deserialize([]byte(`{"Name":null,"Tags":null}`))
	require.NoError(t, err)
	require.Equal(t, &item{}, v)
}

func TestCodec_Name(t *testing.T) {
	require.Equal(t, "json", jsonwire.Codec{}.Name())
}

package wirekit_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/jsonwire"
	"github.com/reoring/wirekit/xmlwire"
)

type sample struct {
	XMLName xml.Name `xml:"Sample" json:"-"`
	Name    string   `xml:"Name" json:"Name"`
	Value   int      `xml:"Value" json:"Value"`
	Tags    []string `xml:"Tags>Tag,omitempty" json:"Tags"`
}

var ignoreXMLName = cmpopts.IgnoreTypes(xml.Name{})

func adapters() map[string]struct {
	serialize   func(*sample) (wirekit.Document, error)
	deserialize func([]byte) (*sample, error)
	clone       func(*sample) (*sample, error)
	try         func([]byte) (*sample, bool)
} {
	x := xmlwire.New[sample]()
	js := jsonwire.New[sample]()
	type ops = struct {
		serialize   func(*sample) (wirekit.Document, error)
		deserialize func([]byte) (*sample, error)
		clone       func(*sample) (*sample, error)
		try         func([]byte) (*sample, bool)
	}
	return map[string]ops{
		xmlwire.FormatName: {
			serialize:   func(v *sample) (wirekit.Document, error) { return x.Serialize(v) },
			deserialize: func(b []byte) (*sample, error) { return x.Deserialize(b) },
			clone:       func(v *sample) (*sample, error) { return x.Clone(v) },
			try:         func(b []byte) (*sample, bool) { return x.TryDeserialize(b) },
		},
		jsonwire.FormatName: {
			serialize:   func(v *sample) (wirekit.Document, error) { return js.Serialize(v) },
			deserialize: func(b []byte) (*sample, error) { return js.Deserialize(b) },
			clone:       func(v *sample) (*sample, error) { return js.Clone(v) },
			try:         func(b []byte) (*sample, bool) { return js.TryDeserialize(b) },
		},
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	in := &sample{Name: "Test", Value: 42, Tags: []string{"a", "b"}}
	for format, a := range adapters() {
		t.Run(format, func(t *testing.T) {
			doc, err := a.serialize(in)
			require.NoError(t, err)
			require.Equal(t, format, doc.Format())
			require.False(t, doc.IsZero())

			out, err := a.deserialize(doc.Bytes())
			require.NoError(t, err)
			if diff := cmp.Diff(in, out, ignoreXMLName); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapter_CloneIsDeepAndIdempotent(t *testing.T) {
	in := &sample{Name: "Test", Value: 42, Tags: []string{"a"}}
	for format, a := range adapters() {
		t.Run(format, func(t *testing.T) {
			c1, err := a.clone(in)
			require.NoError(t, err)
			require.NotSame(t, in, c1)
			c1.Tags[0] = "changed"
			require.Equal(t, "a", in.Tags[0])

			c2, err := a.clone(c1)
			require.NoError(t, err)
			if diff := cmp.Diff(c1, c2, ignoreXMLName); diff != "" {
				t.Fatalf("clone of clone differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapter_NilInput(t *testing.T) {
	for format, a := range adapters() {
		t.Run(format, func(t *testing.T) {
			_, err := a.serialize(nil)
			require.ErrorIs(t, err, wirekit.ErrNilInput)

			_, err = a.clone(nil)
			require.ErrorIs(t, err, wirekit.ErrNilInput)
		})
	}
}

func TestAdapter_BlankInputIsAbsent(t *testing.T) {
	for format, a := range adapters() {
		t.Run(format, func(t *testing.T) {
			for _, in := range []string{"", "   ", "\n\t "} {
				v, err := a.deserialize([]byte(in))
				require.NoError(t, err)
				require.Nil(t, v)

				v, ok := a.try([]byte(in))
				require.False(t, ok)
				require.Nil(t, v)
			}
		})
	}
}

func TestAdapter_JSONNullIsAbsent(t *testing.T) {
	a := jsonwire.New[sample]()
	v, err := a.Deserialize([]byte(" null "))
	require.NoError(t, err)
	require.Nil(t, v)
	require.False(t, a.IsValid([]byte("null")))

	// markup has no null literal
	_, err = xmlwire.New[sample]().Deserialize([]byte("null"))
	require.True(t, wirekit.IsFormatError(err), "got %T: %v", err, err)
}

func TestAdapter_MalformedInputIsFormatError(t *testing.T) {
	cases := map[string][]string{
		xmlwire.FormatName: {
			"<Sample><Name>x</Sample>",
			"<Sample><Name>a</Name></Sample>trailing junk",
			"<Sample/><Other/>",
		},
		jsonwire.FormatName: {`{"Name": "x",`},
	}
	for format, a := range adapters() {
		t.Run(format, func(t *testing.T) {
			for _, in := range cases[format] {
				_, err := a.deserialize([]byte(in))
				require.Error(t, err, in)
				require.True(t, wirekit.IsFormatError(err), "%s: got %T: %v", in, err, err)
				require.False(t, wirekit.IsMappingError(err))

				var fe *wirekit.FormatError
				require.ErrorAs(t, err, &fe)
				require.Equal(t, format, fe.Format)

				_, ok := a.try([]byte(in))
				require.False(t, ok)
			}
		})
	}
}

func TestAdapter_WellFormedButUnmappableIsMappingError(t *testing.T) {
	cases := map[string]string{
		xmlwire.FormatName:  "<Sample><Value>many</Value></Sample>",
		jsonwire.FormatName: `{"Value": "many"}`,
	}
	for format, a := range adapters() {
		t.Run(format, func(t *testing.T) {
			_, err := a.deserialize([]byte(cases[format]))
			require.True(t, wirekit.IsMappingError(err), "got %T: %v", err, err)
			require.False(t, wirekit.IsFormatError(err))

			var me *wirekit.MappingError
			require.ErrorAs(t, err, &me)
			require.Equal(t, "sample", me.Type.Name())
		})
	}
}

func TestAdapter_TryDeserializeNeverPanics(t *testing.T) {
	a := jsonwire.New[map[string]int]()
	for _, in := range []string{"null", "[]", `{"a":"b"}`, "\x00", strings.Repeat("[", 64)} {
		require.NotPanics(t, func() { a.TryDeserialize([]byte(in)) })
	}
	require.True(t, a.IsValid([]byte(`{"a":1}`)))
	require.False(t, a.IsValid([]byte(`{"a":`)))
}

func TestAdapter_Options(t *testing.T) {
	a := jsonwire.New[sample](jsonwire.Compact())
	require.Equal(t, jsonwire.FormatName, a.Format())
	require.Equal(t, jsonwire.Options{OmitNull: true, CaseInsensitive: true}, a.Options())
	require.Equal(t, jsonwire.Options{CaseInsensitive: true}, a.Options(jsonwire.KeepNulls()))
	// per-call options never leak into defaults
	require.True(t, a.Options().OmitNull)

	doc, err := a.Serialize(&sample{Name: "n"}, jsonwire.KeepNulls())
	require.NoError(t, err)
	require.Equal(t, `{"Name":"n","Value":0,"Tags":null}`, doc.String())
}

func TestDocument(t *testing.T) {
	data := []byte("<a/>")
	d := wirekit.NewDocument("xml", data)
	data[0] = 'X'
	require.Equal(t, "<a/>", d.String())
	require.Equal(t, 4, d.Len())

	b := d.Bytes()
	b[0] = 'Y'
	require.Equal(t, "<a/>", d.String())

	require.True(t, wirekit.Document{}.IsZero())
}

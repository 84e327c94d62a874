package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/wirekit"
)

const shipmentXML = `<?xml version="1.0" encoding="UTF-8"?>
<UniversalShipment version="1.1">
  <Shipment>
    <WayBillNumber>WB-1001</WayBillNumber>
    <ContainerCount>2</ContainerCount>
  </Shipment>
</UniversalShipment>`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestConvert_XMLToJSONAndBack(t *testing.T) {
	in := writeFile(t, "shipment.xml", shipmentXML)

	out, err := run(t, "convert", in)
	require.NoError(t, err)
	require.Contains(t, out, `"WayBillNumber"`)
	require.Contains(t, out, `"WB-1001"`)
	require.Contains(t, out, `"version"`)

	jsonPath := writeFile(t, "shipment.json", out)
	out, err = run(t, "convert", "--kind", "ShipmentData", jsonPath)
	require.NoError(t, err)
	require.Contains(t, out, `<UniversalShipment version="1.1">`)
	require.Contains(t, out, `<WayBillNumber>WB-1001</WayBillNumber>`)
}

func TestConvert_DefaultTargetFollowsInputFormat(t *testing.T) {
	in := writeFile(t, "shipment.xml", shipmentXML)

	// --kind on markup input only asserts the kind
	out, err := run(t, "convert", "--kind", "ShipmentData", in)
	require.NoError(t, err)
	require.Contains(t, out, `"WayBillNumber"`)
	require.NotContains(t, out, "<UniversalShipment")

	out, err = run(t, "convert", "--kind", "ShipmentData", "--to", "xml", in)
	require.NoError(t, err)
	require.Contains(t, out, `<WayBillNumber>WB-1001</WayBillNumber>`)
}

func TestConvert_JSONNullIsEmpty(t *testing.T) {
	in := writeFile(t, "null.json", " null\n")
	_, err := run(t, "convert", "--kind", "ShipmentData", in)
	require.ErrorIs(t, err, wirekit.ErrNilInput)
}

func TestConvert_JSONNeedsKind(t *testing.T) {
	in := writeFile(t, "shipment.json", `{"Shipment":{}}`)
	_, err := run(t, "convert", in)
	require.ErrorIs(t, err, errKindRequired)

	_, err = run(t, "convert", "--kind", "Nope", in)
	require.ErrorIs(t, err, errUnknownKind)
}

func TestConvert_UnknownElement(t *testing.T) {
	in := writeFile(t, "other.xml", `<Other/>`)
	_, err := run(t, "convert", in)
	require.ErrorIs(t, err, errUnknownKind)
}

func TestWrapInspectUnwrap(t *testing.T) {
	in := writeFile(t, "shipment.xml", shipmentXML)
	envPath := filepath.Join(t.TempDir(), "env.xml")

	_, err := run(t, "wrap", "-o", envPath, in)
	require.NoError(t, err)

	out, err := run(t, "inspect", envPath)
	require.NoError(t, err)
	require.Contains(t, out, "has data: true")
	require.Contains(t, out, "element:  UniversalShipment")
	require.Contains(t, out, "kind:     ShipmentData")
	require.Contains(t, out, "type:     UniversalShipmentData")

	out, err = run(t, "unwrap", "--to", "json", envPath)
	require.NoError(t, err)
	require.Contains(t, out, `"WB-1001"`)
}

func TestInspect_EmptyEnvelope(t *testing.T) {
	in := writeFile(t, "env.xml", `<Interchange><Body/></Interchange>`)
	out, err := run(t, "inspect", in)
	require.NoError(t, err)
	require.Contains(t, out, "has data: false")
	require.NotContains(t, out, "kind:")
}

func TestUnwrap_UnknownPayloadIsWrittenRaw(t *testing.T) {
	in := writeFile(t, "env.xml", `<Interchange><Body><Custom a="1"><X>y</X></Custom></Body></Interchange>`)
	out, err := run(t, "unwrap", in)
	require.NoError(t, err)
	require.Contains(t, out, `<Custom a="1"><X>y</X></Custom>`)
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.xml", shipmentXML)
	bad := writeFile(t, "bad.xml", `<UniversalShipment version="one"/>`)

	out, err := run(t, "validate", good)
	require.NoError(t, err)
	require.Contains(t, out, "ok (ShipmentData)")

	out, err = run(t, "validate", good, bad)
	require.ErrorIs(t, err, errInvalid)
	require.Contains(t, out, "2 error(s)")
	require.Contains(t, out, "  version:")
	require.Contains(t, out, "  Shipment:")
}

func TestArchive(t *testing.T) {
	in := writeFile(t, "shipment.xml", shipmentXML)
	db := filepath.Join(t.TempDir(), "archive.db")

	_, err := run(t, "archive", "--db", db, "put", "--format", "json", "shipments", "WB-1001", in)
	require.NoError(t, err)

	out, err := run(t, "archive", "--db", db, "ls", "shipments")
	require.NoError(t, err)
	require.Equal(t, "WB-1001\n", out)

	out, err = run(t, "archive", "--db", db, "get", "shipments", "WB-1001")
	require.NoError(t, err)
	require.Contains(t, out, `"WB-1001"`)

	_, err = run(t, "archive", "--db", db, "rm", "shipments", "WB-1001")
	require.NoError(t, err)
	out, err = run(t, "archive", "--db", db, "ls", "shipments")
	require.NoError(t, err)
	require.Empty(t, out)
}

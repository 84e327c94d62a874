package universal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/wirekit/universal"
	"github.com/reoring/wirekit/validation"
)

func props(res validation.Result) []string {
	var out []string
	for _, e := range res.Errors {
		out = append(out, e.PropertyName)
	}
	return out
}

func TestValidate_Dispatch(t *testing.T) {
	cases := []struct {
		name  string
		in    any
		props []string
	}{
		{"shipment ok", &universal.UniversalShipmentData{Version: "1.1", Shipment: &universal.Shipment{}}, nil},
		{"shipment missing body and bad version", &universal.UniversalShipmentData{Version: "v1"}, []string{"version", "Shipment"}},
		{"negative containers", &universal.UniversalShipmentData{Shipment: &universal.Shipment{ContainerCount: -1}}, []string{"Shipment.ContainerCount"}},
		{"bad organization email", &universal.UniversalShipmentData{Shipment: &universal.Shipment{
			Organizations: []universal.OrganizationAddress{{Email: "ok@example.com"}, {Email: "nope"}},
		}}, []string{"Shipment.OrganizationAddressCollection"}},
		{"schedule legs out of order", &universal.UniversalScheduleData{Schedule: &universal.Schedule{
			Legs: []universal.ScheduleLeg{{Sequence: 1}, {Sequence: 3}},
		}}, []string{"Schedule.ScheduleLegCollection"}},
		{"schedule missing", &universal.UniversalScheduleData{}, []string{"Schedule"}},
		{"ledger too long", &universal.UniversalTransactionData{TransactionInfo: &universal.TransactionInfo{Ledger: "ARAP"}}, []string{"TransactionInfo.Ledger"}},
		{"transaction ok", &universal.UniversalTransactionData{Version: "2", TransactionInfo: &universal.TransactionInfo{Ledger: "AR"}}, nil},
		{"batch missing", &universal.UniversalTransactionBatchData{}, []string{"TransactionBatch"}},
		{"shipment request missing", &universal.UniversalShipmentRequestData{}, []string{"ShipmentRequest"}},
		{"batch request ok", &universal.UniversalTransactionBatchRequestData{TransactionBatchRequest: &universal.TransactionBatchRequest{}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := universal.Validate(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.props == nil, res.IsValid, "%v", res.Errors)
			require.Equal(t, tc.props, props(res))
		})
	}
}

func TestValidate_OrganizationEmailMessage(t *testing.T) {
	res, err := universal.Validate(&universal.UniversalShipmentData{Shipment: &universal.Shipment{
		Organizations: []universal.OrganizationAddress{{Email: "@x"}},
	}})
	require.NoError(t, err)
	require.Equal(t, "organization 0: The Email field is not a valid e-mail address.", res.Errors[0].Message)
}

func TestValidate_UnknownType(t *testing.T) {
	_, err := universal.Validate(&struct{}{})
	require.Error(t, err)
}

func TestValidate_NilPayload(t *testing.T) {
	var p *universal.UniversalShipmentData
	_, err := universal.Validate(p)
	require.Error(t, err)
}

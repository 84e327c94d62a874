package universal

import (
	"fmt"

	"github.com/reoring/wirekit/validation"
)

const versionPattern = `\d+(\.\d+)*`

func (UniversalShipmentData) Constraints() validation.Set[UniversalShipmentData] {
	return validation.Set[UniversalShipmentData]{
		validation.Pattern("version", func(d *UniversalShipmentData) string { return d.Version }, versionPattern),
		validation.Required("Shipment", func(d *UniversalShipmentData) any { return d.Shipment }),
		validation.Func("Shipment.ContainerCount", func(d *UniversalShipmentData) string {
			if d.Shipment != nil && d.Shipment.ContainerCount < 0 {
				return "container count must not be negative"
			}
			return ""
		}),
		validation.Func("Shipment.OrganizationAddressCollection", func(d *UniversalShipmentData) string {
			if d.Shipment == nil {
				return ""
			}
			for i, org := range d.Shipment.Organizations {
				if org.Email == "" {
					continue
				}
				if res, _ := validation.New(organizationEmail).Validate(&org); !res.IsValid {
					return fmt.Sprintf("organization %d: %s", i, res.Errors[0].Message)
				}
			}
			return ""
		}),
	}
}

var organizationEmail = validation.Email("Email", func(o *OrganizationAddress) string { return o.Email })

func (UniversalScheduleData) Constraints() validation.Set[UniversalScheduleData] {
	return validation.Set[UniversalScheduleData]{
		validation.Pattern("version", func(d *UniversalScheduleData) string { return d.Version }, versionPattern),
		validation.Required("Schedule", func(d *UniversalScheduleData) any { return d.Schedule }),
		validation.Func("Schedule.ScheduleLegCollection", func(d *UniversalScheduleData) string {
			if d.Schedule == nil {
				return ""
			}
			for i, leg := range d.Schedule.Legs {
				if leg.Sequence != i+1 {
					return fmt.Sprintf("leg %d has LegOrder %d", i+1, leg.Sequence)
				}
			}
			return ""
		}),
	}
}

func (UniversalTransactionData) Constraints() validation.Set[UniversalTransactionData] {
	return validation.Set[UniversalTransactionData]{
		validation.Pattern("version", func(d *UniversalTransactionData) string { return d.Version }, versionPattern),
		validation.Required("TransactionInfo", func(d *UniversalTransactionData) any { return d.TransactionInfo }),
		validation.StringLength("TransactionInfo.Ledger", func(d *UniversalTransactionData) string {
			if d.TransactionInfo == nil {
				return ""
			}
			return d.TransactionInfo.Ledger
		}, 2, 3),
	}
}

func (UniversalTransactionBatchData) Constraints() validation.Set[UniversalTransactionBatchData] {
	return validation.Set[UniversalTransactionBatchData]{
		validation.Pattern("version", func(d *UniversalTransactionBatchData) string { return d.Version }, versionPattern),
		validation.Required("TransactionBatch", func(d *UniversalTransactionBatchData) any { return d.TransactionBatch }),
		validation.MaxLength("TransactionBatch.TransactionCollection", func(d *UniversalTransactionBatchData) []TransactionInfo {
			if d.TransactionBatch == nil {
				return nil
			}
			return d.TransactionBatch.Transactions
		}, 1000),
	}
}

func (UniversalShipmentRequestData) Constraints() validation.Set[UniversalShipmentRequestData] {
	return validation.Set[UniversalShipmentRequestData]{
		validation.Pattern("version", func(d *UniversalShipmentRequestData) string { return d.Version }, versionPattern),
		validation.Required("ShipmentRequest", func(d *UniversalShipmentRequestData) any { return d.ShipmentRequest }),
	}
}

func (UniversalTransactionBatchRequestData) Constraints() validation.Set[UniversalTransactionBatchRequestData] {
	return validation.Set[UniversalTransactionBatchRequestData]{
		validation.Pattern("version", func(d *UniversalTransactionBatchRequestData) string { return d.Version }, versionPattern),
		validation.Required("TransactionBatchRequest", func(d *UniversalTransactionBatchRequestData) any { return d.TransactionBatchRequest }),
	}
}

// Validate validates any of the six root types with its declared constraints.
// Other types fail with an error.
func Validate(v any) (validation.Result, error) {
	switch d := v.(type) {
	case *UniversalShipmentData:
		return validation.Validate(d)
	case *UniversalScheduleData:
		return validation.Validate(d)
	case *UniversalTransactionData:
		return validation.Validate(d)
	case *UniversalTransactionBatchData:
		return validation.Validate(d)
	case *UniversalShipmentRequestData:
		return validation.Validate(d)
	case *UniversalTransactionBatchRequestData:
		return validation.Validate(d)
	}
	return validation.Result{}, fmt.Errorf("universal: no constraints for %T", v)
}

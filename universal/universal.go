// Package universal holds the data-binding types of the six Universal payload
// kinds carried by an interchange envelope. Each root type names its schema
// element through XMLName; the same name is what the envelope registry uses
// to identify the payload.
package universal

import "encoding/xml"

// Element names of the six root types.
const (
	ShipmentElement                = "UniversalShipment"
	ScheduleElement                = "UniversalSchedule"
	TransactionElement             = "UniversalTransaction"
	TransactionBatchElement        = "UniversalTransactionBatch"
	ShipmentRequestElement         = "UniversalShipmentRequest"
	TransactionBatchRequestElement = "UniversalTransactionBatchRequest"
)

// CodeDescription is the common code/description pair.
type CodeDescription struct {
	Code        string `xml:"Code,omitempty" json:"Code,omitempty"`
	Description string `xml:"Description,omitempty" json:"Description,omitempty"`
}

// DataTarget identifies the record a message applies to.
type DataTarget struct {
	Type string `xml:"Type,omitempty" json:"Type,omitempty"`
	Key  string `xml:"Key,omitempty" json:"Key,omitempty"`
}

// DataContext carries routing information shared by all payloads.
type DataContext struct {
	DataTargets    []DataTarget      `xml:"DataTargetCollection>DataTarget,omitempty" json:"DataTargetCollection,omitempty"`
	Company        *CodeDescription  `xml:"Company,omitempty" json:"Company,omitempty"`
	EnterpriseID   string            `xml:"EnterpriseID,omitempty" json:"EnterpriseID,omitempty"`
	ServerID       string            `xml:"ServerID,omitempty" json:"ServerID,omitempty"`
	EventType      *CodeDescription  `xml:"EventType,omitempty" json:"EventType,omitempty"`
	TriggerDate    string            `xml:"TriggerDate,omitempty" json:"TriggerDate,omitempty"`
	RecipientRoles []CodeDescription `xml:"RecipientRoleCollection>RecipientRole,omitempty" json:"RecipientRoleCollection,omitempty"`
}

// OrganizationAddress is a party attached to a shipment.
type OrganizationAddress struct {
	AddressType      string `xml:"AddressType,omitempty" json:"AddressType,omitempty"`
	OrganizationCode string `xml:"OrganizationCode,omitempty" json:"OrganizationCode,omitempty"`
	CompanyName      string `xml:"CompanyName,omitempty" json:"CompanyName,omitempty"`
	Email            string `xml:"Email,omitempty" json:"Email,omitempty"`
	Country          string `xml:"Country>Code,omitempty" json:"Country,omitempty"`
}

// Shipment is the body of a UniversalShipment.
type Shipment struct {
	DataContext    *DataContext          `xml:"DataContext,omitempty" json:"DataContext,omitempty"`
	WayBillNumber  string                `xml:"WayBillNumber,omitempty" json:"WayBillNumber,omitempty"`
	TransportMode  *CodeDescription      `xml:"TransportMode,omitempty" json:"TransportMode,omitempty"`
	ContainerCount int                   `xml:"ContainerCount,omitempty" json:"ContainerCount,omitempty"`
	TotalWeight    float64               `xml:"TotalWeight,omitempty" json:"TotalWeight,omitempty"`
	Organizations  []OrganizationAddress `xml:"OrganizationAddressCollection>OrganizationAddress,omitempty" json:"OrganizationAddressCollection,omitempty"`
	SubShipments   []Shipment            `xml:"SubShipmentCollection>SubShipment,omitempty" json:"SubShipmentCollection,omitempty"`
}

// UniversalShipmentData is the UniversalShipment root.
type UniversalShipmentData struct {
	XMLName  xml.Name  `xml:"UniversalShipment" json:"-"`
	Version  string    `xml:"version,attr,omitempty" json:"version,omitempty"`
	Shipment *Shipment `xml:"Shipment" json:"Shipment"`
}

// ScheduleLeg is one leg of a sailing schedule.
type ScheduleLeg struct {
	Sequence           int    `xml:"LegOrder" json:"LegOrder"`
	PortOfLoading      string `xml:"PortOfLoading>Code,omitempty" json:"PortOfLoading,omitempty"`
	PortOfDischarge    string `xml:"PortOfDischarge>Code,omitempty" json:"PortOfDischarge,omitempty"`
	EstimatedDeparture string `xml:"EstimatedDeparture,omitempty" json:"EstimatedDeparture,omitempty"`
	EstimatedArrival   string `xml:"EstimatedArrival,omitempty" json:"EstimatedArrival,omitempty"`
}

// Schedule is the body of a UniversalSchedule.
type Schedule struct {
	DataContext  *DataContext  `xml:"DataContext,omitempty" json:"DataContext,omitempty"`
	VesselName   string        `xml:"VesselName,omitempty" json:"VesselName,omitempty"`
	VoyageNumber string        `xml:"VoyageFlightNo,omitempty" json:"VoyageFlightNo,omitempty"`
	Legs         []ScheduleLeg `xml:"ScheduleLegCollection>ScheduleLeg,omitempty" json:"ScheduleLegCollection,omitempty"`
}

// UniversalScheduleData is the UniversalSchedule root.
type UniversalScheduleData struct {
	XMLName  xml.Name  `xml:"UniversalSchedule" json:"-"`
	Version  string    `xml:"version,attr,omitempty" json:"version,omitempty"`
	Schedule *Schedule `xml:"Schedule" json:"Schedule"`
}

// TransactionInfo is an accounting transaction.
type TransactionInfo struct {
	DataContext       *DataContext     `xml:"DataContext,omitempty" json:"DataContext,omitempty"`
	Number            string           `xml:"Number,omitempty" json:"Number,omitempty"`
	TransactionType   string           `xml:"TransactionType,omitempty" json:"TransactionType,omitempty"`
	Ledger            string           `xml:"Ledger,omitempty" json:"Ledger,omitempty"`
	Currency          *CodeDescription `xml:"LocalCurrency,omitempty" json:"LocalCurrency,omitempty"`
	OutstandingAmount float64          `xml:"OutstandingAmount,omitempty" json:"OutstandingAmount,omitempty"`
	LocalTotal        float64          `xml:"LocalTotal,omitempty" json:"LocalTotal,omitempty"`
}

// UniversalTransactionData is the UniversalTransaction root.
type UniversalTransactionData struct {
	XMLName         xml.Name         `xml:"UniversalTransaction" json:"-"`
	Version         string           `xml:"version,attr,omitempty" json:"version,omitempty"`
	TransactionInfo *TransactionInfo `xml:"TransactionInfo" json:"TransactionInfo"`
}

// TransactionBatch groups transactions posted together.
type TransactionBatch struct {
	DataContext  *DataContext      `xml:"DataContext,omitempty" json:"DataContext,omitempty"`
	BatchNumber  string            `xml:"BatchNumber,omitempty" json:"BatchNumber,omitempty"`
	Transactions []TransactionInfo `xml:"TransactionCollection>Transaction,omitempty" json:"TransactionCollection,omitempty"`
}

// UniversalTransactionBatchData is the UniversalTransactionBatch root.
type UniversalTransactionBatchData struct {
	XMLName          xml.Name          `xml:"UniversalTransactionBatch" json:"-"`
	Version          string            `xml:"version,attr,omitempty" json:"version,omitempty"`
	TransactionBatch *TransactionBatch `xml:"TransactionBatch" json:"TransactionBatch"`
}

// ShipmentRequest asks the receiver for a shipment.
type ShipmentRequest struct {
	DataContext *DataContext `xml:"DataContext,omitempty" json:"DataContext,omitempty"`
}

// UniversalShipmentRequestData is the UniversalShipmentRequest root.
type UniversalShipmentRequestData struct {
	XMLName         xml.Name         `xml:"UniversalShipmentRequest" json:"-"`
	Version         string           `xml:"version,attr,omitempty" json:"version,omitempty"`
	ShipmentRequest *ShipmentRequest `xml:"ShipmentRequest" json:"ShipmentRequest"`
}

// TransactionBatchRequest asks the receiver for a transaction batch.
type TransactionBatchRequest struct {
	DataContext *DataContext `xml:"DataContext,omitempty" json:"DataContext,omitempty"`
	BatchNumber string       `xml:"BatchNumber,omitempty" json:"BatchNumber,omitempty"`
}

// UniversalTransactionBatchRequestData is the UniversalTransactionBatchRequest
// root.
type UniversalTransactionBatchRequestData struct {
	XMLName                 xml.Name                 `xml:"UniversalTransactionBatchRequest" json:"-"`
	Version                 string                   `xml:"version,attr,omitempty" json:"version,omitempty"`
	TransactionBatchRequest *TransactionBatchRequest `xml:"TransactionBatchRequest" json:"TransactionBatchRequest"`
}

package envelope

import (
	"reflect"
	"strconv"

	"github.com/reoring/wirekit/universal"
)

// Kind identifies one of the six payload shapes an envelope can carry.
type Kind int

const (
	ShipmentData Kind = iota + 1
	ScheduleData
	TransactionData
	TransactionBatchData
	ShipmentRequestData
	TransactionBatchRequestData
)

type variant struct {
	name    string
	element string
	typ     reflect.Type
	new     func() any
}

var variants = [...]variant{
	ShipmentData: {
		name:    "ShipmentData",
		element: universal.ShipmentElement,
		typ:     reflect.TypeFor[universal.UniversalShipmentData](),
		new:     func() any { return new(universal.UniversalShipmentData) },
	},
	ScheduleData: {
		name:    "ScheduleData",
		element: universal.ScheduleElement,
		typ:     reflect.TypeFor[universal.UniversalScheduleData](),
		new:     func() any { return new(universal.UniversalScheduleData) },
	},
	TransactionData: {
		name:    "TransactionData",
		element: universal.TransactionElement,
		typ:     reflect.TypeFor[universal.UniversalTransactionData](),
		new:     func() any { return new(universal.UniversalTransactionData) },
	},
	TransactionBatchData: {
		name:    "TransactionBatchData",
		element: universal.TransactionBatchElement,
		typ:     reflect.TypeFor[universal.UniversalTransactionBatchData](),
		new:     func() any { return new(universal.UniversalTransactionBatchData) },
	},
	ShipmentRequestData: {
		name:    "ShipmentRequestData",
		element: universal.ShipmentRequestElement,
		typ:     reflect.TypeFor[universal.UniversalShipmentRequestData](),
		new:     func() any { return new(universal.UniversalShipmentRequestData) },
	},
	TransactionBatchRequestData: {
		name:    "TransactionBatchRequestData",
		element: universal.TransactionBatchRequestElement,
		typ:     reflect.TypeFor[universal.UniversalTransactionBatchRequestData](),
		new:     func() any { return new(universal.UniversalTransactionBatchRequestData) },
	},
}

// byElement is the wire tag to kind lookup. It is the only mechanism used to
// discover what an envelope carries.
var byElement = func() map[string]Kind {
	m := make(map[string]Kind, len(variants))
	for _, k := range Kinds() {
		m[variants[k].element] = k
	}
	return m
}()

// Kinds returns the six kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		ShipmentData,
		ScheduleData,
		TransactionData,
		TransactionBatchData,
		ShipmentRequestData,
		TransactionBatchRequestData,
	}
}

// KindFromElement maps a payload root element name to its kind.
func KindFromElement(element string) (Kind, bool) {
	k, ok := byElement[element]
	return k, ok
}

// KindOf reports the kind of a payload value by its dynamic type.
func KindOf(v any) (Kind, bool) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, k := range Kinds() {
		if variants[k].typ == t {
			return k, true
		}
	}
	return 0, false
}

// Valid reports whether k is one of the six kinds.
func (k Kind) Valid() bool { return k >= ShipmentData && k <= TransactionBatchRequestData }

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return variants[k].name
}

// ElementName returns the schema root element name of k.
func (k Kind) ElementName() string {
	if !k.Valid() {
		return ""
	}
	return variants[k].element
}

// Type returns the concrete payload struct type of k, or nil.
func (k Kind) Type() reflect.Type {
	if !k.Valid() {
		return nil
	}
	return variants[k].typ
}

// New returns a pointer to a zero payload of kind k, or nil.
func (k Kind) New() any {
	if !k.Valid() {
		return nil
	}
	return variants[k].new()
}

// ParseKind accepts a kind name ("ShipmentData") or its element name
// ("UniversalShipment").
func ParseKind(s string) (Kind, bool) {
	if k, ok := KindFromElement(s); ok {
		return k, true
	}
	for _, k := range Kinds() {
		if variants[k].name == s {
			return k, true
		}
	}
	return 0, false
}

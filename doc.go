package wirekit

// Package wirekit provides:
//
// - A generic Adapter[T, O] that serializes, deserializes, clones and
//   persists payload types in one wire format (see xmlwire and jsonwire)
// - Resilient readers (TryDeserialize/IsValid) that report failure through
//   return values instead of errors
// - A typed error model: ErrNilInput, *FormatError, *MappingError,
//   ErrFileNotFound, ErrCloneFailed, ErrCanceled
//
// Design policy:
// - Keep the format-neutral API in the root package; codecs live under
//   xmlwire/ and jsonwire/, the tagged-union envelope under envelope/ and the
//   constraint engine under validation/.
// - Adapters are immutable after construction and safe for concurrent use.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  xa := xmlwire.New[universal.UniversalShipmentData]()
//  doc, err := xa.Serialize(shipment)
//  back, err := xa.Deserialize(doc.Bytes())
//
//  ja := jsonwire.New[universal.UniversalShipmentData]()
//  cp, err := ja.Clone(shipment, jsonwire.KeepNulls())
//  if v, ok := ja.TryDeserialize(untrusted); ok { ... }
//

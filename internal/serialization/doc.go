// Package serialization owns the model protocol shared by every payload type.
//
// Ownership boundary:
// - Parsable / AdditionalDataHolder contracts implemented by models
// - ParseNode / SerializationWriter contracts implemented by wire packages
// - discriminator registry for polymorphic bases
// - content-type factory registries
package serialization

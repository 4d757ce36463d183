// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package diddoc

// Mode selects how collection documents list their verification methods.
type Mode int

const (
	// Embed copies every verification method object.
	Embed Mode = iota
	// ByReference lists only the verification method ids.
	ByReference
)

func (m Mode) String() string {
	if m == ByReference {
		return "reference"
	}
	return "embed"
}

func header(controller string, capacity int) *Document {
	return &Document{
		Context:            []string{ContextDIDCore, ContextJWS2020},
		ID:                 controller,
		VerificationMethod: make([]VerificationMethodRef, 0, capacity),
	}
}

// AssembleSingle builds a document with one embedded JsonWebKey2020 method
// per key, in input order. Method ids are controller#kid with kid verbatim.
func AssembleSingle(controller string, keys []WrappedKey) *Document {
	doc := header(controller, len(keys))
	for _, k := range keys {
		doc.VerificationMethod = append(doc.VerificationMethod, Embedded(VerificationMethod{
			ID:           controller + "#" + k.Kid,
			Type:         TypeJsonWebKey2020,
			Controller:   controller,
			PublicKeyJwk: k.PublicKeyJwk,
		}))
	}
	return doc
}

// AssembleCollection builds a master list from every document in coll, in
// insertion order, and every method of each document, in order. Nothing is
// reordered or deduplicated.
func AssembleCollection(controller string, coll *Collection, mode Mode) *Document {
	doc := header(controller, 0)
	for _, member := range coll.All() {
		for _, ref := range member.VerificationMethod {
			if mode == ByReference {
				doc.VerificationMethod = append(doc.VerificationMethod, Reference(ref.ID()))
				continue
			}
			doc.VerificationMethod = append(doc.VerificationMethod, ref)
		}
	}
	return doc
}

// AssembleCollectionEmbed is AssembleCollection in [Embed] mode.
func AssembleCollectionEmbed(controller string, coll *Collection) *Document {
	return AssembleCollection(controller, coll, Embed)
}

// AssembleCollectionReference is AssembleCollection in [ByReference] mode.
func AssembleCollectionReference(controller string, coll *Collection) *Document {
	return AssembleCollection(controller, coll, ByReference)
}

// Package uco defines the Unified Cyber Ontology (UCO) vocabulary used by
// the converter: namespace prefixes, class terms, property terms, and the
// controlled vocabularies for relationship kinds and hash methods.
//
// Terms are expressed in compact prefixed form (e.g. "uco-observable:File");
// the JSON-LD @context emitted with every output document maps each prefix
// to its full namespace IRI.
package uco

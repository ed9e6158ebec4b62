// Package normalisers provides implementations of the Normaliser interface
// for the file formats accepted by the inbox and the ingest command. Each
// normaliser turns raw bytes of a specific MIME type into a document draft.
//
// Normalisers are registered with the registry at startup.
package normalisers

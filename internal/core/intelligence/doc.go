// Package intelligence turns ingested documents into insights and alerts.
//
// Classification is a fixed sequence of case-insensitive substring checks
// over document content. There is no tokenisation, stemming or word
// boundary handling: "risk" matches "asterisk" and "it" matches "with".
// Rule order matters and is part of the contract.
//
// # Architectural Position
//
// Intelligence sits inside the core next to services. Services call the
// Processor; adapters never call it directly.
//
// # Import Rules
//
//   - Can Import: domain, logger, oklog/ulid
//   - Cannot Import: ports, services, adapters
package intelligence

// Package mapping reads the rowmap-gen overrides file and checks analyzed
// packages for mapping problems.
//
// The overrides file sets the same metadata as rowmap tags and directives,
// without touching the sources:
//
//	version: "1"
//	types:
//	  - type: store.Customer        # package name + type, or a bare type name
//	    suppress_warnings: true
//	    fields:
//	      - field: Email
//	        column: email_address
//	      - field: Session
//	        ignore: true
//	      - field: ExternalID
//	        convert: string-to-uuid
//	        suppress_warnings: true
//
// Listing a type selects it for generation. Values in the file win over
// struct tags; omitted keys keep what the tags say.
package mapping

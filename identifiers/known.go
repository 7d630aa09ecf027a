package identifiers

// list of built-in supported systems (although extendable at runtime and by importing other packages)
const (

	// generic
	URI  = "urn:ietf:rfc:3986" // general URI (uniform resource identifier)
	UUID = "urn:uuid"          // a UUID as per https://tools.ietf.org/html/rfc4122
	OID  = "urn:oid"

	// New Zealand health and disability sector, as published by Te Whatu Ora / HISO
	NHI             = "https://standards.digital.health.nz/ns/nhi-id"              // National Health Index number
	HPIPerson       = "https://standards.digital.health.nz/ns/hpi-person-id"       // HPI practitioner (CPN)
	HPIOrganisation = "https://standards.digital.health.nz/ns/hpi-organisation-id" // HPI organisation
	HPIFacility     = "https://standards.digital.health.nz/ns/hpi-facility-id"     // HPI facility
)

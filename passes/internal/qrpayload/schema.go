package qrpayload

import "github.com/meetupaws/smartfly_boarding/internal"

const schemaLiteral = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"required": [
		"id",
		"flightNumber",
		"name",
		"seat",
		"departure",
		"arrival",
		"departureDate",
		"returnDate",
		"departureTime",
		"arrivalTime",
		"gate"
	],
	"properties": {
		"id":            {"type": "string", "minLength": 1},
		"flightNumber":  {"type": "string"},
		"name":          {"type": "string"},
		"seat":          {"type": "string"},
		"departure":     {"type": "string"},
		"arrival":       {"type": "string"},
		"departureDate": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"returnDate":    {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"departureTime": {"type": "string"},
		"arrivalTime":   {"type": "string"},
		"gate":          {"type": "string"},
		"photoRef":      {"type": "string"}
	}
}`

var payloadSchema = internal.MustSchema(schemaLiteral)

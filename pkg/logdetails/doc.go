// Package logdetails builds a compact log record describing a GraphQL request:
// which top-level resolvers it selects and which arguments or variables it
// supplies to them.
//
// The record is meant to be merged into a request log event. Building it never
// fails; blank or unparsable queries produce an empty record.
package logdetails

// Package batch solves many characteristic equations at once.
//
// Problems are read from YAML (JSON documents are valid YAML too):
//
//	problems:
//	  - name: damped
//	    coefficients: [1, 2, 5]
//	  - coefficients: [1, -4, 4]
//
// Run fans the problems out over a bounded worker pool and returns one Result
// per problem in input order. A failing problem records its error in its own
// Result and never aborts the rest of the batch.
package batch

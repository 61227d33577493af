// Package definition loads form definitions from JSON or YAML files. A file
// either lists several forms under a top-level "forms" map keyed by form id,
// or describes a single form with top-level "id" and "fields" keys.
//
//	forms:
//	  signup:
//	    title: Create account
//	    fields:
//	      - name: email
//	        required: true
//	        validations:
//	          - kind: pattern
//	            params: {pattern: "^[^@]+@[^@]+$"}
//	      - name: accept_terms
//	        widget: checkbox
//	        required: true
package definition

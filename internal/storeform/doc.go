// Package storeform implements the store creation form: validation of the
// visitor's draft and the submit workflow
//
//	validate -> check domain -> create store
//
// run as an explicit state machine. A Workflow holds the shared collaborators;
// each visitor gets a Form, the state holder that owns the draft, the
// validation errors and the status line.
package storeform

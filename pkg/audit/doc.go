// Package audit records the auditable trail around confidential
// evaluations: who created a profile, when a simulation ran, when a
// disclosure was requested, and whether a callback committed or was
// rejected. Encrypted intermediates never appear in the trail: records
// carry identifiers, outcomes, and a hash of the disclosed payload, not
// attribute values.
//
// Recording is asynchronous: the recorder buffers records on a channel and
// a background worker writes them to storage, so the evaluation and
// disclosure paths never block on the audit backend. Close drains the
// buffer.
package audit

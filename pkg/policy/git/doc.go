// Package git sources the career ladder from a Git repository, so ladder
// changes land through the same review and history trail as any other
// change. The Source clones the configured repository, reads the ladder
// file from the working tree, and polls the remote for new commits,
// replacing the registry's ladder when the ladder file changes.
//
// Authentication is limited to anonymous and HTTP basic/token access.
package git

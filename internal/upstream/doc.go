// Package upstream keeps a local checkout of the CyberChef repository that the
// operation sources are read from.
//
// A Checkout clones the remote on first use and afterwards fetches and resets the
// working tree to the remote branch, so the extracted catalog always follows the
// upstream sources. A working tree with local modifications is left alone.
//
// Directory handling:
//   - missing or empty directory: clone
//   - clone of the same remote: fetch and reset
//   - anything else: error, the directory is never overwritten
//
// Public remotes are accessed anonymously. When the remote asks for credentials
// the token from the credential store, or from OPEXTRACT_GIT_TOKEN, is used.
package upstream

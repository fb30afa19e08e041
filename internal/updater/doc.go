// Package updater asks GitHub Releases whether a newer zotplug release than
// the running binary exists.
package updater

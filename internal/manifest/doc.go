// Package manifest builds, writes and validates the manifests of a generated
// Zotero plugin: the npm package.json at the project root and the WebExtension
// style manifest.json of bootstrapped variants. Both documents are checked
// against JSON schemas embedded in the binary; schema issues are reported,
// never fatal.
package manifest

// Package scaffold materializes Zotero plugin projects from template trees.
// A template root holds one directory per variant; Materialize walks the
// chosen variant, rewrites file contents and paths from a Values mapping,
// then applies the variant's rename and delete rules to the output tree.
package scaffold

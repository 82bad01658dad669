// Package linkage decides how the public declarations of a C shared library
// are marked: which calling convention they use and whether they are
// exported, imported, made visible or left plain.
//
// Resolution is a pure function of a small set of facts (build role, target
// linkage model, compiler capability and an export override). The rest of
// the package derives those facts from compiler macro sets and spells the
// resulting tokens for a given library profile.
package linkage

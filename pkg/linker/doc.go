// Package linker reconciles a tree of symbolic links under a target root
// with the files of a source tree.
//
// Three passes run in order:
//
//  1. generic: every regular file under SourceRoot is linked to
//     TargetRoot/.<top>/<rest>, i.e. the first path component gets a dot.
//     Paths under an Exclude prefix or inside one of Directories are left
//     alone.
//  2. directories: each entry of Directories is linked as a whole, with the
//     same dot rule.
//  3. individual: each Mapping mirrors the files of Source into Target
//     without renaming.
//
// Link values are always relative to the link's parent directory. An
// existing link with the expected value is reported as skipped; anything
// else at the target is removed and replaced. Running twice with no source
// changes links nothing the second time.
package linker

// Package errx provides structured, code-based errors shared by every
// component in this module.
//
// Each package registers its error definitions once in a Registry with a
// short prefix, then instantiates them per failure:
//
//	var blobErrors = errx.NewRegistry("BLOB")
//	var ErrNotFound = blobErrors.Register("NOT_FOUND", errx.TypeNotFound, "Blob not found")
//
//	return Blob{}, blobErrors.New(ErrNotFound).WithDetail("id", id)
//
// Callers match on codes or types instead of string comparison:
//
//	if errx.IsCode(err, blobstore.ErrNotFound) { ... }
//	if errx.IsType(err, errx.TypeUnavailable) { ... }
//
// Errors carry an optional cause chain compatible with errors.Is/As.
package errx

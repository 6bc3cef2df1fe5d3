// Package fonts implements the font collector: it gathers font attachments
// extracted next to a release into one shared fonts directory.
//
// Discovery looks only one level deep. Immediate subdirectories of the
// working directory whose names end with the attachments suffix
// (case-insensitive, "_Attachments" by default) are scanned, and only files
// directly inside them with a font extension are moved. The fonts directory
// is created when missing and never removed, so a second run finds nothing
// left to move.
package fonts

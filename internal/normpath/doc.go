// SPDX-License-Identifier: MPL-2.0

// Package normpath plans and performs the relocation of a directory tree to
// normalized names.
//
// For every file and directory under a root, the path suffix beyond the root
// is run through the normalization rule (see package normalize) and appended
// to a destination directory:
//
//	root /in, dest /out:  /in/My Photos/Été.JPG -> /out/my_photos/_latin_small_letter_e_with_acute_t_latin_small_letter_e_with_acute_.jpg
//
// Entries are processed longest path first so a directory is only handled
// after everything inside it. In plan mode (the default) the mapping is only
// reported. In apply mode files are renamed into place, destination
// directories are created as needed and emptied source directories are
// removed. Any violated precondition aborts the whole run; moves already made
// are not undone.
package normpath

// Package delimfix loads delimited-text files whose header line uses a
// different field delimiter than the data lines, repairing the header
// so the whole file parses with one consistent delimiter.
//
// The defect it targets looks like this: a pipe-delimited header over a
// semicolon-delimited body, with comma-decimal numeric values.
//
//	name|birthdate|height|kgs
//	danno;2001-05-22;1,73;75,4
//	manno;2002-06-23;1,83;85,4
//
// # Repair strategies
//
// Four equivalent strategies repair the header; all produce the same
// parse result for well-formed input:
//
//   - StrategyRejoin (default): read lines, rewrite the first, rejoin
//   - StrategyReplaceAll: replace the header delimiter in the whole file;
//     unsafe if the character appears inside body values (see
//     WithCollisionCheck)
//   - StrategySplice: substring past the header line, prepend the fix
//   - StrategySeek: skip the header at the storage layer with a file
//     seek, for large uncompressed files
//
// # Basic Usage
//
//	table, err := delimfix.Read("measurements.txt",
//	    delimfix.WithDelimiters('|', ';'))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Multiple files sharing the same defective header concatenate in list
// order:
//
//	table, err := delimfix.ReadAll([]string{"m1.txt", "m2.txt", "m3.txt"})
//
// # SQL view
//
// Open loads the repaired table into an in-memory SQLite database:
//
//	db, err := delimfix.Open([]string{"measurements.txt"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	row := db.QueryRow("SELECT AVG(kgs) FROM measurements")
//
// Compressed inputs (.gz, .bz2, .xz, .zst) are decompressed
// transparently for every strategy except StrategySeek.
package delimfix

// Package htmltable converts HTML table fragments embedded in free-form text
// into Markdown tables.
//
// Migrated content is assumed messy: opening tags without closers, rows that
// run into the next row, stray inline markup inside cells. The package
// recovers from all of it instead of rejecting input. Conversion is a pure
// string transformation: no I/O, no shared state, the same input always
// produces the same output. Text outside recognized fragments passes through
// byte-for-byte.
//
// Only table structure (<table>, <tr>, <td>, <th>) and line breaks (<br>) are
// interpreted. Attributes, styles and other markup are discarded. Tables
// nested inside tables are not supported; the scanner treats an inner <table>
// marker as the boundary of the outer fragment.
package htmltable

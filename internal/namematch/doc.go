// Package namematch resolves free-text user input against add-on names.
// Names and queries are reduced to their lower-case Latin letters, and a
// query matches any name whose reduced form starts with the reduced query.
// When several candidates match, the first one in enumeration order wins.
package namematch

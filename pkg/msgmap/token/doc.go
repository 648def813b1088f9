/*
Package token finds and replaces %name placeholders in template strings.

# Overview

A token is the percent sign followed by a name: "%user", "%count". Scan reports
the identifier-shaped tokens present in a string, Replace substitutes every
occurrence of one token.

# Matching

Replace is a plain global substring replacement. It does not look for word
boundaries, so replacing "one" also rewrites the prefix of "%oneX":

	token.Replace("%one %oneX", "one", "1")
	// "1 1X"

Callers that mix names where one is a prefix of another should register the
longer name first, or pick names that do not overlap.

Scan, on the other hand, reads whole identifiers ([A-Za-z_][A-Za-z0-9_]*), so
"%oneX" is reported as "oneX" and not as "one".
*/
package token

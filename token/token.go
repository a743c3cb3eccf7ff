// Package token tokenizes input lines and classifies words:
// builtin keywords, operator aliases, structure terminators and
// integer literals. Tables are immutable after process start.
package token

import (
	"strconv"
	"strings"

	"fortio.org/log"
	"fortio.org/sets"
)

// Builtin keywords. Operator aliases below map to these.
const (
	DUP      = "DUP"
	DROP     = "DROP"
	SWAP     = "SWAP"
	OVER     = "OVER"
	ROT      = "ROT"
	INVERT   = "INVERT"
	EMIT     = "EMIT"
	DUMP     = "DUMP"
	CR       = "CR"
	IF       = "IF"
	DO       = "DO"
	BEGIN    = "BEGIN"
	VARIABLE = "VARIABLE"
	CONSTANT = "CONSTANT"
	ALLOT    = "ALLOT"
	LOAD     = "LOAD"
	ADD      = "ADD"
	SUB      = "SUB"
	MUL      = "MUL"
	DIV      = "DIV"
	MOD      = "MOD"
	AND      = "AND"
	OR       = "OR"
	XOR      = "XOR"
	EQ       = "EQ"
	GT       = "GT"
	LT       = "LT"
	PRINT    = "PRINT"
	STORE    = "STORE"
	FETCH    = "FETCH"
	PRINTSTR = "PRINTSTR"
	COMMENT  = "COMMENT"
	DEFINE   = "DEFINE"
)

// Structure terminators. Not words: outside of the construct that
// expects them they resolve to nothing.
const (
	SEMICOLON = ";"
	ENDQUOTE  = "\""
	RPAREN    = ")"
	ELSE      = "ELSE"
	THEN      = "THEN"
	LOOP      = "LOOP"
	UNTIL     = "UNTIL"
)

var keywords = sets.New(
	DUP, DROP, SWAP, OVER, ROT, INVERT, EMIT, DUMP, CR,
	IF, DO, BEGIN, VARIABLE, CONSTANT, ALLOT, LOAD,
	ADD, SUB, MUL, DIV, MOD, AND, OR, XOR, EQ, GT, LT,
	PRINT, STORE, FETCH, PRINTSTR, COMMENT, DEFINE,
)

var aliases = map[string]string{
	"+":   ADD,
	"-":   SUB,
	"*":   MUL,
	"/":   DIV,
	"%":   MOD,
	"&":   AND,
	"|":   OR,
	"^":   XOR,
	"=":   EQ,
	">":   GT,
	"<":   LT,
	".":   PRINT,
	"!":   STORE,
	"@":   FETCH,
	".\"": PRINTSTR,
	"(":   COMMENT,
	":":   DEFINE,
}

// Keywords that construct a Command object because they consume more
// of the line (possibly further lines) to parse themselves.
var structured = sets.New(
	PRINTSTR, COMMENT, DEFINE, VARIABLE, CONSTANT, ALLOT,
	IF, DO, BEGIN, LOAD,
)

// Tokenize splits a line into whitespace-delimited tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// IsInteger reports whether tok parses as a (signed) integer literal.
func IsInteger(tok string) bool {
	_, err := strconv.ParseInt(tok, 10, 64)
	return err == nil
}

// IsKeyword reports whether tok is a builtin keyword.
func IsKeyword(tok string) bool {
	return keywords.Has(tok)
}

// LookupAlias resolves an operator symbol to its builtin keyword.
func LookupAlias(tok string) (string, bool) {
	kw, ok := aliases[tok]
	if ok {
		log.Debugf("LookupAlias(%q) found %s", tok, kw)
	}
	return kw, ok
}

// IsStructured reports whether keyword kw needs a Command object
// (it consumes further input to parse itself).
func IsStructured(kw string) bool {
	return structured.Has(kw)
}

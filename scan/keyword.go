// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"strings"
	"unicode/utf8"

	"robpike.io/kelvin/grammar"
	"robpike.io/kelvin/node"
)

// Encode replaces every operator spelling in src with its one-rune code
// from the table. Alphabetic keywords match whole words only, punctuation
// takes the longest match, and nothing inside a string, comment or number
// literal is touched. Input that already holds a code rune is rejected.
func Encode(table *grammar.Table, src string) (string, error) {
	words := table.Words()
	punct := table.Punctuation()
	var b strings.Builder
	for i := 0; i < len(src); {
		r, w := utf8.DecodeRuneInString(src[i:])
		switch {
		case grammar.IsCode(r):
			return "", node.Errorf(node.Syntax, "illegal character %#U", r)
		case r == '"' || r == '\'':
			j := skipQuote(src, i)
			b.WriteString(src[i:j])
			i = j
		case r == '#':
			j := strings.IndexByte(src[i:], '\n')
			if j < 0 {
				j = len(src) - i
			}
			b.WriteString(src[i : i+j])
			i += j
		case isDigit(r):
			j := skipNumber(src, i)
			b.WriteString(src[i:j])
			i = j
		case grammar.IsWordStart(r) || r == '$':
			j := i + w
			for j < len(src) {
				r, w := utf8.DecodeRuneInString(src[j:])
				if !grammar.IsWordRune(r) {
					break
				}
				j += w
			}
			word := src[i:j]
			if code, ok := words[word]; ok {
				b.WriteRune(code)
			} else {
				b.WriteString(word)
			}
			i = j
		default:
			matched := false
			for _, sym := range punct {
				if strings.HasPrefix(src[i:], sym) {
					b.WriteRune(table.Lookup(sym)[0].Code)
					i += len(sym)
					matched = true
					break
				}
			}
			if !matched {
				b.WriteRune(r)
				i += w
			}
		}
	}
	return b.String(), nil
}

// skipQuote returns the index just past the quoted string starting at i,
// or the end of the line if it is unterminated; the lexer reports that.
func skipQuote(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '\n':
			return j
		case quote:
			return j + 1
		}
	}
	return len(src)
}

// skipNumber returns the index just past the number literal at i.
func skipNumber(src string, i int) int {
	j := i
	digits := func() {
		for j < len(src) && isDigit(rune(src[j])) {
			j++
		}
	}
	digits()
	if j+1 < len(src) && src[j] == '.' && isDigit(rune(src[j+1])) {
		j++
		digits()
	}
	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		if k < len(src) && isDigit(rune(src[k])) {
			j = k
			digits()
		}
	}
	return j
}

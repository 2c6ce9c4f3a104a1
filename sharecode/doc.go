// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sharecode converts a runbook's structure to and from a compact
text code that can be copied between installations.

# Format

	code    = base85(version ‖ gzip(json))
	version = 0x00
	json    = [name, [[section, [[item, type], ...]], ...]]

base85 uses the RFC 1924 alphabet with the same short-group handling as
Python's base64.b85encode, so codes from earlier versions of the tool
decode unchanged.

# Errors

Decode fails with ErrUnsupportedVersion when the leading byte is not 0,
and with ErrMalformed for anything else it cannot read.
*/
package sharecode

// Package message decodes diagnostic messages handed over as byte-strings.
//
// A byte-string is a sequence of 8-bit values terminated by the first NUL
// byte, as produced by codec code and test harnesses that build messages in
// fixed-size buffers. Decode stops at that NUL (or at the end of the slice
// when there is none) and converts the bytes to a Go string:
//   - Valid UTF-8 passes through unchanged
//   - Anything else is decoded as ISO-8859-1, one rune per byte
//
// Design decision: We fall back to ISO-8859-1 rather than replacing invalid
// bytes with U+FFFD because every 8-bit value has a Latin-1 meaning, so no
// information from the caller's message is lost in the diagnostic output.
package message

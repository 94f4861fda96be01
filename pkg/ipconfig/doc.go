// Package ipconfig extracts network adapter records from verbose,
// per-adapter configuration dumps such as the output of "ipconfig /all".
//
// The input format is owned by the operating system and is neither stable nor
// documented, so extraction is deliberately tolerant:
//
//   - Segment splits the dump into blocks on blank lines (CRLF or LF).
//   - Extract searches each block independently for every field label,
//     case-insensitively, without assuming order or presence.
//   - Multi-valued labels (IPv4 Address) keep every match in order; the
//     single-valued labels (Subnet Mask, DNS Servers, Default Gateway) keep
//     the last match and default to "N/A".
//   - IsLive drops adapters without a real address and adapters whose block
//     reports "Media disconnected".
//
// Malformed blocks never produce an error; they simply yield no record.
//
// # Usage
//
//	for _, a := range ipconfig.Parse(out) {
//	    _ = ipconfig.Render(os.Stdout, a)
//	}
package ipconfig

/*
Copyright © 2023 Microsoft Corporation
*/
package trackheader

// userHeader is the header found on tracks created in the track editor. Tracks extracted from
// the game carry a different header which the editor treats as read-only; replacing it with
// this one makes the track editable. The bytes are opaque and are never decoded.
var userHeader = [...]byte{
	0xde, 0xad, 0xba, 0xbe, 0x09, 0x00, 0x00, 0x00,
	0x2c, 0x43, 0x3b, 0x09, 0x83, 0x33, 0x78, 0x0a,
	0x84, 0x41, 0x04, 0xdf, 0xef, 0xbf, 0xe7, 0x99,
	0xfd, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x28, 0x55, 0x06, 0x02, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

// HeaderSize is the number of leading bytes replaced in a track file.
const HeaderSize = len(userHeader)

// UserHeader returns a copy of the replacement header.
func UserHeader() []byte {
	header := userHeader
	return header[:]
}

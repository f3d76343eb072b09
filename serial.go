// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "code.hybscloud.com/atomix"

// ID is a monotonically increasing identifier assigned to every channel.
// Winning-channel identity in alt results is reported as an ID rather than
// a typed pointer, since a single alt's candidates may span channels of
// different payload types.
type ID = uint64

// channelSerial is the global monotonic counter for channel ids.
var channelSerial atomix.Uint64

// nextChannelID returns the next monotonically increasing channel id.
func nextChannelID() ID {
	return channelSerial.Add(1)
}

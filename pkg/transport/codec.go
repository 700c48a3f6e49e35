// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"fmt"
	"strings"

	"github.com/pion/webrtc/v3"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

func codecType(kind jingle.MediaKind) webrtc.RTPCodecType {
	switch kind {
	case jingle.MediaKindAudio:
		return webrtc.RTPCodecTypeAudio
	case jingle.MediaKindVideo:
		return webrtc.RTPCodecTypeVideo
	default:
		return webrtc.RTPCodecType(0)
	}
}

func codecParameters(kind jingle.MediaKind, pt jingle.PayloadType) webrtc.RTPCodecParameters {
	var feedback []webrtc.RTCPFeedback
	for _, fb := range pt.Feedback {
		feedback = append(feedback, webrtc.RTCPFeedback{Type: fb.Type, Parameter: fb.Subtype})
	}
	return webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:     fmt.Sprintf("%s/%s", kind, pt.Name),
			ClockRate:    pt.ClockRate,
			Channels:     pt.Channels,
			SDPFmtpLine:  pt.FmtpLine(),
			RTCPFeedback: feedback,
		},
		PayloadType: webrtc.PayloadType(pt.ID),
	}
}

// placeholderSample is a payload the far end will ignore: an h264 sps/pps/idr triple
// for that codec, a few filler bytes otherwise.
func placeholderSample(pt jingle.PayloadType) []byte {
	if strings.EqualFold(pt.Name, "h264") {
		return []byte{
			0x00, 0x00, 0x00, 0x01, 0x7, 0xff, 0xff, 0xff, 0xff,
			0x00, 0x00, 0x00, 0x01, 0x8, 0xff, 0xff, 0xff, 0xff,
			0x00, 0x00, 0x00, 0x01, 0x5, 0xff, 0xff, 0xff, 0xff,
		}
	}
	return []byte{0x0, 0xff, 0xff, 0xff, 0xff}
}

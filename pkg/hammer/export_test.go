package hammer

import (
	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/signalling"
)

func (u *FakeUser) Router() *signalling.Router {
	return u.router
}

func (u *FakeUser) HandleUnrouted(msg *jingle.Message) {
	u.onUnroutedMessage(msg)
}

package genpipeline

// ChannelSink forwards events into a channel; used to feed the bubbletea
// progress model from a background goroutine driving Generate.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

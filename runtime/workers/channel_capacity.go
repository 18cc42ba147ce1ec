package workers

import (
	"reflect"
)

// backlogThreshold is the fill ratio above which a channel is reported as congested.
const backlogThreshold = 0.8

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelUsage is the fill level of a buffered channel at sampling time.
type ChannelUsage struct {
	Name     string
	Length   int
	Capacity int
}

func (u ChannelUsage) Congested() bool {
	return u.Capacity > 0 && float64(u.Length) >= backlogThreshold*float64(u.Capacity)
}

// channelUsage reads len and cap without blocking. ok is false when nc does
// not hold a channel.
func channelUsage(nc NamedChannel) (ChannelUsage, bool) {
	v := reflect.ValueOf(nc.Channel)
	if v.Kind() != reflect.Chan {
		return ChannelUsage{}, false
	}
	return ChannelUsage{Name: nc.Name, Length: v.Len(), Capacity: v.Cap()}, true
}

package donut

// Feed delivers datasets to the charts subscribed to it. It is the way a host
// signals that the data of a chart changed.
type Feed struct {
	next int
	subs map[int]func([]Segment)
	last []Segment
}

func NewFeed() *Feed {
	return &Feed{
		subs: make(map[int]func([]Segment)),
	}
}

// Subscribe registers fn and returns the function cancelling the
// subscription. When a dataset was already published, fn receives it
// immediately.
func (f *Feed) Subscribe(fn func([]Segment)) func() {
	if f.subs == nil {
		f.subs = make(map[int]func([]Segment))
	}
	id := f.next
	f.next++
	f.subs[id] = fn
	if f.last != nil {
		fn(f.last)
	}
	return func() {
		delete(f.subs, id)
	}
}

// Publish sends data to every subscriber, in subscription order.
func (f *Feed) Publish(data []Segment) {
	f.last = data
	for i := 0; i < f.next; i++ {
		if fn, ok := f.subs[i]; ok {
			fn(data)
		}
	}
}

func (f *Feed) Len() int {
	return len(f.subs)
}

// Package broadcast fans typed values out to any number of subscribers.
//
// It exists for state snapshots: a subscriber only ever needs the newest
// value, so when its buffer is full the oldest pending message is discarded
// instead of blocking the publisher or dropping the subscriber.
//
//	b := broadcast.NewMemoryBroadcaster[lifecycle.State](1)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx) // removed automatically when ctx is done
//	for msg := range sub.Receive(ctx) {
//		render(msg.Data)
//	}
package broadcast

package goSession

import "sync"

// Subscription identifies a registered auth change callback. Unsubscribe is
// idempotent.
type Subscription struct {
	id   uint64
	list *subscriberList
}

// Unsubscribe removes the callback. A callback already executing finishes; it
// just will not be invoked again.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.list == nil {
		return
	}
	s.list.remove(s.id)
}

type subscriberList struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]AuthCallback
}

func (l *subscriberList) add(fn AuthCallback) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.subs == nil {
		l.subs = make(map[uint64]AuthCallback)
	}
	l.next++
	l.subs[l.next] = fn
	return l.next
}

func (l *subscriberList) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.subs, id)
}

// snapshot returns the callbacks in registration order so notification order
// is stable across transitions.
func (l *subscriberList) snapshot() []AuthCallback {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]uint64, 0, len(l.subs))
	for id := range l.subs {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	out := make([]AuthCallback, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.subs[id])
	}
	return out
}

// OnAuthChange registers fn for every committed transition. The callback runs
// synchronously inside the transition, so transitions observed by any single
// subscriber are totally ordered. Callbacks must be quick and must not call
// state-mutating methods of the reconciler.
func (r *Reconciler) OnAuthChange(fn AuthCallback) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	id := r.subs.add(fn)
	return &Subscription{id: id, list: &r.subs}
}

// notifyAuthChange fans the committed transition out to every subscriber. A
// panicking subscriber is logged and skipped; it never poisons the
// reconciler or the remaining subscribers.
func (r *Reconciler) notifyAuthChange(authenticated bool, user *UserIdentity) {
	for _, fn := range r.subs.snapshot() {
		r.invokeCallback(fn, authenticated, user)
	}
}

func (r *Reconciler) invokeCallback(fn AuthCallback, authenticated bool, user *UserIdentity) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("auth change subscriber panicked", "panic", rec)
		}
	}()
	var copied *UserIdentity
	if user != nil {
		u := *user
		copied = &u
	}
	fn(authenticated, copied)
}

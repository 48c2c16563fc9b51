package we

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "we-store"

// StoreDescriptor declares a store: its initial state, the reducer for
// synchronous actions and the effects for asynchronous ones.
type StoreDescriptor[S any, A any] struct {
	Initial S
	Reducer Reducer[S, A]
	Effects map[ActionName]func() Effect[A]
}

// Store owns a state value of type S and applies actions of type A to it. A
// single consumer goroutine applies every transition in the order actions
// reach its queue.
type Store[S any, A any] struct {
	reduce      Reducer[S, A]
	effects     Effects[A]
	clock       Clock
	log         *zerolog.Logger
	revisions   *RevisionGenerator
	journal     *Journal
	subscribers *subscribers[S]

	queue   chan envelope[S, A]
	quit    chan struct{}
	stopped chan struct{}
	stop    sync.Once

	lk      sync.RWMutex
	current Snapshot[S]

	closeLk sync.RWMutex
	closing bool
	pending sync.WaitGroup
}

type envelope[S any, A any] struct {
	ctx      context.Context
	action   A
	metadata RecordedActionMetadata
	reply    chan Snapshot[S]
}

func NewStore[S any, A any](descriptor StoreDescriptor[S, A], options ...StoreOption) *Store[S, A] {
	if descriptor.Reducer == nil {
		panic("store descriptor has no reducer")
	}

	opts := defaultStoreOptions()
	for _, option := range options {
		option(&opts)
	}

	effects := make(Effects[A], len(descriptor.Effects))
	for name, effect := range descriptor.Effects {
		effects[name] = effect()
	}

	s := &Store[S, A]{
		reduce:      descriptor.Reducer,
		effects:     effects,
		clock:       opts.clock,
		log:         opts.log,
		revisions:   NewRevisionGenerator(),
		journal:     NewJournal(opts.journalLimit),
		subscribers: newSubscribers[S](),
		queue:       make(chan envelope[S, A]),
		quit:        make(chan struct{}),
		stopped:     make(chan struct{}),
		current: Snapshot[S]{
			Revision:  InitialRevision,
			Timestamp: TimestampFromTime(opts.clock.Now()),
			State:     descriptor.Initial,
		},
	}

	go s.run()

	return s
}

// Dispatch submits an action. Synchronous actions are applied before Dispatch
// returns and yield a completed task. Actions handled by an effect return a
// pending task immediately; the effect is not cancelled by ctx.
func (s *Store[S, A]) Dispatch(ctx context.Context, action A) (*Task[S], error) {
	if any(action) == nil {
		return nil, InvalidAction
	}

	name := ActionNameOf(action)
	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("dispatch %s", name))
	defer span.End()

	metadata := RecordedActionMetadata{CorrelationId: CorrelationIdFrom(ctx)}

	var task *Task[S]
	var err error
	if effect := s.effects[name]; effect != nil {
		task, err = s.spawn(ctx, name, effect, action, metadata)
	} else {
		task, err = s.dispatch(ctx, name, action, metadata)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("task", task.ID.String()))

	return task, nil
}

// Snapshot returns the current state with its revision.
func (s *Store[S, A]) Snapshot() Snapshot[S] {
	s.lk.RLock()
	defer s.lk.RUnlock()

	return s.current
}

func (s *Store[S, A]) State() S {
	return s.Snapshot().State
}

// Subscribe registers an observer. The subscription starts with the current
// snapshot.
func (s *Store[S, A]) Subscribe() *Subscription[S] {
	return s.subscribers.add(s.Snapshot)
}

// History returns the recorded actions, oldest first.
func (s *Store[S, A]) History() []RecordedAction {
	return s.journal.Records()
}

// Close stops accepting dispatches and waits for pending tasks before stopping
// the consumer. If ctx ends first the store stops anyway; tasks still pending
// then fail with ErrStoreClosed and leave the state unchanged.
func (s *Store[S, A]) Close(ctx context.Context) error {
	s.closeLk.Lock()
	s.closing = true
	s.closeLk.Unlock()

	drained := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(drained)
	}()

	var err error
	select {
	case <-drained:
	case <-ctx.Done():
		err = ctx.Err()
	}

	s.stop.Do(func() { close(s.quit) })
	<-s.stopped
	s.subscribers.close()

	s.log.Debug().Err(err).Msg("store closed")

	return err
}

func (s *Store[S, A]) isClosing() bool {
	s.closeLk.RLock()
	defer s.closeLk.RUnlock()

	return s.closing
}

func (s *Store[S, A]) dispatch(ctx context.Context, name ActionName, action A, metadata RecordedActionMetadata) (*Task[S], error) {
	if s.isClosing() {
		return nil, ErrStoreClosed
	}

	snapshot, err := s.send(ctx, action, metadata)
	if err != nil {
		return nil, err
	}

	task := newTask[S](TaskID(snapshot.Revision), name)
	task.complete(snapshot, nil)

	return task, nil
}

func (s *Store[S, A]) spawn(ctx context.Context, name ActionName, effect Effect[A], action A, metadata RecordedActionMetadata) (*Task[S], error) {
	s.closeLk.Lock()
	if s.closing {
		s.closeLk.Unlock()
		return nil, ErrStoreClosed
	}
	s.pending.Add(1)
	s.closeLk.Unlock()

	task := newTask[S](TaskID(s.revisions.NewRevision(s.clock.Now())), name)

	// the effect outlives the dispatching call, keep its trace but not its deadline
	ectx := trace.ContextWithSpanContext(context.Background(), trace.SpanContextFromContext(ctx))
	ectx = WithCorrelationId(ectx, metadata.CorrelationId)
	ectx = s.log.WithContext(ectx)

	go s.runEffect(ectx, task, effect, action, metadata)

	return task, nil
}

func (s *Store[S, A]) runEffect(ctx context.Context, task *Task[S], effect Effect[A], action A, metadata RecordedActionMetadata) {
	defer s.pending.Done()

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("effect %s", task.Action))
	defer span.End()

	var lk sync.Mutex
	var last *Snapshot[S]

	var dispatch Dispatch[A] = func(ctx context.Context, follow A) error {
		if any(follow) == nil {
			return InvalidAction
		}
		if _, ok := s.effects[ActionNameOf(follow)]; ok {
			return UnexpectedAction(follow)
		}

		snapshot, err := s.send(ctx, follow, RecordedActionMetadata{
			CausationId:   task.ID,
			CorrelationId: metadata.CorrelationId,
		})
		if err != nil {
			return err
		}

		lk.Lock()
		last = &snapshot
		lk.Unlock()

		return nil
	}

	err := effect.Run(ctx, action, dispatch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Warn().Err(err).Str("action", task.Action.String()).Str("task", task.ID.String()).Msg("effect failed")
	}

	lk.Lock()
	defer lk.Unlock()

	if last == nil {
		task.complete(s.Snapshot(), err)
		return
	}

	task.complete(*last, err)
}

// send hands an action to the consumer and waits for the resulting snapshot.
// Once handed off the action is always applied.
func (s *Store[S, A]) send(ctx context.Context, action A, metadata RecordedActionMetadata) (Snapshot[S], error) {
	env := envelope[S, A]{
		ctx:      ctx,
		action:   action,
		metadata: metadata,
		reply:    make(chan Snapshot[S], 1),
	}

	select {
	case s.queue <- env:
	case <-s.quit:
		return Snapshot[S]{}, ErrStoreClosed
	case <-ctx.Done():
		return Snapshot[S]{}, ctx.Err()
	}

	return <-env.reply, nil
}

func (s *Store[S, A]) run() {
	defer close(s.stopped)

	for {
		select {
		case env := <-s.queue:
			env.reply <- s.apply(env)
		case <-s.quit:
			return
		}
	}
}

func (s *Store[S, A]) apply(env envelope[S, A]) Snapshot[S] {
	name := ActionNameOf(env.action)

	_, span := otel.Tracer(tracerName).Start(env.ctx, fmt.Sprintf("reduce %s", name))
	defer span.End()

	// only the consumer writes current, so it can read it without the lock
	now := s.clock.Now()
	next := Snapshot[S]{
		Revision:  s.revisions.NewRevision(now),
		Timestamp: TimestampFromTime(now),
		State:     s.reduce(s.current.State, env.action),
	}

	s.lk.Lock()
	s.current = next
	s.lk.Unlock()

	s.record(name, next, env)
	s.subscribers.publish(next)

	span.SetAttributes(attribute.String("revision", next.Revision.String()))
	s.log.Debug().
		Str("action", name.String()).
		Str("revision", next.Revision.String()).
		Str("causation", env.metadata.CausationId.String()).
		Msg("action applied")

	return next
}

func (s *Store[S, A]) record(name ActionName, snapshot Snapshot[S], env envelope[S, A]) {
	data, err := MarshalToData(env.action)
	if err != nil {
		s.log.Warn().Err(err).Str("action", name.String()).Msg("failed to encode action for journal")
	}

	s.journal.Record(RecordedAction{
		Revision:  snapshot.Revision,
		Action:    name,
		Timestamp: snapshot.Timestamp,
		Metadata:  env.metadata,
		Data:      data,
	})
}

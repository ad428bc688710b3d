package queue_test

import (
	"context"
	"testing"
	"time"

	queue "github.com/okian/scrim/internal/adapters/mq/queue"
	"github.com/okian/scrim/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func match(id string) model.Match {
	return model.Match{
		MatchID: id,
		TeamA:   []model.PlayerResult{{PlayerID: "a1"}},
		TeamB:   []model.PlayerResult{{PlayerID: "b1"}},
		Outcome: model.OutcomeTeamA,
		TS:      time.Now().UTC(),
	}
}

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))

		Convey("When matches are enqueued", func() {
			So(q.Enqueue(ctx, match("m1")), ShouldBeTrue)
			So(q.Enqueue(ctx, match("m2")), ShouldBeTrue)

			Convey("Then the length reflects them", func() {
				So(q.Len(ctx), ShouldEqual, 2)
			})

			Convey("And they dequeue in FIFO order", func() {
				ch := q.Dequeue(ctx)
				So((<-ch).MatchID, ShouldEqual, "m1")
				So((<-ch).MatchID, ShouldEqual, "m2")
				So(q.Len(ctx), ShouldEqual, 0)
			})
		})
	})
}

func TestEnqueueBackpressure(t *testing.T) {
	Convey("Given a full queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(1))
		So(q.Enqueue(ctx, match("m1")), ShouldBeTrue)

		Convey("When another match arrives", func() {
			ok := q.Enqueue(ctx, match("m2"))

			Convey("Then the enqueue is rejected without blocking", func() {
				So(ok, ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the caller's context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			ok := q.Enqueue(cancelled, match("m2"))

			Convey("Then the enqueue is rejected", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a queue with a pending match", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))
		So(q.Enqueue(ctx, match("m1")), ShouldBeTrue)

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then new enqueues are rejected", func() {
				So(q.Enqueue(ctx, match("m2")), ShouldBeFalse)
			})

			Convey("And the pending match drains before the channel closes", func() {
				ch := q.Dequeue(ctx)
				m, ok := <-ch
				So(ok, ShouldBeTrue)
				So(m.MatchID, ShouldEqual, "m1")

				_, ok = <-ch
				So(ok, ShouldBeFalse)
			})

			Convey("And closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}

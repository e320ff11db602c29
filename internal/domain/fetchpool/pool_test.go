package fetchpool_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plazor/steampicker/internal/domain/fetchpool"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMap(t *testing.T) {
	Convey("Given a batch of 10 items and concurrency 3", t, func() {
		items := make([]int, 10)
		for i := range items {
			items[i] = i * 100
		}

		Convey("When every item succeeds", func() {
			outs := fetchpool.Map(context.Background(), items, 3, func(_ context.Context, v int) (int, error) {
				return v + 1, nil
			})

			Convey("Then outcomes are index-aligned to the input order", func() {
				So(outs, ShouldHaveLength, 10)
				for i, o := range outs {
					So(o.Err, ShouldBeNil)
					So(o.Value, ShouldEqual, items[i]+1)
				}
			})
		})

		Convey("When completion order is scrambled", func() {
			outs := fetchpool.Map(context.Background(), items, 3, func(_ context.Context, v int) (int, error) {
				// Later items finish first.
				time.Sleep(time.Duration(1000-v) * time.Microsecond)
				return v, nil
			})

			Convey("Then alignment is unaffected", func() {
				for i, o := range outs {
					So(o.Value, ShouldEqual, items[i])
				}
			})
		})

		Convey("When one item fails", func() {
			boom := errors.New("boom")
			outs := fetchpool.Map(context.Background(), items, 3, func(_ context.Context, v int) (int, error) {
				if v == 400 {
					return 0, boom
				}
				return v, nil
			})

			Convey("Then only that item is a miss and the batch completes", func() {
				So(fetchpool.Misses(outs), ShouldEqual, 1)
				So(outs[4].Miss(), ShouldBeTrue)
				So(errors.Is(outs[4].Err, boom), ShouldBeTrue)
				So(outs[5].Miss(), ShouldBeFalse)
			})
		})

		Convey("When measuring in-flight work", func() {
			var inFlight, peak atomic.Int64
			fetchpool.Map(context.Background(), items, 3, func(_ context.Context, v int) (int, error) {
				cur := inFlight.Add(1)
				for {
					p := peak.Load()
					if cur <= p || peak.CompareAndSwap(p, cur) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				inFlight.Add(-1)
				return v, nil
			})

			Convey("Then parallelism never exceeds the limit", func() {
				So(peak.Load(), ShouldBeLessThanOrEqualTo, 3)
			})
		})

		Convey("When each worker claims items", func() {
			seen := make(chan int, len(items))
			fetchpool.Map(context.Background(), items, 3, func(_ context.Context, v int) (int, error) {
				seen <- v
				return v, nil
			})
			close(seen)

			Convey("Then every item is processed exactly once", func() {
				got := map[int]int{}
				for v := range seen {
					got[v]++
				}
				So(got, ShouldHaveLength, 10)
				for _, n := range got {
					So(n, ShouldEqual, 1)
				}
			})
		})
	})

	Convey("Given an empty batch", t, func() {
		calls := 0
		outs := fetchpool.Map(context.Background(), nil, 8, func(_ context.Context, v int) (int, error) {
			calls++
			return v, nil
		})

		Convey("Then no work is dispatched", func() {
			So(outs, ShouldBeEmpty)
			So(calls, ShouldEqual, 0)
		})
	})

	Convey("Given a canceled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		outs := fetchpool.Map(ctx, []int{1, 2, 3}, 2, func(_ context.Context, v int) (int, error) {
			return v, nil
		})

		Convey("Then unclaimed items are recorded as misses", func() {
			So(outs, ShouldHaveLength, 3)
			for _, o := range outs {
				So(errors.Is(o.Err, context.Canceled), ShouldBeTrue)
			}
		})
	})

	Convey("Given a non-positive concurrency", t, func() {
		outs := fetchpool.Map(context.Background(), []string{"a", "b"}, 0, func(_ context.Context, s string) (string, error) {
			return fmt.Sprintf("<%s>", s), nil
		})

		Convey("Then the default is applied and the batch still runs", func() {
			So(outs[0].Value, ShouldEqual, "<a>")
			So(outs[1].Value, ShouldEqual, "<b>")
		})
	})
}

func TestStart(t *testing.T) {
	Convey("Given a background batch", t, func() {
		ch := fetchpool.Start(context.Background(), []int{1, 2, 3}, 2, func(_ context.Context, v int) (int, error) {
			return v * 2, nil
		})

		Convey("Then the outcomes arrive on the channel", func() {
			outs := <-ch
			So(outs, ShouldHaveLength, 3)
			So(outs[2].Value, ShouldEqual, 6)
		})
	})
}

package entropy

import (
	"time"

	"github.com/safing/portbase/log"
)

// ticksPerSample is the number of jitter bits gathered before a sample
// is mixed into the pool.
const ticksPerSample = 64

func tickDuration() time.Duration {
	msecs := tickIntervalMsec()
	if msecs < 10 {
		// below 10 msecs the scheduler jitter gets too predictable
		msecs = 10
	}
	return time.Duration(msecs) * time.Millisecond
}

// tickFeeder is a simple background sample producer that collects the
// least significant bit of the current nanosecond unixtime on every
// tick. The more work the program does, the better the quality, as the
// internal scheduler cannot immediately run the goroutine when it's
// ready. It supplements caller-supplied samples, it does not replace
// them.
func tickFeeder(pool *Pool, shutdown <-chan struct{}) {
	var value int64
	var ticks int

	for {
		select {
		case <-time.After(tickDuration()):
			value = (value << 1) | (time.Now().UnixNano() % 2)

			ticks++
			if ticks >= ticksPerSample {
				err := pool.MixSample(Sample{
					Time:    time.Now().UnixNano(),
					Counter: value,
				})
				if err != nil {
					log.Warningf("entropy: tick feeder failed to mix sample: %s", err)
				}
				value = 0
				ticks = 0
			}

		case <-shutdown:
			return
		}
	}
}

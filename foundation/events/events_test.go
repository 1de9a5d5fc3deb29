package events_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out ledger events.")
	{
		evts := events.New()

		id1, ch1 := evts.Acquire()
		id2, ch2 := evts.Acquire()
		if id1 == id2 {
			t.Fatalf("\t%s\tShould get back unique ids.", failed)
		}
		t.Logf("\t%s\tShould get back unique ids.", success)

		evts.Send("state: MinePendingTransactions: MINING: started")

		for _, ch := range []<-chan string{ch1, ch2} {
			if msg := <-ch; msg != "state: MinePendingTransactions: MINING: started" {
				t.Fatalf("\t%s\tShould receive the event, got %q.", failed, msg)
			}
		}
		t.Logf("\t%s\tShould receive the event on every channel.", success)

		if err := evts.Release(id1); err != nil {
			t.Fatalf("\t%s\tShould be able to release a subscriber: %s", failed, err)
		}
		if _, open := <-ch1; open {
			t.Fatalf("\t%s\tShould close a released channel.", failed)
		}
		t.Logf("\t%s\tShould close a released channel.", success)

		if err := evts.Release(id1); err == nil {
			t.Fatalf("\t%s\tShould not release an unknown subscriber.", failed)
		}
		t.Logf("\t%s\tShould not release an unknown subscriber.", success)

		evts.Shutdown()
		if _, open := <-ch2; open || evts.Count() != 0 {
			t.Fatalf("\t%s\tShould close every channel on shutdown.", failed)
		}
		t.Logf("\t%s\tShould close every channel on shutdown.", success)
	}
}

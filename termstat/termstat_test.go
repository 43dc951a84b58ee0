package termstat

import (
	"bytes"
	"testing"
)

func TestCollector(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewCollector(buf)

	c.Count("records", 50, 1, "source:crypto")
	c.Count("records", 20, 1, "source:news")
	c.Count("records", 5, 1, "source:news")
	c.Count("fetch-failures", 1, 1)

	c.Flush()
	want := "fetch-failures: 1\nrecords[source:crypto]: 50\nrecords[source:news]: 25\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCollectorEmptyFlush(t *testing.T) {
	buf := &bytes.Buffer{}
	NewCollector(buf).Flush()
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

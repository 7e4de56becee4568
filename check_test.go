package zerohttp

import (
	"testing"
)

func TestCheckData(t *testing.T) {
	full := []byte("GET /get?type=dbs&active=1 HTTP/1.1\r\nContent-Length: 6\r\n\r\nabcdef")
	if n := CheckData(full); n != 0 {
		t.Fatalf("complete body: need %v", n)
	}

	half := []byte("GET /get?type=dbs&active=1 HTTP/1.1\r\nContent-Length: 8\r\n\r\nabcdef")
	if n := CheckData(half); n != 2 {
		t.Fatalf("partial body: need %v, want 2", n)
	}

	over := []byte("GET / HTTP/1.1\r\nContent-Length: 2\r\n\r\nabcdef")
	if n := CheckData(over); n != 0 {
		t.Fatalf("over-read body: need %v", n)
	}

	noLength := []byte("GET / HTTP/1.1\r\n\r\nabcdef")
	if n := CheckData(noLength); n != 0 {
		t.Fatalf("body without content length: need %v", n)
	}
}

func TestInspect(t *testing.T) {
	p := Inspect([]byte("POST / HTTP/1.1\r\nContent-Length: 8\r\n"))
	if p.HeaderDone || p.ContentLength != 8 || p.Need() != 8 {
		t.Fatalf("unterminated header: %+v", p)
	}

	data := []byte("POST / HTTP/1.1\r\nHost: x\r\nCONTENT-LENGTH: 4\r\n\r\nbodyGET / HTTP/1.1\r\n\r\n")
	p = Inspect(data)
	headerLen := len("POST / HTTP/1.1\r\nHost: x\r\nCONTENT-LENGTH: 4\r\n\r\n")
	if !p.HeaderDone || p.HeaderLen != headerLen || p.ContentLength != 4 {
		t.Fatalf("invalid progress: %+v", p)
	}
	if p.Total() != headerLen+4 || p.Need() != 0 {
		t.Fatalf("invalid total/need: %v, %v", p.Total(), p.Need())
	}

	p = Inspect([]byte("POST / HTTP/1.1\r\nContent-Length: x1\r\n\r\n"))
	if p.ContentLength != 0 {
		t.Fatalf("malformed content length should be 0: %+v", p)
	}
}

func TestCheckDataMatchesRequest(t *testing.T) {
	full := "POST /form HTTP/1.1\r\nCookie: a=1\r\nContent-Length: 5\r\nContent-Type: text/plain\r\n\r\nhello!!"
	for i := 0; i <= len(full); i++ {
		buf := []byte(full[:i])
		r := Parse(buf)
		p := Inspect(buf)
		if p.HeaderDone != r.HeaderDone() {
			t.Fatalf("prefix %d: header done %v != %v", i, p.HeaderDone, r.HeaderDone())
		}
		if !r.HeaderDone() {
			continue
		}
		if p.HeaderLen != r.BodyRange().Start || p.BodyLen != r.BodyRange().Len() {
			t.Fatalf("prefix %d: progress %+v, body %+v", i, p, r.BodyRange())
		}
		if (CheckData(buf) == 0) != r.IsBodyRead() {
			t.Fatalf("prefix %d: CheckData %v, IsBodyRead %v", i, CheckData(buf), r.IsBodyRead())
		}
		if CheckData(buf) != r.Remaining() {
			t.Fatalf("prefix %d: CheckData %v, Remaining %v", i, CheckData(buf), r.Remaining())
		}
	}
}
